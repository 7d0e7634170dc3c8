package accesscontrol

import (
	"errors"
	"testing"
	"time"
)

func TestNewAssetControl(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	c, err := NewAssetControl("ast_1", "actor-a", at)
	if err != nil {
		t.Fatalf("NewAssetControl() error = %v", err)
	}
	if !c.IsControlledBy("actor-a") {
		t.Error("registrant should be the initial controller")
	}
	if c.DeletionRequested() {
		t.Error("new record should not have deletion requested")
	}

	if _, err := NewAssetControl("ast_1", "", at); !errors.Is(err, ErrControllerRequired) {
		t.Errorf("NewAssetControl(null controller) error = %v, want ErrControllerRequired", err)
	}
}

func TestAssetControlReassign(t *testing.T) {
	at := time.Now()
	c, err := NewAssetControl("ast_1", "actor-a", at)
	if err != nil {
		t.Fatalf("NewAssetControl() error = %v", err)
	}

	if err := c.Reassign("actor-b", at.Add(time.Minute)); err != nil {
		t.Fatalf("Reassign() error = %v", err)
	}
	if !c.IsControlledBy("actor-b") {
		t.Errorf("Controller() = %v, want actor-b", c.Controller())
	}

	// controller can be replaced but never unset
	if err := c.Reassign("", at.Add(2*time.Minute)); !errors.Is(err, ErrControllerRequired) {
		t.Errorf("Reassign(null) error = %v, want ErrControllerRequired", err)
	}
	if !c.IsControlledBy("actor-b") {
		t.Error("failed reassign must not change the controller")
	}
}

func TestAssetControlDeletionFlag(t *testing.T) {
	at := time.Now()
	c, err := NewAssetControl("ast_1", "actor-a", at)
	if err != nil {
		t.Fatalf("NewAssetControl() error = %v", err)
	}

	c.RequestDeletion(at)
	if !c.DeletionRequested() {
		t.Error("flag should be set after RequestDeletion()")
	}
	c.RequestDeletion(at) // idempotent
	if !c.DeletionRequested() {
		t.Error("flag should stay set")
	}

	c.RevertDeletion(at)
	if c.DeletionRequested() {
		t.Error("flag should be cleared after RevertDeletion()")
	}
}

func TestRoleIsValid(t *testing.T) {
	if !RoleController.IsValid() || !RoleProcessor.IsValid() {
		t.Error("known roles should be valid")
	}
	if Role("owner").IsValid() {
		t.Error("unknown roles should be invalid")
	}
}
