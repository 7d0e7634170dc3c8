package accesscontrol

import (
	"fmt"
	"time"

	"iprights/internal/domain/shared/actor"
)

// AssetControl is the per-asset data-protection record: who is currently
// accountable for the asset's personal-data obligations, and whether logical
// deletion has been requested. Every registered asset has exactly one
// controller at all times; the controller can be reassigned but never unset.
//
// The deletion flag is advisory metadata for external reporting. It does not
// gate registry, transfer or licensing operations.
type AssetControl struct {
	assetID           string
	controller        actor.ID
	deletionRequested bool
	createdAt         time.Time
	updatedAt         time.Time
}

// NewAssetControl creates the control record set up at registration time.
func NewAssetControl(assetID string, controller actor.ID, at time.Time) (*AssetControl, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if controller.IsZero() {
		return nil, ErrControllerRequired
	}

	return &AssetControl{
		assetID:    assetID,
		controller: controller,
		createdAt:  at.UTC(),
		updatedAt:  at.UTC(),
	}, nil
}

// ReconstructAssetControl rebuilds a control record from persistence.
func ReconstructAssetControl(assetID string, controller actor.ID, deletionRequested bool, createdAt, updatedAt time.Time) (*AssetControl, error) {
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if controller.IsZero() {
		return nil, ErrControllerRequired
	}

	return &AssetControl{
		assetID:           assetID,
		controller:        controller,
		deletionRequested: deletionRequested,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (c *AssetControl) AssetID() string         { return c.assetID }
func (c *AssetControl) Controller() actor.ID    { return c.controller }
func (c *AssetControl) DeletionRequested() bool { return c.deletionRequested }
func (c *AssetControl) CreatedAt() time.Time    { return c.createdAt }
func (c *AssetControl) UpdatedAt() time.Time    { return c.updatedAt }

// IsControlledBy reports whether the actor is the current controller.
func (c *AssetControl) IsControlledBy(who actor.ID) bool {
	return c.controller == who
}

// Reassign hands controllership to a new actor. The controller can never be
// unset, only replaced.
func (c *AssetControl) Reassign(newController actor.ID, at time.Time) error {
	if newController.IsZero() {
		return ErrControllerRequired
	}
	c.controller = newController
	c.updatedAt = at.UTC()
	return nil
}

// RequestDeletion sets the logical-deletion flag. Idempotent.
func (c *AssetControl) RequestDeletion(at time.Time) {
	c.deletionRequested = true
	c.updatedAt = at.UTC()
}

// RevertDeletion clears the logical-deletion flag. Idempotent.
func (c *AssetControl) RevertDeletion(at time.Time) {
	c.deletionRequested = false
	c.updatedAt = at.UTC()
}
