package usecases

import (
	"context"
	"testing"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/application/testutil"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	apperrors "iprights/internal/shared/errors"
)

type accessFixture struct {
	repo     *testutil.MockAccessRepository
	roles    *testutil.MockRoleStore
	log      *events.Log
	service  *appaccess.Service
	grant    *GrantRoleUseCase
	revoke   *RevokeRoleUseCase
	check    *CheckRoleUseCase
	register *RegisterSubjectUseCase
	reassign *ReassignControllerUseCase
	request  *RequestLogicalDeletionUseCase
	revert   *RevertLogicalDeletionUseCase
}

func newAccessFixture(trusted []actor.ID, admins ...actor.ID) *accessFixture {
	repo := testutil.NewMockAccessRepository()
	roles := testutil.NewMockRoleStore(admins...)
	log := events.NewLog()
	logger := testutil.NewMockLogger()
	service := appaccess.NewService(repo, roles, log, logger)
	runner := testutil.PassthroughRunner{}
	return &accessFixture{
		repo:     repo,
		roles:    roles,
		log:      log,
		service:  service,
		grant:    NewGrantRoleUseCase(roles, log, runner, logger),
		revoke:   NewRevokeRoleUseCase(roles, log, runner, logger),
		check:    NewCheckRoleUseCase(roles, logger),
		register: NewRegisterSubjectUseCase(service, trusted, runner, logger),
		reassign: NewReassignControllerUseCase(repo, service, runner, logger),
		request:  NewRequestLogicalDeletionUseCase(repo, service, log, runner, logger),
		revert:   NewRevertLogicalDeletionUseCase(repo, service, log, runner, logger),
	}
}

func TestGrantRole_AdminOnly(t *testing.T) {
	f := newAccessFixture(nil, actor.ID("admin"))

	// A non-administrator may not grant.
	err := f.grant.Execute(context.Background(), dto.GrantRoleRequest{
		Actor: "bob", Role: "data_processor", Caller: "mallory",
	})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("non-admin grant error = %v, want forbidden", err)
	}

	if err := f.grant.Execute(context.Background(), dto.GrantRoleRequest{
		Actor: "bob", Role: "data_processor", Caller: "admin",
	}); err != nil {
		t.Fatalf("admin grant error = %v", err)
	}

	result, err := f.check.Execute(context.Background(), dto.CheckRoleRequest{
		Actor: "bob", Role: "data_processor",
	})
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !result.HasRole {
		t.Error("granted role not visible")
	}

	// Revocation is admin-gated the same way.
	err = f.revoke.Execute(context.Background(), dto.RevokeRoleRequest{
		Actor: "bob", Role: "data_processor", Caller: "bob",
	})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("non-admin revoke error = %v, want forbidden", err)
	}
	if err := f.revoke.Execute(context.Background(), dto.RevokeRoleRequest{
		Actor: "bob", Role: "data_processor", Caller: "admin",
	}); err != nil {
		t.Fatalf("admin revoke error = %v", err)
	}

	result, _ = f.check.Execute(context.Background(), dto.CheckRoleRequest{Actor: "bob", Role: "data_processor"})
	if result.HasRole {
		t.Error("revoked role still visible")
	}
}

func TestGrantRole_UnknownRole(t *testing.T) {
	f := newAccessFixture(nil, actor.ID("admin"))

	err := f.grant.Execute(context.Background(), dto.GrantRoleRequest{
		Actor: "bob", Role: "superuser", Caller: "admin",
	})
	if !apperrors.IsValidationError(err) {
		t.Errorf("unknown role error = %v, want validation", err)
	}
}

// TestRegisterSubject_TrustedCallersOnly verifies the public registration
// entry is limited to the registry's system actor and the configured
// allowlist.
func TestRegisterSubject_TrustedCallersOnly(t *testing.T) {
	f := newAccessFixture([]actor.ID{"operator"})

	tests := []struct {
		name    string
		caller  string
		allowed bool
	}{
		{name: "registry system actor", caller: actor.Registry.String(), allowed: true},
		{name: "configured operator", caller: "operator", allowed: true},
		{name: "arbitrary actor", caller: "mallory", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.register.Execute(context.Background(), dto.RegisterSubjectRequest{
				Subject: "alice",
				AssetID: "ast_" + tt.caller,
				Caller:  tt.caller,
			})
			if tt.allowed && err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !tt.allowed && !apperrors.IsForbiddenError(err) {
				t.Errorf("error = %v, want forbidden", err)
			}
		})
	}

	// The allowed registrations landed in the subject index.
	assets, err := f.repo.ListSubjectAssets(context.Background(), actor.ID("alice"))
	if err != nil {
		t.Fatalf("ListSubjectAssets() error = %v", err)
	}
	if len(assets) != 2 {
		t.Errorf("subject index = %v, want two assets", assets)
	}
}

// TestRegisterSubject_Idempotent verifies repeat registration of the same
// pair neither errors nor duplicates the index entry, and that the first
// registration pins the initial controller.
func TestRegisterSubject_Idempotent(t *testing.T) {
	f := newAccessFixture(nil)

	for i := 0; i < 2; i++ {
		if err := f.service.RegisterSubject(context.Background(), actor.ID("alice"), "ast_one"); err != nil {
			t.Fatalf("RegisterSubject() error = %v", err)
		}
	}
	assets, _ := f.repo.ListSubjectAssets(context.Background(), actor.ID("alice"))
	if len(assets) != 1 {
		t.Errorf("subject index = %v, want exactly one entry", assets)
	}

	// A second subject on the same asset does not displace the controller.
	if err := f.service.RegisterSubject(context.Background(), actor.ID("bob"), "ast_one"); err != nil {
		t.Fatalf("RegisterSubject() error = %v", err)
	}
	control, err := f.repo.GetByAssetID(context.Background(), "ast_one")
	if err != nil {
		t.Fatalf("GetByAssetID() error = %v", err)
	}
	if control.Controller() != actor.ID("alice") {
		t.Errorf("controller = %v, want alice", control.Controller())
	}
}

func TestReassignController_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		allowed bool
	}{
		{name: "current controller", caller: "alice", allowed: true},
		{name: "administrator", caller: "admin", allowed: true},
		{name: "stranger", caller: "mallory", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccessFixture(nil, actor.ID("admin"))
			if err := f.service.RegisterSubject(context.Background(), actor.ID("alice"), "ast_one"); err != nil {
				t.Fatal(err)
			}

			err := f.reassign.Execute(context.Background(), dto.ReassignControllerRequest{
				AssetID:       "ast_one",
				NewController: "carol",
				Caller:        tt.caller,
			})
			if tt.allowed {
				if err != nil {
					t.Fatalf("Execute() error = %v", err)
				}
				isController, _ := f.service.IsController(context.Background(), "ast_one", actor.ID("carol"))
				if !isController {
					t.Error("controllership did not move")
				}
				return
			}
			if !apperrors.IsForbiddenError(err) {
				t.Errorf("error = %v, want forbidden", err)
			}
		})
	}
}

// TestLogicalDeletion covers the request/revert pair: the controller or an
// administrator may flag an asset for deletion, only an administrator may
// clear the flag, and the flag itself blocks nothing.
func TestLogicalDeletion(t *testing.T) {
	f := newAccessFixture(nil, actor.ID("admin"))
	if err := f.service.RegisterSubject(context.Background(), actor.ID("alice"), "ast_one"); err != nil {
		t.Fatal(err)
	}

	// A stranger may not request.
	err := f.request.Execute(context.Background(), dto.LogicalDeletionRequest{AssetID: "ast_one", Caller: "mallory"})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("stranger request error = %v, want forbidden", err)
	}

	if err := f.request.Execute(context.Background(), dto.LogicalDeletionRequest{AssetID: "ast_one", Caller: "alice"}); err != nil {
		t.Fatalf("controller request error = %v", err)
	}
	control, _ := f.repo.GetByAssetID(context.Background(), "ast_one")
	if !control.DeletionRequested() {
		t.Error("deletion flag not set")
	}

	// The controller may not revert; only an administrator.
	err = f.revert.Execute(context.Background(), dto.LogicalDeletionRequest{AssetID: "ast_one", Caller: "alice"})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("controller revert error = %v, want forbidden", err)
	}
	if err := f.revert.Execute(context.Background(), dto.LogicalDeletionRequest{AssetID: "ast_one", Caller: "admin"}); err != nil {
		t.Fatalf("admin revert error = %v", err)
	}
	control, _ = f.repo.GetByAssetID(context.Background(), "ast_one")
	if control.DeletionRequested() {
		t.Error("deletion flag still set after revert")
	}

	// Both transitions left audit records.
	var requested, reverted bool
	for _, rec := range f.log.Replay() {
		switch rec.Type {
		case events.TypeDeletionRequested:
			requested = true
		case events.TypeDeletionReverted:
			reverted = true
		}
	}
	if !requested || !reverted {
		t.Errorf("audit trail incomplete: requested=%v reverted=%v", requested, reverted)
	}
}

func TestLogicalDeletion_UnknownAsset(t *testing.T) {
	f := newAccessFixture(nil, actor.ID("admin"))

	err := f.request.Execute(context.Background(), dto.LogicalDeletionRequest{AssetID: "ast_missing", Caller: "admin"})
	if !apperrors.IsNotFoundError(err) {
		t.Errorf("error = %v, want not found", err)
	}
}
