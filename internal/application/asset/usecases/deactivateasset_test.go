package usecases

import (
	"context"
	"testing"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/asset/dto"
	"iprights/internal/application/testutil"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	apperrors "iprights/internal/shared/errors"
)

type lifecycleFixture struct {
	assets     *testutil.MockAssetRepository
	service    *appaccess.Service
	roles      *testutil.MockRoleStore
	log        *events.Log
	register   *RegisterAssetUseCase
	deactivate *DeactivateAssetUseCase
	reactivate *ReactivateAssetUseCase
	status     *AssetStatusUseCase
}

func newLifecycleFixture(admins ...actor.ID) *lifecycleFixture {
	assets := testutil.NewMockAssetRepository()
	access := testutil.NewMockAccessRepository()
	roles := testutil.NewMockRoleStore(admins...)
	log := events.NewLog()
	logger := testutil.NewMockLogger()
	service := appaccess.NewService(access, roles, log, logger)
	runner := testutil.PassthroughRunner{}
	return &lifecycleFixture{
		assets:     assets,
		service:    service,
		roles:      roles,
		log:        log,
		register:   NewRegisterAssetUseCase(assets, service, log, runner, logger),
		deactivate: NewDeactivateAssetUseCase(assets, service, log, runner, logger),
		reactivate: NewReactivateAssetUseCase(assets, log, runner, logger),
		status:     NewAssetStatusUseCase(assets, logger),
	}
}

func (f *lifecycleFixture) registerAsset(t *testing.T, owner string) string {
	t.Helper()
	result, err := f.register.Execute(context.Background(), dto.RegisterAssetRequest{
		ContentHash: "0xcontent-" + owner,
		AssetType:   "copyright",
		Caller:      owner,
	})
	if err != nil {
		t.Fatalf("registerAsset(%s) error = %v", owner, err)
	}
	return result.ID
}

func TestDeactivateAsset_Authorization(t *testing.T) {
	tests := []struct {
		name      string
		caller    string
		wantErr   bool
		forbidden bool
	}{
		{name: "owner may deactivate", caller: "alice"},
		{name: "administrator may deactivate", caller: "admin"},
		{name: "stranger is denied", caller: "mallory", wantErr: true, forbidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(actor.ID("admin"))
			assetID := f.registerAsset(t, "alice")

			err := f.deactivate.Execute(context.Background(), dto.ActivationRequest{
				AssetID: assetID,
				Caller:  tt.caller,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Execute() succeeded, want error")
				}
				if tt.forbidden && !apperrors.IsForbiddenError(err) {
					t.Errorf("error = %v, want forbidden", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			status, err := f.status.Execute(context.Background(), assetID)
			if err != nil {
				t.Fatalf("status error = %v", err)
			}
			if status.Active {
				t.Error("asset still active after deactivation")
			}
		})
	}
}

// TestDeactivateAsset_ByController verifies that the asset's data controller
// may deactivate it even when not the registry owner.
func TestDeactivateAsset_ByController(t *testing.T) {
	f := newLifecycleFixture()
	assetID := f.registerAsset(t, "alice")

	// Hand controllership to carol; registry ownership stays with alice.
	if err := f.service.ReassignController(context.Background(), assetID, actor.ID("carol")); err != nil {
		t.Fatalf("ReassignController() error = %v", err)
	}

	err := f.deactivate.Execute(context.Background(), dto.ActivationRequest{
		AssetID: assetID,
		Caller:  "carol",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	status, _ := f.status.Execute(context.Background(), assetID)
	if status.Active {
		t.Error("asset still active after controller deactivation")
	}
}

func TestDeactivateAsset_NotFound(t *testing.T) {
	f := newLifecycleFixture()

	err := f.deactivate.Execute(context.Background(), dto.ActivationRequest{
		AssetID: "ast_missing",
		Caller:  "alice",
	})
	if err == nil {
		t.Fatal("Execute() succeeded, want not found")
	}
	if !apperrors.IsNotFoundError(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

// TestReactivateAsset_OwnerOnly verifies reactivation is stricter than
// deactivation: even an administrator cannot reactivate on the owner's
// behalf.
func TestReactivateAsset_OwnerOnly(t *testing.T) {
	f := newLifecycleFixture(actor.ID("admin"))
	assetID := f.registerAsset(t, "alice")

	if err := f.deactivate.Execute(context.Background(), dto.ActivationRequest{AssetID: assetID, Caller: "alice"}); err != nil {
		t.Fatalf("deactivate error = %v", err)
	}

	err := f.reactivate.Execute(context.Background(), dto.ActivationRequest{AssetID: assetID, Caller: "admin"})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("administrator reactivation error = %v, want forbidden", err)
	}

	if err := f.reactivate.Execute(context.Background(), dto.ActivationRequest{AssetID: assetID, Caller: "alice"}); err != nil {
		t.Fatalf("owner reactivation error = %v", err)
	}

	status, _ := f.status.Execute(context.Background(), assetID)
	if !status.Active {
		t.Error("asset inactive after owner reactivation")
	}
}

// TestAssetStatus_MissingReadsInactive verifies the status query never fails:
// an unregistered id reads as inactive.
func TestAssetStatus_MissingReadsInactive(t *testing.T) {
	f := newLifecycleFixture()

	status, err := f.status.Execute(context.Background(), "ast_unknown")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if status.Active {
		t.Error("unknown asset reads active, want inactive")
	}
}
