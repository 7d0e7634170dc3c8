package usecases

import (
	"context"
	"testing"
	"time"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/asset/dto"
	"iprights/internal/application/testutil"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	apperrors "iprights/internal/shared/errors"
)

type registerFixture struct {
	assets  *testutil.MockAssetRepository
	access  *testutil.MockAccessRepository
	roles   *testutil.MockRoleStore
	log     *events.Log
	service *appaccess.Service
	uc      *RegisterAssetUseCase
}

func newRegisterFixture() *registerFixture {
	assets := testutil.NewMockAssetRepository()
	access := testutil.NewMockAccessRepository()
	roles := testutil.NewMockRoleStore()
	log := events.NewLog()
	logger := testutil.NewMockLogger()
	service := appaccess.NewService(access, roles, log, logger)
	uc := NewRegisterAssetUseCase(assets, service, log, testutil.PassthroughRunner{}, logger)
	return &registerFixture{
		assets:  assets,
		access:  access,
		roles:   roles,
		log:     log,
		service: service,
		uc:      uc,
	}
}

// TestRegisterAsset_Success verifies registration creates the asset, makes
// the registrant its initial owner and data controller, and appends one
// registration event.
func TestRegisterAsset_Success(t *testing.T) {
	f := newRegisterFixture()

	result, err := f.uc.Execute(context.Background(), dto.RegisterAssetRequest{
		ContentHash: "0xabc123",
		AssetType:   "copyright",
		Caller:      "alice",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Owner != "alice" {
		t.Errorf("result.Owner = %v, want alice", result.Owner)
	}
	if result.RegisteredBy != "alice" {
		t.Errorf("result.RegisteredBy = %v, want alice", result.RegisteredBy)
	}
	if !result.Active {
		t.Error("result.Active = false, want true")
	}
	if result.ID == "" {
		t.Fatal("result.ID is empty")
	}

	// Registrant became the data controller of the new asset.
	isController, err := f.service.IsController(context.Background(), result.ID, actor.ID("alice"))
	if err != nil {
		t.Fatalf("IsController() error = %v", err)
	}
	if !isController {
		t.Error("registrant is not the controller of the registered asset")
	}

	// The subject index points back at the asset.
	subjectAssets, err := f.access.ListSubjectAssets(context.Background(), actor.ID("alice"))
	if err != nil {
		t.Fatalf("ListSubjectAssets() error = %v", err)
	}
	if len(subjectAssets) != 1 || subjectAssets[0] != result.ID {
		t.Errorf("subject index = %v, want [%v]", subjectAssets, result.ID)
	}

	records := f.log.Replay()
	if len(records) != 1 {
		t.Fatalf("event log has %d records, want 1", len(records))
	}
	if records[0].Type != events.TypeAssetRegistered {
		t.Errorf("event type = %v, want %v", records[0].Type, events.TypeAssetRegistered)
	}
	if records[0].EntityID != result.ID {
		t.Errorf("event entity = %v, want %v", records[0].EntityID, result.ID)
	}
}

// TestRegisterAsset_DuplicateID verifies that re-running the identical
// registration (same content, registrant and instant) is rejected as a
// conflict. A fixed clock forces the id collision.
func TestRegisterAsset_DuplicateID(t *testing.T) {
	f := newRegisterFixture()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return fixed }

	request := dto.RegisterAssetRequest{
		ContentHash: "0xabc123",
		AssetType:   "patent",
		Caller:      "alice",
	}
	if _, err := f.uc.Execute(context.Background(), request); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	_, err := f.uc.Execute(context.Background(), request)
	if err == nil {
		t.Fatal("second Execute() succeeded, want conflict")
	}
	if !apperrors.IsConflictError(err) {
		t.Errorf("error = %v, want conflict", err)
	}
	if !apperrors.HasReason(err, apperrors.ReasonAlreadyRegistered) {
		t.Errorf("error reason missing %v: %v", apperrors.ReasonAlreadyRegistered, err)
	}
}

// TestRegisterAsset_DeterministicID verifies the same identity tuple always
// derives the same id, and a different registrant a different one.
func TestRegisterAsset_DeterministicID(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f1 := newRegisterFixture()
	f1.uc.now = func() time.Time { return fixed }
	f2 := newRegisterFixture()
	f2.uc.now = func() time.Time { return fixed }

	r1, err := f1.uc.Execute(context.Background(), dto.RegisterAssetRequest{
		ContentHash: "0xabc123", AssetType: "copyright", Caller: "alice",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	r2, err := f2.uc.Execute(context.Background(), dto.RegisterAssetRequest{
		ContentHash: "0xabc123", AssetType: "copyright", Caller: "alice",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if r1.ID != r2.ID {
		t.Errorf("ids differ for identical registration: %v vs %v", r1.ID, r2.ID)
	}

	r3, err := f2.uc.Execute(context.Background(), dto.RegisterAssetRequest{
		ContentHash: "0xabc123", AssetType: "copyright", Caller: "bob",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if r3.ID == r1.ID {
		t.Error("different registrants derived the same id")
	}
}

func TestRegisterAsset_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request dto.RegisterAssetRequest
	}{
		{
			name:    "missing content hash",
			request: dto.RegisterAssetRequest{AssetType: "copyright", Caller: "alice"},
		},
		{
			name:    "unknown asset type",
			request: dto.RegisterAssetRequest{ContentHash: "0xabc", AssetType: "recipe", Caller: "alice"},
		},
		{
			name:    "missing caller",
			request: dto.RegisterAssetRequest{ContentHash: "0xabc", AssetType: "copyright"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegisterFixture()
			_, err := f.uc.Execute(context.Background(), tt.request)
			if err == nil {
				t.Fatal("Execute() succeeded, want validation error")
			}
			if !apperrors.IsValidationError(err) {
				t.Errorf("error = %v, want validation error", err)
			}
			if f.log.Len() != 0 {
				t.Errorf("event log has %d records, want 0", f.log.Len())
			}
		})
	}
}
