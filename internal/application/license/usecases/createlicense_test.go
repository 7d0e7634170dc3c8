package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/license/dto"
	"iprights/internal/application/testutil"
	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/services/terms"
)

type licenseFixture struct {
	assets    *testutil.MockAssetRepository
	licenses  *testutil.MockLicenseRepository
	roles     *testutil.MockRoleStore
	payments  *testutil.MockPaymentGateway
	log       *events.Log
	create    *CreateLicenseUseCase
	terminate *TerminateLicenseUseCase
	pay       *PayRoyaltyUseCase
	validate  *ValidateLicenseUseCase
	list      *ListLicensesUseCase
}

func newLicenseFixture() *licenseFixture {
	assets := testutil.NewMockAssetRepository()
	licenses := testutil.NewMockLicenseRepository()
	access := testutil.NewMockAccessRepository()
	roles := testutil.NewMockRoleStore()
	payments := testutil.NewMockPaymentGateway()
	log := events.NewLog()
	logger := testutil.NewMockLogger()
	service := appaccess.NewService(access, roles, log, logger)
	runner := testutil.PassthroughRunner{}
	termsService := terms.NewService()
	return &licenseFixture{
		assets:    assets,
		licenses:  licenses,
		roles:     roles,
		payments:  payments,
		log:       log,
		create:    NewCreateLicenseUseCase(assets, licenses, service, termsService, log, runner, logger),
		terminate: NewTerminateLicenseUseCase(licenses, log, runner, logger),
		pay:       NewPayRoyaltyUseCase(licenses, payments, log, runner, logger),
		validate:  NewValidateLicenseUseCase(licenses, logger),
		list:      NewListLicensesUseCase(licenses, logger),
	}
}

func (f *licenseFixture) seedAsset(t *testing.T, id, owner string) {
	t.Helper()
	record, err := asset.NewAsset(id, "0xcontent-"+id, actor.ID(owner), time.Now().UTC(), asset.TypeCopyright, "")
	if err != nil {
		t.Fatalf("seedAsset: %v", err)
	}
	if err := f.assets.Create(context.Background(), record); err != nil {
		t.Fatalf("seedAsset: %v", err)
	}
}

// TestLicenseFlow covers the licensing lifecycle end to end: bob licenses
// carol with a future start date and a royalty expectation, carol pays a
// partial royalty which accrues and moves value through the gateway, and the
// grant is invalid before its window opens but valid inside it.
func TestLicenseFlow(t *testing.T) {
	f := newLicenseFixture()
	f.seedAsset(t, "ast_one", "bob")

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.create.now = func() time.Time { return now }
	start := now.Add(24 * time.Hour)

	result, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID:       "ast_one",
		Licensee:      "carol",
		StartDate:     start.Format(time.RFC3339),
		LicenseType:   "non_exclusive",
		RoyaltyAmount: 100,
		Caller:        "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}
	if result.Licensor != "bob" || result.Licensee != "carol" {
		t.Errorf("parties = %v/%v, want bob/carol", result.Licensor, result.Licensee)
	}
	if !result.Active {
		t.Error("fresh grant is not active")
	}
	if result.EndDate != nil {
		t.Error("perpetual grant carries an end date")
	}

	// Licensee gained the processor role.
	hasRole, err := f.roles.Has(context.Background(), actor.ID("carol"), accesscontrol.RoleProcessor)
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if !hasRole {
		t.Error("licensee did not receive the processor role")
	}

	// Not yet valid: the window opens tomorrow.
	f.validate.now = func() time.Time { return now }
	validity, err := f.validate.Execute(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("validate Execute() error = %v", err)
	}
	if validity.Valid {
		t.Error("grant valid before its start date")
	}

	// Valid exactly at the start instant, bounds are inclusive.
	f.validate.now = func() time.Time { return start }
	validity, _ = f.validate.Execute(context.Background(), result.ID)
	if !validity.Valid {
		t.Error("grant invalid at its start instant")
	}

	// Partial royalty accrues and moves value.
	paid, err := f.pay.Execute(context.Background(), dto.PayRoyaltyRequest{
		LicenseID: result.ID,
		Amount:    40,
		Caller:    "carol",
	})
	if err != nil {
		t.Fatalf("pay Execute() error = %v", err)
	}
	if paid.RoyaltyPaid != 40 {
		t.Errorf("RoyaltyPaid = %d, want 40", paid.RoyaltyPaid)
	}
	if len(f.payments.Payments) != 1 {
		t.Fatalf("gateway saw %d payments, want 1", len(f.payments.Payments))
	}
	p := f.payments.Payments[0]
	if p.From != actor.ID("carol") || p.To != actor.ID("bob") || p.Amount != 40 {
		t.Errorf("payment = %+v, want carol->bob 40", p)
	}

	// A second payment only ever grows the cumulative total.
	paid, err = f.pay.Execute(context.Background(), dto.PayRoyaltyRequest{
		LicenseID: result.ID, Amount: 25, Caller: "carol",
	})
	if err != nil {
		t.Fatalf("pay Execute() error = %v", err)
	}
	if paid.RoyaltyPaid != 65 {
		t.Errorf("RoyaltyPaid = %d, want 65", paid.RoyaltyPaid)
	}
}

// TestCreateLicense_TermsDigest verifies the stored digest is derived from
// the submitted terms document, and that a raw document wins over a
// caller-supplied digest.
func TestCreateLicense_TermsDigest(t *testing.T) {
	f := newLicenseFixture()
	f.create.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }
	f.seedAsset(t, "ast_one", "bob")

	document := "# License Terms\n\nRoyalty is **due monthly**.\n"
	want := terms.NewService().Digest(document)

	result, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID:     "ast_one",
		Licensee:    "carol",
		StartDate:   "2026-06-01T00:00:00Z",
		LicenseType: "exclusive",
		Terms:       document,
		TermsDigest: "stale-caller-supplied-digest",
		Caller:      "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}
	if result.TermsDigest != want {
		t.Errorf("TermsDigest = %v, want %v", result.TermsDigest, want)
	}

	// Without a document the precomputed digest passes through untouched.
	f.seedAsset(t, "ast_two", "bob")
	result, err = f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID:     "ast_two",
		Licensee:    "carol",
		StartDate:   "2026-06-01T00:00:00Z",
		LicenseType: "exclusive",
		TermsDigest: want,
		Caller:      "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}
	if result.TermsDigest != want {
		t.Errorf("TermsDigest = %v, want %v", result.TermsDigest, want)
	}
}

// TestCreateLicense_HyphenatedTypes verifies the wire aliases non-exclusive
// and single-use map onto the stored type tokens.
func TestCreateLicense_HyphenatedTypes(t *testing.T) {
	tests := []struct {
		wire string
		want string
	}{
		{"non-exclusive", "non_exclusive"},
		{"single-use", "single_use"},
		{"non_exclusive", "non_exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			f := newLicenseFixture()
			f.create.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }
			f.seedAsset(t, "ast_one", "bob")

			result, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
				AssetID: "ast_one", Licensee: "carol",
				StartDate: "2026-06-01T00:00:00Z", LicenseType: tt.wire, Caller: "bob",
			})
			if err != nil {
				t.Fatalf("create Execute() error = %v", err)
			}
			if result.LicenseType != tt.want {
				t.Errorf("LicenseType = %v, want %v", result.LicenseType, tt.want)
			}
		})
	}
}

func TestPreviewTerms(t *testing.T) {
	uc := NewPreviewTermsUseCase(terms.NewService(), testutil.NewMockLogger())

	document := "## Grant\n\nUse is **non-transferable**.\n<script>alert(1)</script>\n"
	result, err := uc.Execute(context.Background(), dto.PreviewTermsRequest{Terms: document})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(result.HTML, "<strong>non-transferable</strong>") {
		t.Errorf("HTML = %v, want rendered emphasis", result.HTML)
	}
	if strings.Contains(result.HTML, "<script>") {
		t.Error("script tag survived sanitization")
	}
	if result.Digest != terms.NewService().Digest(document) {
		t.Errorf("Digest = %v, want digest of the submitted document", result.Digest)
	}

	if _, err := uc.Execute(context.Background(), dto.PreviewTermsRequest{}); err == nil {
		t.Error("empty document accepted")
	}
}

func TestCreateLicense_Denied(t *testing.T) {
	endBeforeStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)

	tests := []struct {
		name      string
		owner     string
		deactive  bool
		request   dto.CreateLicenseRequest
		forbidden bool
		reason    string
	}{
		{
			name:  "non-owner may not license",
			owner: "bob",
			request: dto.CreateLicenseRequest{
				AssetID: "ast_one", Licensee: "carol",
				StartDate: "2026-06-01T00:00:00Z", LicenseType: "exclusive", Caller: "mallory",
			},
			forbidden: true,
		},
		{
			name:     "inactive asset may not be licensed",
			owner:    "bob",
			deactive: true,
			request: dto.CreateLicenseRequest{
				AssetID: "ast_one", Licensee: "carol",
				StartDate: "2026-06-01T00:00:00Z", LicenseType: "exclusive", Caller: "bob",
			},
			reason: apperrors.ReasonInactiveAsset,
		},
		{
			name:  "end date before start date",
			owner: "bob",
			request: dto.CreateLicenseRequest{
				AssetID: "ast_one", Licensee: "carol",
				StartDate: "2026-06-01T00:00:00Z", EndDate: &endBeforeStart,
				LicenseType: "exclusive", Caller: "bob",
			},
			reason: apperrors.ReasonInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLicenseFixture()
			f.seedAsset(t, "ast_one", tt.owner)
			if tt.deactive {
				record, _ := f.assets.GetByID(context.Background(), "ast_one")
				record.Deactivate()
				if err := f.assets.Update(context.Background(), record); err != nil {
					t.Fatal(err)
				}
			}

			_, err := f.create.Execute(context.Background(), tt.request)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			if tt.forbidden && !apperrors.IsForbiddenError(err) {
				t.Errorf("error = %v, want forbidden", err)
			}
			if tt.reason != "" && !apperrors.HasReason(err, tt.reason) {
				t.Errorf("error = %v, want reason %v", err, tt.reason)
			}

			// Nothing was created.
			licensorIDs, _ := f.licenses.ListIDsByLicensor(context.Background(), actor.ID(tt.owner))
			if len(licensorIDs) != 0 {
				t.Errorf("grants created on failure: %v", licensorIDs)
			}
		})
	}
}

func TestTerminateLicense(t *testing.T) {
	f := newLicenseFixture()
	f.create.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }
	f.seedAsset(t, "ast_one", "bob")

	result, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID: "ast_one", Licensee: "carol",
		StartDate: "2026-01-01T00:00:00Z", LicenseType: "single_use", Caller: "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	// Third parties may not terminate.
	err = f.terminate.Execute(context.Background(), dto.TerminateLicenseRequest{
		LicenseID: result.ID, Caller: "mallory",
	})
	if !apperrors.IsForbiddenError(err) {
		t.Errorf("third-party terminate error = %v, want forbidden", err)
	}

	// The licensee is a party and may terminate.
	if err := f.terminate.Execute(context.Background(), dto.TerminateLicenseRequest{
		LicenseID: result.ID, Caller: "carol",
	}); err != nil {
		t.Fatalf("terminate Execute() error = %v", err)
	}

	// Termination is terminal.
	err = f.terminate.Execute(context.Background(), dto.TerminateLicenseRequest{
		LicenseID: result.ID, Caller: "bob",
	})
	if !apperrors.IsConflictError(err) || !apperrors.HasReason(err, apperrors.ReasonAlreadyTerminated) {
		t.Errorf("double terminate error = %v, want already-terminated conflict", err)
	}

	// A terminated grant is invalid and takes no payments.
	validity, _ := f.validate.Execute(context.Background(), result.ID)
	if validity.Valid {
		t.Error("terminated grant reads valid")
	}
	_, err = f.pay.Execute(context.Background(), dto.PayRoyaltyRequest{
		LicenseID: result.ID, Amount: 10, Caller: "carol",
	})
	if !apperrors.HasReason(err, apperrors.ReasonInactiveLicense) {
		t.Errorf("pay on terminated error = %v, want inactive-license reason", err)
	}
	if len(f.payments.Payments) != 0 {
		t.Errorf("gateway saw %d payments, want 0", len(f.payments.Payments))
	}
}

func TestPayRoyalty_Validation(t *testing.T) {
	f := newLicenseFixture()

	_, err := f.pay.Execute(context.Background(), dto.PayRoyaltyRequest{
		LicenseID: "lic_one", Amount: 0, Caller: "carol",
	})
	if !apperrors.HasReason(err, apperrors.ReasonInvalidAmount) {
		t.Errorf("zero amount error = %v, want invalid-amount reason", err)
	}

	_, err = f.pay.Execute(context.Background(), dto.PayRoyaltyRequest{
		LicenseID: "lic_missing", Amount: 10, Caller: "carol",
	})
	if !apperrors.IsNotFoundError(err) {
		t.Errorf("unknown license error = %v, want not found", err)
	}
}

// TestValidateLicense_UnknownID verifies the validity check never fails.
func TestValidateLicense_UnknownID(t *testing.T) {
	f := newLicenseFixture()

	validity, err := f.validate.Execute(context.Background(), "lic_unknown")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if validity.Valid {
		t.Error("unknown license reads valid")
	}
}

// TestListLicenses_Unfiltered verifies both sides of the index list grants
// in creation order and keep terminated grants listed.
func TestListLicenses_Unfiltered(t *testing.T) {
	f := newLicenseFixture()
	f.create.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }
	f.seedAsset(t, "ast_one", "bob")
	f.seedAsset(t, "ast_two", "bob")

	first, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID: "ast_one", Licensee: "carol",
		StartDate: "2026-01-01T00:00:00Z", LicenseType: "exclusive", Caller: "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}
	second, err := f.create.Execute(context.Background(), dto.CreateLicenseRequest{
		AssetID: "ast_two", Licensee: "carol",
		StartDate: "2026-01-01T00:00:00Z", LicenseType: "non_exclusive", Caller: "bob",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	if err := f.terminate.Execute(context.Background(), dto.TerminateLicenseRequest{
		LicenseID: first.ID, Caller: "bob",
	}); err != nil {
		t.Fatalf("terminate Execute() error = %v", err)
	}

	asLicensor, err := f.list.Execute(context.Background(), dto.ListLicensesRequest{Actor: "bob", Side: SideLicensor})
	if err != nil {
		t.Fatalf("list Execute() error = %v", err)
	}
	if len(asLicensor.LicenseIDs) != 2 || asLicensor.LicenseIDs[0] != first.ID || asLicensor.LicenseIDs[1] != second.ID {
		t.Errorf("licensor index = %v, want [%v %v]", asLicensor.LicenseIDs, first.ID, second.ID)
	}

	asLicensee, err := f.list.Execute(context.Background(), dto.ListLicensesRequest{Actor: "carol", Side: SideLicensee})
	if err != nil {
		t.Fatalf("list Execute() error = %v", err)
	}
	if len(asLicensee.LicenseIDs) != 2 {
		t.Errorf("licensee index = %v, want both grants", asLicensee.LicenseIDs)
	}

	if _, err := f.list.Execute(context.Background(), dto.ListLicensesRequest{Actor: "bob", Side: "owner"}); err == nil {
		t.Error("invalid side accepted")
	}
}
