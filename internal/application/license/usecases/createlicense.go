package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/license/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/id"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/services/terms"
)

// CreateLicenseUseCase issues a license grant over a registry asset. Only
// the asset's current owner may license it, the asset must be active, and
// the licensee gains a processor role in access control because licensing
// establishes a data-processing relationship.
type CreateLicenseUseCase struct {
	assets   asset.Repository
	licenses license.Repository
	access   *appaccess.Service
	terms    terms.Service
	events   events.Recorder
	tx       db.Runner
	logger   logger.Interface
	now      func() time.Time
}

// NewCreateLicenseUseCase creates a new create license use case
func NewCreateLicenseUseCase(
	assets asset.Repository,
	licenses license.Repository,
	access *appaccess.Service,
	termsService terms.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *CreateLicenseUseCase {
	return &CreateLicenseUseCase{
		assets:   assets,
		licenses: licenses,
		access:   access,
		terms:    termsService,
		events:   recorder,
		tx:       tx,
		logger:   log,
		now:      time.Now,
	}
}

// Execute executes the create license use case
func (uc *CreateLicenseUseCase) Execute(ctx context.Context, request dto.CreateLicenseRequest) (*dto.LicenseResponse, error) {
	caller := actor.ID(request.Caller)
	licensee := actor.ID(request.Licensee)
	if licensee.IsZero() {
		return nil, apperrors.NewValidationError("licensee is required", apperrors.ReasonInvalidRecipient)
	}

	licenseType, ok := license.ParseType(request.LicenseType)
	if !ok {
		uc.logger.Warnw("invalid license type", "license_type", request.LicenseType)
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid license type: %s", request.LicenseType))
	}

	termsDigest := request.TermsDigest
	if request.Terms != "" {
		termsDigest = uc.terms.Digest(request.Terms)
	}

	startDate, err := time.Parse(time.RFC3339, request.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid start date: %s (expected RFC3339)", request.StartDate))
	}
	var endDate *time.Time
	if request.EndDate != nil && *request.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, *request.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid end date: %s (expected RFC3339)", *request.EndDate))
		}
		endDate = &parsed
	}

	createdAt := uc.now().UTC()
	licenseID := id.ForLicense(request.AssetID, request.Caller, request.Licensee, createdAt)

	var grant *license.Grant
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.assets.GetByID(ctx, request.AssetID)
		if errors.Is(err, asset.ErrAssetNotFound) {
			return apperrors.NewNotFoundError("asset not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load asset: %w", err)
		}

		if !record.IsOwnedBy(caller) {
			uc.logger.Warnw("license creation denied", "asset_id", request.AssetID, "caller", caller)
			return apperrors.NewForbiddenError("only the current owner may license an asset")
		}
		if !record.IsActive() {
			return apperrors.NewValidationError("asset is inactive", apperrors.ReasonInactiveAsset)
		}

		grant, err = license.NewGrant(licenseID, request.AssetID, caller, licensee, startDate, endDate, licenseType, termsDigest, request.RoyaltyAmount, createdAt)
		if errors.Is(err, license.ErrInvalidDateRange) {
			return apperrors.NewValidationError("invalid license date range", apperrors.ReasonInvalidDateRange)
		}
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.licenses.Create(ctx, grant); err != nil {
			return fmt.Errorf("failed to save license: %w", err)
		}

		// licensee now has a recorded data-processing relationship
		if err := uc.access.GrantProcessor(ctx, licensee, request.AssetID); err != nil {
			return err
		}

		rec := events.New(events.TypeLicenseCreated, licenseID, caller.String(), licensee.String()).
			WithDetail("asset_id", request.AssetID).
			WithDetail("license_type", licenseType.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record license creation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("license created",
		"license_id", licenseID,
		"asset_id", request.AssetID,
		"licensor", caller,
		"licensee", licensee,
	)

	return toLicenseResponse(grant), nil
}

func toLicenseResponse(g *license.Grant) *dto.LicenseResponse {
	return &dto.LicenseResponse{
		ID:            g.ID(),
		AssetID:       g.AssetID(),
		Licensor:      g.Licensor().String(),
		Licensee:      g.Licensee().String(),
		StartDate:     g.StartDate(),
		EndDate:       g.EndDate(),
		LicenseType:   g.LicenseType().String(),
		TermsDigest:   g.TermsDigest(),
		Active:        g.IsActive(),
		RoyaltyAmount: g.RoyaltyAmount(),
		RoyaltyPaid:   g.RoyaltyPaid(),
		CreatedAt:     g.CreatedAt(),
	}
}
