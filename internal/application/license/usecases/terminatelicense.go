package usecases

import (
	"context"
	"errors"
	"fmt"

	"iprights/internal/application/license/dto"
	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// TerminateLicenseUseCase deactivates a grant. Either party may terminate;
// termination is terminal with no reactivation path.
type TerminateLicenseUseCase struct {
	licenses license.Repository
	events   events.Recorder
	tx       db.Runner
	logger   logger.Interface
}

// NewTerminateLicenseUseCase creates a new terminate license use case
func NewTerminateLicenseUseCase(
	licenses license.Repository,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *TerminateLicenseUseCase {
	return &TerminateLicenseUseCase{
		licenses: licenses,
		events:   recorder,
		tx:       tx,
		logger:   log,
	}
}

// Execute executes the terminate license use case
func (uc *TerminateLicenseUseCase) Execute(ctx context.Context, request dto.TerminateLicenseRequest) error {
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		grant, err := uc.licenses.GetByID(ctx, request.LicenseID)
		if errors.Is(err, license.ErrLicenseNotFound) {
			return apperrors.NewNotFoundError("license not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load license: %w", err)
		}

		if !grant.IsParty(caller) {
			uc.logger.Warnw("license termination denied", "license_id", request.LicenseID, "caller", caller)
			return apperrors.NewForbiddenError("only the licensor or licensee may terminate")
		}
		if err := grant.Terminate(); err != nil {
			return apperrors.NewConflictError("license already terminated", apperrors.ReasonAlreadyTerminated)
		}
		if err := uc.licenses.Update(ctx, grant); err != nil {
			return fmt.Errorf("failed to save license: %w", err)
		}

		rec := events.New(events.TypeLicenseTerminated, grant.ID(), caller.String()).
			WithDetail("asset_id", grant.AssetID())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record license termination: %w", err)
		}

		uc.logger.Infow("license terminated", "license_id", grant.ID(), "caller", caller)
		return nil
	})
}
