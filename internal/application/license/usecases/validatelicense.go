package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iprights/internal/application/license/dto"
	"iprights/internal/domain/license"
	"iprights/internal/shared/logger"
)

// ValidateLicenseUseCase reports whether a grant is exercisable right now.
// Never fails: unknown ids read as invalid. A grant is valid iff it is
// active, its start date has been reached and its end date (when present)
// has not passed; both bounds are inclusive.
type ValidateLicenseUseCase struct {
	licenses license.Repository
	logger   logger.Interface
	now      func() time.Time
}

// NewValidateLicenseUseCase creates a new validate license use case
func NewValidateLicenseUseCase(licenses license.Repository, log logger.Interface) *ValidateLicenseUseCase {
	return &ValidateLicenseUseCase{licenses: licenses, logger: log, now: time.Now}
}

// Execute executes the validate license use case
func (uc *ValidateLicenseUseCase) Execute(ctx context.Context, licenseID string) (*dto.LicenseValidityResponse, error) {
	response := &dto.LicenseValidityResponse{LicenseID: licenseID}

	grant, err := uc.licenses.GetByID(ctx, licenseID)
	if errors.Is(err, license.ErrLicenseNotFound) {
		return response, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load license: %w", err)
	}

	response.Valid = grant.IsValidAt(uc.now())
	return response, nil
}
