package usecases

import (
	"context"
	"fmt"

	"iprights/internal/application/license/dto"
	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// Sides of the license index.
const (
	SideLicensor = "licensor"
	SideLicensee = "licensee"
)

// ListLicensesUseCase returns an actor's license ids from one side of the
// index, in creation order. Deliberately unfiltered: expired and terminated
// grants stay listed so the index is cheap to maintain, and callers exclude
// them via the validity check.
type ListLicensesUseCase struct {
	licenses license.Repository
	logger   logger.Interface
}

// NewListLicensesUseCase creates a new list licenses use case
func NewListLicensesUseCase(licenses license.Repository, log logger.Interface) *ListLicensesUseCase {
	return &ListLicensesUseCase{licenses: licenses, logger: log}
}

// Execute executes the list licenses use case
func (uc *ListLicensesUseCase) Execute(ctx context.Context, request dto.ListLicensesRequest) (*dto.ListLicensesResponse, error) {
	who := actor.ID(request.Actor)

	var (
		ids []string
		err error
	)
	switch request.Side {
	case SideLicensor:
		ids, err = uc.licenses.ListIDsByLicensor(ctx, who)
	case SideLicensee:
		ids, err = uc.licenses.ListIDsByLicensee(ctx, who)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("invalid side: %s", request.Side))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	return &dto.ListLicensesResponse{Actor: request.Actor, Side: request.Side, LicenseIDs: ids}, nil
}
