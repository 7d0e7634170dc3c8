package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"iprights/internal/application/license/dto"
	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// PayRoyaltyUseCase accrues a royalty payment on an active grant and moves
// value from the payer to the licensor through the payment gateway. The
// cumulative paid amount only ever grows.
type PayRoyaltyUseCase struct {
	licenses license.Repository
	payments license.PaymentGateway
	events   events.Recorder
	tx       db.Runner
	logger   logger.Interface
}

// NewPayRoyaltyUseCase creates a new pay royalty use case
func NewPayRoyaltyUseCase(
	licenses license.Repository,
	payments license.PaymentGateway,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *PayRoyaltyUseCase {
	return &PayRoyaltyUseCase{
		licenses: licenses,
		payments: payments,
		events:   recorder,
		tx:       tx,
		logger:   log,
	}
}

// Execute executes the pay royalty use case
func (uc *PayRoyaltyUseCase) Execute(ctx context.Context, request dto.PayRoyaltyRequest) (*dto.LicenseResponse, error) {
	if request.Amount == 0 {
		return nil, apperrors.NewValidationError("royalty amount must be positive", apperrors.ReasonInvalidAmount)
	}
	caller := actor.ID(request.Caller)

	var grant *license.Grant
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		grant, err = uc.licenses.GetByID(ctx, request.LicenseID)
		if errors.Is(err, license.ErrLicenseNotFound) {
			return apperrors.NewNotFoundError("license not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load license: %w", err)
		}

		if err := grant.AddRoyalty(request.Amount); err != nil {
			if errors.Is(err, license.ErrLicenseInactive) {
				return apperrors.NewValidationError("license is inactive", apperrors.ReasonInactiveLicense)
			}
			return apperrors.NewValidationError(err.Error(), apperrors.ReasonInvalidAmount)
		}
		if err := uc.licenses.Update(ctx, grant); err != nil {
			return fmt.Errorf("failed to save license: %w", err)
		}

		if err := uc.payments.Transfer(ctx, caller, grant.Licensor(), request.Amount, grant.ID()); err != nil {
			return fmt.Errorf("failed to transfer royalty value: %w", err)
		}

		rec := events.New(events.TypeRoyaltyPaid, grant.ID(), caller.String(), grant.Licensor().String()).
			WithDetail("amount", strconv.FormatUint(request.Amount, 10)).
			WithDetail("asset_id", grant.AssetID())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record royalty payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("royalty paid",
		"license_id", grant.ID(),
		"payer", caller,
		"amount", request.Amount,
		"royalty_paid", grant.RoyaltyPaid(),
	)

	return toLicenseResponse(grant), nil
}
