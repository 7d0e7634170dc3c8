package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/accesscontrol/dto"
	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// RequestLogicalDeletionUseCase sets the per-asset logical-deletion flag.
// The flag is advisory metadata for external reporting; registry, transfer
// and licensing operations do not consult it. Authorized for the current
// controller or an administrator.
type RequestLogicalDeletionUseCase struct {
	repo    accesscontrol.Repository
	service *appaccess.Service
	events  events.Recorder
	tx      db.Runner
	logger  logger.Interface
}

// NewRequestLogicalDeletionUseCase creates a new request logical deletion use case
func NewRequestLogicalDeletionUseCase(
	repo accesscontrol.Repository,
	service *appaccess.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *RequestLogicalDeletionUseCase {
	return &RequestLogicalDeletionUseCase{
		repo:    repo,
		service: service,
		events:  recorder,
		tx:      tx,
		logger:  log,
	}
}

// Execute executes the request logical deletion use case
func (uc *RequestLogicalDeletionUseCase) Execute(ctx context.Context, request dto.LogicalDeletionRequest) error {
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		control, err := uc.repo.GetByAssetID(ctx, request.AssetID)
		if errors.Is(err, accesscontrol.ErrControlNotFound) {
			return apperrors.NewNotFoundError("asset control record not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load control record: %w", err)
		}

		isAdmin, err := uc.service.IsAdministrator(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to check administrative role: %w", err)
		}
		if !control.IsControlledBy(caller) && !isAdmin {
			uc.logger.Warnw("logical deletion request denied",
				"asset_id", request.AssetID,
				"caller", caller,
			)
			return apperrors.NewForbiddenError("caller is neither the controller nor an administrator")
		}

		control.RequestDeletion(time.Now())
		if err := uc.repo.Save(ctx, control); err != nil {
			return fmt.Errorf("failed to save control record: %w", err)
		}

		rec := events.New(events.TypeDeletionRequested, request.AssetID, caller.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record deletion request: %w", err)
		}

		uc.logger.Infow("logical deletion requested", "asset_id", request.AssetID, "caller", caller)
		return nil
	})
}
