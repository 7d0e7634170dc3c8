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

// RevertLogicalDeletionUseCase clears the logical-deletion flag.
// Administrators only, stricter than the request side.
type RevertLogicalDeletionUseCase struct {
	repo    accesscontrol.Repository
	service *appaccess.Service
	events  events.Recorder
	tx      db.Runner
	logger  logger.Interface
}

// NewRevertLogicalDeletionUseCase creates a new revert logical deletion use case
func NewRevertLogicalDeletionUseCase(
	repo accesscontrol.Repository,
	service *appaccess.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *RevertLogicalDeletionUseCase {
	return &RevertLogicalDeletionUseCase{
		repo:    repo,
		service: service,
		events:  recorder,
		tx:      tx,
		logger:  log,
	}
}

// Execute executes the revert logical deletion use case
func (uc *RevertLogicalDeletionUseCase) Execute(ctx context.Context, request dto.LogicalDeletionRequest) error {
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
		if !isAdmin {
			uc.logger.Warnw("logical deletion revert denied",
				"asset_id", request.AssetID,
				"caller", caller,
			)
			return apperrors.NewForbiddenError("only administrators may revert logical deletion")
		}

		control.RevertDeletion(time.Now())
		if err := uc.repo.Save(ctx, control); err != nil {
			return fmt.Errorf("failed to save control record: %w", err)
		}

		rec := events.New(events.TypeDeletionReverted, request.AssetID, caller.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record deletion revert: %w", err)
		}

		uc.logger.Infow("logical deletion reverted", "asset_id", request.AssetID, "caller", caller)
		return nil
	})
}
