package usecases

import (
	"context"
	"errors"
	"fmt"

	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// ReactivateAssetUseCase marks an asset active again. Owner only, stricter
// than deactivation.
type ReactivateAssetUseCase struct {
	assets asset.Repository
	events events.Recorder
	tx     db.Runner
	logger logger.Interface
}

// NewReactivateAssetUseCase creates a new reactivate asset use case
func NewReactivateAssetUseCase(
	assets asset.Repository,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *ReactivateAssetUseCase {
	return &ReactivateAssetUseCase{
		assets: assets,
		events: recorder,
		tx:     tx,
		logger: log,
	}
}

// Execute executes the reactivate asset use case
func (uc *ReactivateAssetUseCase) Execute(ctx context.Context, request dto.ActivationRequest) error {
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.assets.GetByID(ctx, request.AssetID)
		if errors.Is(err, asset.ErrAssetNotFound) {
			return apperrors.NewNotFoundError("asset not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load asset: %w", err)
		}

		if !record.IsOwnedBy(caller) {
			uc.logger.Warnw("asset reactivation denied", "asset_id", request.AssetID, "caller", caller)
			return apperrors.NewForbiddenError("only the owner may reactivate an asset")
		}

		record.Reactivate()
		if err := uc.assets.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to save asset: %w", err)
		}

		rec := events.New(events.TypeAssetReactivated, request.AssetID, caller.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record reactivation: %w", err)
		}

		uc.logger.Infow("asset reactivated", "asset_id", request.AssetID, "caller", caller)
		return nil
	})
}
