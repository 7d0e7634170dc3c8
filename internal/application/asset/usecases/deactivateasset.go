package usecases

import (
	"context"
	"errors"
	"fmt"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// DeactivateAssetUseCase marks an asset inactive. Authorized for the current
// owner, the asset's controller, or a data-controller role holder.
type DeactivateAssetUseCase struct {
	assets asset.Repository
	access *appaccess.Service
	events events.Recorder
	tx     db.Runner
	logger logger.Interface
}

// NewDeactivateAssetUseCase creates a new deactivate asset use case
func NewDeactivateAssetUseCase(
	assets asset.Repository,
	access *appaccess.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *DeactivateAssetUseCase {
	return &DeactivateAssetUseCase{
		assets: assets,
		access: access,
		events: recorder,
		tx:     tx,
		logger: log,
	}
}

// Execute executes the deactivate asset use case
func (uc *DeactivateAssetUseCase) Execute(ctx context.Context, request dto.ActivationRequest) error {
	caller := actor.ID(request.Caller)

	return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.assets.GetByID(ctx, request.AssetID)
		if errors.Is(err, asset.ErrAssetNotFound) {
			return apperrors.NewNotFoundError("asset not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load asset: %w", err)
		}

		authorized := record.IsOwnedBy(caller)
		if !authorized {
			isController, err := uc.access.IsController(ctx, request.AssetID, caller)
			if err != nil {
				return fmt.Errorf("failed to check controllership: %w", err)
			}
			authorized = isController
		}
		if !authorized {
			isAdmin, err := uc.access.IsAdministrator(ctx, caller)
			if err != nil {
				return fmt.Errorf("failed to check administrative role: %w", err)
			}
			authorized = isAdmin
		}
		if !authorized {
			uc.logger.Warnw("asset deactivation denied", "asset_id", request.AssetID, "caller", caller)
			return apperrors.NewForbiddenError("caller is neither owner nor controller of the asset")
		}

		record.Deactivate()
		if err := uc.assets.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to save asset: %w", err)
		}

		rec := events.New(events.TypeAssetDeactivated, request.AssetID, caller.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record deactivation: %w", err)
		}

		uc.logger.Infow("asset deactivated", "asset_id", request.AssetID, "caller", caller)
		return nil
	})
}
