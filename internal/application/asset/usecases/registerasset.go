package usecases

import (
	"context"
	"fmt"
	"time"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/shared/db"
	"iprights/internal/shared/errors"
	"iprights/internal/shared/id"
	"iprights/internal/shared/logger"
)

// RegisterAssetUseCase records a new intellectual-property asset. The asset
// id is derived deterministically from content hash, registering actor and
// registration instant; a collision means the identical registration already
// happened and is rejected rather than silently overwritten.
type RegisterAssetUseCase struct {
	assets asset.Repository
	access *appaccess.Service
	events events.Recorder
	tx     db.Runner
	logger logger.Interface
	now    func() time.Time
}

// NewRegisterAssetUseCase creates a new register asset use case
func NewRegisterAssetUseCase(
	assets asset.Repository,
	access *appaccess.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *RegisterAssetUseCase {
	return &RegisterAssetUseCase{
		assets: assets,
		access: access,
		events: recorder,
		tx:     tx,
		logger: log,
		now:    time.Now,
	}
}

// Execute executes the register asset use case
func (uc *RegisterAssetUseCase) Execute(ctx context.Context, request dto.RegisterAssetRequest) (*dto.AssetResponse, error) {
	if request.ContentHash == "" {
		return nil, errors.NewValidationError("content hash is required")
	}
	assetType := asset.Type(request.AssetType)
	if !assetType.IsValid() {
		uc.logger.Warnw("invalid asset type", "asset_type", request.AssetType)
		return nil, errors.NewValidationError(fmt.Sprintf("invalid asset type: %s", request.AssetType))
	}
	caller := actor.ID(request.Caller)
	if caller.IsZero() {
		return nil, errors.NewValidationError("caller is required")
	}

	registeredAt := uc.now().UTC()
	assetID := id.ForAsset(request.ContentHash, request.Caller, registeredAt)

	var record *asset.Asset
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.assets.Exists(ctx, assetID)
		if err != nil {
			return fmt.Errorf("failed to check asset existence: %w", err)
		}
		if exists {
			// same content hash, caller and timestamp derive the same id
			uc.logger.Warnw("asset id collision", "asset_id", assetID, "caller", caller)
			return errors.NewConflictError("asset already registered", errors.ReasonAlreadyRegistered)
		}

		record, err = asset.NewAsset(assetID, request.ContentHash, caller, registeredAt, assetType, request.MetadataHash)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.assets.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to save asset: %w", err)
		}

		if err := uc.access.RegisterSubject(ctx, caller, assetID); err != nil {
			return fmt.Errorf("failed to register data subject: %w", err)
		}

		rec := events.New(events.TypeAssetRegistered, assetID, caller.String()).
			WithDetail("content_hash", request.ContentHash).
			WithDetail("asset_type", assetType.String())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("asset registered",
		"asset_id", assetID,
		"owner", caller,
		"asset_type", assetType,
	)

	return toAssetResponse(record), nil
}

func toAssetResponse(a *asset.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:           a.ID(),
		ContentHash:  a.ContentHash(),
		Owner:        a.Owner().String(),
		RegisteredBy: a.RegisteredBy().String(),
		RegisteredAt: a.RegisteredAt(),
		Active:       a.IsActive(),
		AssetType:    a.AssetType().String(),
		MetadataHash: a.MetadataHash(),
	}
}
