package usecases

import (
	"context"
	"errors"
	"fmt"

	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/shared/logger"
)

// AssetStatusUseCase reports whether an asset is active. Never fails: a
// missing id reads as inactive.
type AssetStatusUseCase struct {
	assets asset.Repository
	logger logger.Interface
}

// NewAssetStatusUseCase creates a new asset status use case
func NewAssetStatusUseCase(assets asset.Repository, log logger.Interface) *AssetStatusUseCase {
	return &AssetStatusUseCase{assets: assets, logger: log}
}

// Execute executes the asset status use case
func (uc *AssetStatusUseCase) Execute(ctx context.Context, assetID string) (*dto.AssetStatusResponse, error) {
	record, err := uc.assets.GetByID(ctx, assetID)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return &dto.AssetStatusResponse{AssetID: assetID, Active: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	return &dto.AssetStatusResponse{AssetID: assetID, Active: record.IsActive()}, nil
}
