package usecases

import (
	"context"
	"errors"
	"fmt"

	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// GetAssetUseCase retrieves one asset record by id.
type GetAssetUseCase struct {
	assets asset.Repository
	logger logger.Interface
}

// NewGetAssetUseCase creates a new get asset use case
func NewGetAssetUseCase(assets asset.Repository, log logger.Interface) *GetAssetUseCase {
	return &GetAssetUseCase{assets: assets, logger: log}
}

// Execute executes the get asset use case
func (uc *GetAssetUseCase) Execute(ctx context.Context, assetID string) (*dto.AssetResponse, error) {
	record, err := uc.assets.GetByID(ctx, assetID)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return nil, apperrors.NewNotFoundError("asset not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	return toAssetResponse(record), nil
}
