package usecases

import (
	"context"
	"fmt"

	"iprights/internal/application/asset/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/shared/logger"
)

// ListOwnedAssetsUseCase returns the ids currently owned by an actor, in
// registration order. The underlying index is live: completed transfers move
// assets between owner lists, so the result never contains assets already
// transferred away.
type ListOwnedAssetsUseCase struct {
	assets asset.Repository
	logger logger.Interface
}

// NewListOwnedAssetsUseCase creates a new list owned assets use case
func NewListOwnedAssetsUseCase(assets asset.Repository, log logger.Interface) *ListOwnedAssetsUseCase {
	return &ListOwnedAssetsUseCase{assets: assets, logger: log}
}

// Execute executes the list owned assets use case
func (uc *ListOwnedAssetsUseCase) Execute(ctx context.Context, owner string) (*dto.ListOwnedAssetsResponse, error) {
	ids, err := uc.assets.ListIDsByOwner(ctx, actor.ID(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to list owned assets: %w", err)
	}
	return &dto.ListOwnedAssetsResponse{Owner: owner, AssetIDs: ids}, nil
}
