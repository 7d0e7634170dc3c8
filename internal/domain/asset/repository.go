package asset

import (
	"context"

	"iprights/internal/domain/shared/actor"
)

// Repository defines the interface for asset persistence operations
type Repository interface {
	// Create stores a newly registered asset
	Create(ctx context.Context, a *Asset) error

	// Update persists mutations (active flag, owner) of an existing asset
	Update(ctx context.Context, a *Asset) error

	// GetByID retrieves an asset by id; returns ErrAssetNotFound if absent
	GetByID(ctx context.Context, id string) (*Asset, error)

	// Exists reports whether the id is already registered
	Exists(ctx context.Context, id string) (bool, error)

	// ListIDsByOwner returns the ids currently owned by the actor in
	// registration order. The index is live: transfer completion moves an
	// asset between owner lists.
	ListIDsByOwner(ctx context.Context, owner actor.ID) ([]string, error)
}
