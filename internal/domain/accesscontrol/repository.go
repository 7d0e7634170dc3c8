package accesscontrol

import (
	"context"

	"iprights/internal/domain/shared/actor"
)

// Repository defines persistence for per-asset control records and the
// per-subject asset index.
type Repository interface {
	// Save upserts a control record
	Save(ctx context.Context, c *AssetControl) error

	// GetByAssetID retrieves the control record for an asset; returns
	// ErrControlNotFound if absent
	GetByAssetID(ctx context.Context, assetID string) (*AssetControl, error)

	// AppendSubjectAsset records that the asset carries the subject's
	// personal data. Idempotent.
	AppendSubjectAsset(ctx context.Context, subject actor.ID, assetID string) error

	// ListSubjectAssets returns the subject's asset index in append order
	ListSubjectAssets(ctx context.Context, subject actor.ID) ([]string, error)
}

// RoleStore is the (actor, role) assignment set. The production store is
// backed by casbin; tests use an in-memory implementation.
type RoleStore interface {
	Grant(ctx context.Context, a actor.ID, role Role) error
	Revoke(ctx context.Context, a actor.ID, role Role) error
	Has(ctx context.Context, a actor.ID, role Role) (bool, error)
}
