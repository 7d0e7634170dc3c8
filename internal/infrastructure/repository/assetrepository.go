package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// AssetRepositoryImpl implements the asset.Repository interface
type AssetRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAssetRepository creates a new asset repository instance
func NewAssetRepository(db *gorm.DB, logger logger.Interface) asset.Repository {
	return &AssetRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Create stores a newly registered asset
func (r *AssetRepositoryImpl) Create(ctx context.Context, a *asset.Asset) error {
	model := toAssetModel(a)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return asset.ErrAlreadyRegistered
		}
		r.logger.Errorw("failed to create asset", "asset_id", a.ID(), "error", err)
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// Update persists mutations of an existing asset
func (r *AssetRepositoryImpl) Update(ctx context.Context, a *asset.Asset) error {
	model := toAssetModel(a)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.AssetModel{}).
		Where("id = ?", a.ID()).
		Updates(map[string]interface{}{
			"owner":  model.Owner,
			"active": model.Active,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update asset", "asset_id", a.ID(), "error", result.Error)
		return fmt.Errorf("failed to update asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}

// GetByID retrieves an asset by id
func (r *AssetRepositoryImpl) GetByID(ctx context.Context, id string) (*asset.Asset, error) {
	var model models.AssetModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, asset.ErrAssetNotFound
		}
		r.logger.Errorw("failed to get asset", "asset_id", id, "error", err)
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return toAssetDomain(&model)
}

// Exists reports whether the id is already registered
func (r *AssetRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.AssetModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check asset existence", "asset_id", id, "error", err)
		return false, fmt.Errorf("failed to check asset existence: %w", err)
	}
	return count > 0, nil
}

// ListIDsByOwner returns the ids currently owned by the actor in
// registration order
func (r *AssetRepositoryImpl) ListIDsByOwner(ctx context.Context, owner actor.ID) ([]string, error) {
	var ids []string

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.AssetModel{}).
		Where("owner = ?", owner.String()).
		Order("registered_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list owned assets", "owner", owner, "error", err)
		return nil, fmt.Errorf("failed to list owned assets: %w", err)
	}
	return ids, nil
}

func toAssetModel(a *asset.Asset) *models.AssetModel {
	return &models.AssetModel{
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

func toAssetDomain(m *models.AssetModel) (*asset.Asset, error) {
	return asset.ReconstructAsset(
		m.ID,
		m.ContentHash,
		actor.ID(m.Owner),
		actor.ID(m.RegisteredBy),
		m.RegisteredAt,
		m.Active,
		asset.Type(m.AssetType),
		m.MetadataHash,
	)
}
