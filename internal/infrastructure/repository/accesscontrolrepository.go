package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
)

// AccessControlRepositoryImpl implements the accesscontrol.Repository
// interface
type AccessControlRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAccessControlRepository creates a new access-control repository instance
func NewAccessControlRepository(db *gorm.DB, logger logger.Interface) accesscontrol.Repository {
	return &AccessControlRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Save upserts a control record
func (r *AccessControlRepositoryImpl) Save(ctx context.Context, c *accesscontrol.AssetControl) error {
	model := &models.AssetControlModel{
		AssetID:           c.AssetID(),
		Controller:        c.Controller().String(),
		DeletionRequested: c.DeletionRequested(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"controller", "deletion_requested", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save control record", "asset_id", c.AssetID(), "error", err)
		return fmt.Errorf("failed to save control record: %w", err)
	}
	return nil
}

// GetByAssetID retrieves the control record for an asset
func (r *AccessControlRepositoryImpl) GetByAssetID(ctx context.Context, assetID string) (*accesscontrol.AssetControl, error) {
	var model models.AssetControlModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("asset_id = ?", assetID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accesscontrol.ErrControlNotFound
		}
		r.logger.Errorw("failed to get control record", "asset_id", assetID, "error", err)
		return nil, fmt.Errorf("failed to get control record: %w", err)
	}

	return accesscontrol.ReconstructAssetControl(
		model.AssetID,
		actor.ID(model.Controller),
		model.DeletionRequested,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// AppendSubjectAsset records that the asset carries the subject's personal
// data. The unique pair index makes repeats a no-op.
func (r *AccessControlRepositoryImpl) AppendSubjectAsset(ctx context.Context, subject actor.ID, assetID string) error {
	model := &models.SubjectAssetModel{
		Subject: subject.String(),
		AssetID: assetID,
	}

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to append subject asset", "subject", subject, "asset_id", assetID, "error", err)
		return fmt.Errorf("failed to append subject asset: %w", err)
	}
	return nil
}

// ListSubjectAssets returns the subject's asset index in append order
func (r *AccessControlRepositoryImpl) ListSubjectAssets(ctx context.Context, subject actor.ID) ([]string, error) {
	var ids []string

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.SubjectAssetModel{}).
		Where("subject = ?", subject.String()).
		Order("id ASC").
		Pluck("asset_id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list subject assets", "subject", subject, "error", err)
		return nil, fmt.Errorf("failed to list subject assets: %w", err)
	}
	return ids, nil
}
