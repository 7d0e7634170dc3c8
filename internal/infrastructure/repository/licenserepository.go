package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iprights/internal/domain/license"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
)

// LicenseRepositoryImpl implements the license.Repository interface
type LicenseRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewLicenseRepository creates a new license repository instance
func NewLicenseRepository(db *gorm.DB, logger logger.Interface) license.Repository {
	return &LicenseRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Create stores a new grant
func (r *LicenseRepositoryImpl) Create(ctx context.Context, g *license.Grant) error {
	model := toLicenseModel(g)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create license", "license_id", g.ID(), "error", err)
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

// Update persists mutations of a grant
func (r *LicenseRepositoryImpl) Update(ctx context.Context, g *license.Grant) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.LicenseModel{}).
		Where("id = ?", g.ID()).
		Updates(map[string]interface{}{
			"active":       g.IsActive(),
			"royalty_paid": g.RoyaltyPaid(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update license", "license_id", g.ID(), "error", result.Error)
		return fmt.Errorf("failed to update license: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return license.ErrLicenseNotFound
	}
	return nil
}

// GetByID retrieves a grant by id
func (r *LicenseRepositoryImpl) GetByID(ctx context.Context, id string) (*license.Grant, error) {
	var model models.LicenseModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, license.ErrLicenseNotFound
		}
		r.logger.Errorw("failed to get license", "license_id", id, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	return toLicenseDomain(&model)
}

// ListIDsByLicensor returns grant ids issued by the actor in creation order
func (r *LicenseRepositoryImpl) ListIDsByLicensor(ctx context.Context, licensor actor.ID) ([]string, error) {
	return r.listIDs(ctx, "licensor", licensor)
}

// ListIDsByLicensee returns grant ids held by the actor in creation order
func (r *LicenseRepositoryImpl) ListIDsByLicensee(ctx context.Context, licensee actor.ID) ([]string, error) {
	return r.listIDs(ctx, "licensee", licensee)
}

func (r *LicenseRepositoryImpl) listIDs(ctx context.Context, column string, who actor.ID) ([]string, error) {
	var ids []string

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.LicenseModel{}).
		Where(column+" = ?", who.String()).
		Order("granted_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list licenses", "side", column, "actor", who, "error", err)
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return ids, nil
}

func toLicenseModel(g *license.Grant) *models.LicenseModel {
	return &models.LicenseModel{
		ID:            g.ID(),
		AssetID:       g.AssetID(),
		Licensor:      g.Licensor().String(),
		Licensee:      g.Licensee().String(),
		StartDate:     g.StartDate(),
		EndDate:       g.EndDate(),
		LicenseType:   g.LicenseType().String(),
		TermsDigest:   g.TermsDigest(),
		Active:        g.IsActive(),
		RoyaltyAmount: g.RoyaltyAmount(),
		RoyaltyPaid:   g.RoyaltyPaid(),
		GrantedAt:     g.CreatedAt(),
	}
}

func toLicenseDomain(m *models.LicenseModel) (*license.Grant, error) {
	return license.ReconstructGrant(
		m.ID,
		m.AssetID,
		actor.ID(m.Licensor),
		actor.ID(m.Licensee),
		m.StartDate,
		m.EndDate,
		license.Type(m.LicenseType),
		m.TermsDigest,
		m.Active,
		m.RoyaltyAmount,
		m.RoyaltyPaid,
		m.GrantedAt,
	)
}
