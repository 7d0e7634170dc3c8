package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/transfer"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
)

// TransferRepositoryImpl implements the transfer.Repository interface
type TransferRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewTransferRepository creates a new transfer repository instance
func NewTransferRepository(db *gorm.DB, logger logger.Interface) transfer.Repository {
	return &TransferRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Create stores a new pending request
func (r *TransferRepositoryImpl) Create(ctx context.Context, req *transfer.Request) error {
	model := toTransferModel(req)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create transfer request", "transfer_id", req.ID(), "error", err)
		return fmt.Errorf("failed to create transfer request: %w", err)
	}
	return nil
}

// Update persists the terminal flags of an existing request
func (r *TransferRepositoryImpl) Update(ctx context.Context, req *transfer.Request) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TransferModel{}).
		Where("id = ?", req.ID()).
		Updates(map[string]interface{}{
			"completed": req.IsCompleted(),
			"canceled":  req.IsCanceled(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update transfer request", "transfer_id", req.ID(), "error", result.Error)
		return fmt.Errorf("failed to update transfer request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return transfer.ErrTransferNotFound
	}
	return nil
}

// GetByID retrieves a request by id
func (r *TransferRepositoryImpl) GetByID(ctx context.Context, id string) (*transfer.Request, error) {
	var model models.TransferModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transfer.ErrTransferNotFound
		}
		r.logger.Errorw("failed to get transfer request", "transfer_id", id, "error", err)
		return nil, fmt.Errorf("failed to get transfer request: %w", err)
	}
	return toTransferDomain(&model)
}

// ListByRecipient returns the actor's full received-request history in
// request order
func (r *TransferRepositoryImpl) ListByRecipient(ctx context.Context, to actor.ID) ([]*transfer.Request, error) {
	var rows []models.TransferModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("to_actor = ?", to.String()).
		Order("requested_at ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list received transfers", "recipient", to, "error", err)
		return nil, fmt.Errorf("failed to list received transfers: %w", err)
	}

	requests := make([]*transfer.Request, 0, len(rows))
	for i := range rows {
		req, err := toTransferDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func toTransferModel(req *transfer.Request) *models.TransferModel {
	return &models.TransferModel{
		ID:          req.ID(),
		AssetID:     req.AssetID(),
		FromActor:   req.From().String(),
		ToActor:     req.To().String(),
		RequestedAt: req.RequestedAt(),
		Completed:   req.IsCompleted(),
		Canceled:    req.IsCanceled(),
	}
}

func toTransferDomain(m *models.TransferModel) (*transfer.Request, error) {
	return transfer.ReconstructRequest(
		m.ID,
		m.AssetID,
		actor.ID(m.FromActor),
		actor.ID(m.ToActor),
		m.RequestedAt,
		m.Completed,
		m.Canceled,
	)
}
