package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iprights/internal/domain/shared/actor"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
)

// RoyaltyPaymentGateway implements license.PaymentGateway against the
// royalty payment ledger table. Each transfer is one append-only row; the
// write joins the surrounding transaction so payment and accrual commit
// together.
type RoyaltyPaymentGateway struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewRoyaltyPaymentGateway creates a new royalty payment gateway
func NewRoyaltyPaymentGateway(db *gorm.DB, logger logger.Interface) *RoyaltyPaymentGateway {
	return &RoyaltyPaymentGateway{
		db:     db,
		logger: logger,
	}
}

// Transfer records a value movement from payer to licensor
func (g *RoyaltyPaymentGateway) Transfer(ctx context.Context, from, to actor.ID, amount uint64, licenseID string) error {
	model := &models.RoyaltyPaymentModel{
		LicenseID: licenseID,
		FromActor: from.String(),
		ToActor:   to.String(),
		Amount:    amount,
	}

	tx := db.GetTxFromContext(ctx, g.db)
	if err := tx.Create(model).Error; err != nil {
		g.logger.Errorw("failed to record royalty payment",
			"license_id", licenseID,
			"from", from,
			"to", to,
			"amount", amount,
			"error", err)
		return fmt.Errorf("failed to record royalty payment: %w", err)
	}
	return nil
}

// TotalPaidTo sums the value received by an actor across all licenses.
func (g *RoyaltyPaymentGateway) TotalPaidTo(ctx context.Context, to actor.ID) (uint64, error) {
	var total uint64

	tx := db.GetTxFromContext(ctx, g.db)
	err := tx.Model(&models.RoyaltyPaymentModel{}).
		Where("to_actor = ?", to.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum royalty payments: %w", err)
	}
	return total, nil
}
