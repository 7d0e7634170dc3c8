package usecases

import (
	"context"
	"errors"
	"fmt"

	"iprights/internal/application/transfer/dto"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/domain/transfer"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// CancelTransferUseCase withdraws a pending handover. Only the requesting
// owner may cancel; cancellation is terminal and has no further effect.
type CancelTransferUseCase struct {
	transfers transfer.Repository
	events    events.Recorder
	tx        db.Runner
	logger    logger.Interface
}

// NewCancelTransferUseCase creates a new cancel transfer use case
func NewCancelTransferUseCase(
	transfers transfer.Repository,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *CancelTransferUseCase {
	return &CancelTransferUseCase{
		transfers: transfers,
		events:    recorder,
		tx:        tx,
		logger:    log,
	}
}

// Execute executes the cancel transfer use case
func (uc *CancelTransferUseCase) Execute(ctx context.Context, request dto.FinalizeTransferRequest) (*dto.TransferResponse, error) {
	caller := actor.ID(request.Caller)

	var req *transfer.Request
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		req, err = uc.transfers.GetByID(ctx, request.TransferID)
		if errors.Is(err, transfer.ErrTransferNotFound) {
			return apperrors.NewNotFoundError("transfer request not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load transfer request: %w", err)
		}

		if req.From() != caller {
			uc.logger.Warnw("transfer cancel denied", "transfer_id", req.ID(), "caller", caller)
			return apperrors.NewForbiddenError("only the requesting owner may cancel")
		}
		if err := req.Cancel(); err != nil {
			return apperrors.NewConflictError("transfer request already finalized", apperrors.ReasonAlreadyFinalized)
		}
		if err := uc.transfers.Update(ctx, req); err != nil {
			return fmt.Errorf("failed to save transfer request: %w", err)
		}

		rec := events.New(events.TypeTransferCanceled, req.ID(), req.From().String(), req.To().String()).
			WithDetail("asset_id", req.AssetID())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record transfer cancellation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("transfer canceled", "transfer_id", req.ID(), "asset_id", req.AssetID())
	return toTransferResponse(req), nil
}
