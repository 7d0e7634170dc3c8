package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iprights/internal/application/transfer/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/domain/transfer"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/id"
	"iprights/internal/shared/logger"
)

// RequestTransferUseCase opens the first phase of an ownership handover:
// the current owner proposes a recipient, who must accept before ownership
// and data-controllership move.
type RequestTransferUseCase struct {
	assets    asset.Repository
	transfers transfer.Repository
	events    events.Recorder
	notifier  transfer.Notifier
	tx        db.Runner
	logger    logger.Interface
	now       func() time.Time
}

// NewRequestTransferUseCase creates a new request transfer use case
func NewRequestTransferUseCase(
	assets asset.Repository,
	transfers transfer.Repository,
	recorder events.Recorder,
	notifier transfer.Notifier,
	tx db.Runner,
	log logger.Interface,
) *RequestTransferUseCase {
	if notifier == nil {
		notifier = transfer.NopNotifier{}
	}
	return &RequestTransferUseCase{
		assets:    assets,
		transfers: transfers,
		events:    recorder,
		notifier:  notifier,
		tx:        tx,
		logger:    log,
		now:       time.Now,
	}
}

// Execute executes the request transfer use case
func (uc *RequestTransferUseCase) Execute(ctx context.Context, request dto.RequestTransferRequest) (*dto.TransferResponse, error) {
	caller := actor.ID(request.Caller)
	to := actor.ID(request.To)
	if to.IsZero() || to == caller {
		return nil, apperrors.NewValidationError("invalid transfer recipient", apperrors.ReasonInvalidRecipient)
	}

	requestedAt := uc.now().UTC()
	transferID := id.ForTransfer(request.AssetID, request.Caller, request.To, requestedAt)

	var req *transfer.Request
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.assets.GetByID(ctx, request.AssetID)
		if errors.Is(err, asset.ErrAssetNotFound) {
			return apperrors.NewNotFoundError("asset not found")
		}
		if err != nil {
			return fmt.Errorf("failed to load asset: %w", err)
		}

		if !record.IsOwnedBy(caller) {
			uc.logger.Warnw("transfer request denied", "asset_id", request.AssetID, "caller", caller)
			return apperrors.NewForbiddenError("only the current owner may request a transfer")
		}
		if !record.IsActive() {
			return apperrors.NewValidationError("asset is inactive", apperrors.ReasonInactiveAsset)
		}

		req, err = transfer.NewRequest(transferID, request.AssetID, caller, to, requestedAt)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), apperrors.ReasonInvalidRecipient)
		}

		if err := uc.transfers.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to save transfer request: %w", err)
		}

		rec := events.New(events.TypeTransferRequested, transferID, caller.String(), to.String()).
			WithDetail("asset_id", request.AssetID)
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record transfer request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// best effort, outside the transaction
	if err := uc.notifier.TransferRequested(ctx, req); err != nil {
		uc.logger.Warnw("transfer notification failed", "transfer_id", transferID, "error", err)
	}

	uc.logger.Infow("transfer requested",
		"transfer_id", transferID,
		"asset_id", request.AssetID,
		"from", caller,
		"to", to,
	)

	return toTransferResponse(req), nil
}

func toTransferResponse(r *transfer.Request) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:          r.ID(),
		AssetID:     r.AssetID(),
		From:        r.From().String(),
		To:          r.To().String(),
		RequestedAt: r.RequestedAt(),
		Completed:   r.IsCompleted(),
		Canceled:    r.IsCanceled(),
	}
}
