package usecases

import (
	"context"
	"errors"
	"fmt"

	appaccess "iprights/internal/application/accesscontrol"
	"iprights/internal/application/transfer/dto"
	"iprights/internal/domain/asset"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/domain/transfer"
	"iprights/internal/shared/db"
	apperrors "iprights/internal/shared/errors"
	"iprights/internal/shared/logger"
)

// AcceptTransferUseCase finalizes a pending handover. On success the request
// is completed, registry ownership moves to the recipient, and the
// access-control controller for the asset is reassigned in the same
// transaction. The owner mutation on the registry is a privileged call only
// this use case performs.
type AcceptTransferUseCase struct {
	assets    asset.Repository
	transfers transfer.Repository
	access    *appaccess.Service
	events    events.Recorder
	tx        db.Runner
	logger    logger.Interface
}

// NewAcceptTransferUseCase creates a new accept transfer use case
func NewAcceptTransferUseCase(
	assets asset.Repository,
	transfers transfer.Repository,
	access *appaccess.Service,
	recorder events.Recorder,
	tx db.Runner,
	log logger.Interface,
) *AcceptTransferUseCase {
	return &AcceptTransferUseCase{
		assets:    assets,
		transfers: transfers,
		access:    access,
		events:    recorder,
		tx:        tx,
		logger:    log,
	}
}

// Execute executes the accept transfer use case
func (uc *AcceptTransferUseCase) Execute(ctx context.Context, request dto.FinalizeTransferRequest) (*dto.TransferResponse, error) {
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

		if req.To() != caller {
			uc.logger.Warnw("transfer accept denied", "transfer_id", req.ID(), "caller", caller)
			return apperrors.NewForbiddenError("only the proposed recipient may accept")
		}
		if err := req.Complete(); err != nil {
			return apperrors.NewConflictError("transfer request already finalized", apperrors.ReasonAlreadyFinalized)
		}
		if err := uc.transfers.Update(ctx, req); err != nil {
			return fmt.Errorf("failed to save transfer request: %w", err)
		}

		record, err := uc.assets.GetByID(ctx, req.AssetID())
		if err != nil {
			return fmt.Errorf("failed to load asset: %w", err)
		}
		if err := record.TransferTo(req.To()); err != nil {
			return err
		}
		if err := uc.assets.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to save asset: %w", err)
		}

		// data-protection accountability moves in lock-step with ownership
		if err := uc.access.ReassignController(ctx, req.AssetID(), req.To()); err != nil {
			return err
		}

		rec := events.New(events.TypeTransferCompleted, req.ID(), req.From().String(), req.To().String()).
			WithDetail("asset_id", req.AssetID())
		if err := uc.events.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to record transfer completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("transfer completed",
		"transfer_id", req.ID(),
		"asset_id", req.AssetID(),
		"new_owner", req.To(),
	)

	return toTransferResponse(req), nil
}
