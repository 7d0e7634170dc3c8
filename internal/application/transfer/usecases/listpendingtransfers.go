package usecases

import (
	"context"
	"fmt"

	"iprights/internal/application/transfer/dto"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/transfer"
	"iprights/internal/shared/logger"
)

// ListPendingTransfersUseCase returns the transfer ids awaiting an actor's
// decision. The filter is computed live over the actor's full received
// history: finalized requests drop out the moment they complete or cancel,
// never via a cached snapshot.
type ListPendingTransfersUseCase struct {
	transfers transfer.Repository
	logger    logger.Interface
}

// NewListPendingTransfersUseCase creates a new list pending transfers use case
func NewListPendingTransfersUseCase(transfers transfer.Repository, log logger.Interface) *ListPendingTransfersUseCase {
	return &ListPendingTransfersUseCase{transfers: transfers, logger: log}
}

// Execute executes the list pending transfers use case
func (uc *ListPendingTransfersUseCase) Execute(ctx context.Context, who string) (*dto.PendingTransfersResponse, error) {
	history, err := uc.transfers.ListByRecipient(ctx, actor.ID(who))
	if err != nil {
		return nil, fmt.Errorf("failed to list received transfers: %w", err)
	}

	ids := make([]string, 0, len(history))
	for _, r := range history {
		if !r.IsFinalized() {
			ids = append(ids, r.ID())
		}
	}
	return &dto.PendingTransfersResponse{Actor: who, TransferIDs: ids}, nil
}
