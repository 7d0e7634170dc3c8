package transfer

import (
	"context"

	"iprights/internal/domain/shared/actor"
)

// Repository defines the interface for transfer-request persistence.
type Repository interface {
	// Create stores a new pending request
	Create(ctx context.Context, r *Request) error

	// Update persists the terminal flags of an existing request
	Update(ctx context.Context, r *Request) error

	// GetByID retrieves a request by id; returns ErrTransferNotFound if absent
	GetByID(ctx context.Context, id string) (*Request, error)

	// ListByRecipient returns the actor's full received-request history in
	// request order, finalized entries included. Pending filtering is done
	// live by the caller.
	ListByRecipient(ctx context.Context, to actor.ID) ([]*Request, error)
}
