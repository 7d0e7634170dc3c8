// Package transfer implements the two-phase ownership handover: a request
// stays pending until the recipient accepts or the requester cancels, and
// either outcome is terminal. The two-phase shape protects the recipient from
// being assigned unwanted liabilities and leaves an audit trail before
// ownership and data-controllership move together.
package transfer

import (
	"fmt"
	"time"

	"iprights/internal/domain/shared/actor"
)

// Request is one pending or finalized ownership handover.
// Completed and canceled are mutually exclusive and, once either is set,
// permanently final.
type Request struct {
	id          string
	assetID     string
	from        actor.ID
	to          actor.ID
	requestedAt time.Time
	completed   bool
	canceled    bool
}

// NewRequest creates a pending transfer request.
func NewRequest(id, assetID string, from, to actor.ID, requestedAt time.Time) (*Request, error) {
	if id == "" {
		return nil, fmt.Errorf("transfer id is required")
	}
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if from.IsZero() {
		return nil, fmt.Errorf("requesting owner is required")
	}
	if to.IsZero() || to == from {
		return nil, ErrInvalidRecipient
	}

	return &Request{
		id:          id,
		assetID:     assetID,
		from:        from,
		to:          to,
		requestedAt: requestedAt.UTC(),
	}, nil
}

// ReconstructRequest rebuilds a transfer request from persistence.
func ReconstructRequest(id, assetID string, from, to actor.ID, requestedAt time.Time, completed, canceled bool) (*Request, error) {
	if id == "" {
		return nil, fmt.Errorf("transfer id is required")
	}
	if completed && canceled {
		return nil, fmt.Errorf("transfer %s is both completed and canceled", id)
	}

	return &Request{
		id:          id,
		assetID:     assetID,
		from:        from,
		to:          to,
		requestedAt: requestedAt,
		completed:   completed,
		canceled:    canceled,
	}, nil
}

func (r *Request) ID() string             { return r.id }
func (r *Request) AssetID() string        { return r.assetID }
func (r *Request) From() actor.ID         { return r.from }
func (r *Request) To() actor.ID           { return r.to }
func (r *Request) RequestedAt() time.Time { return r.requestedAt }
func (r *Request) IsCompleted() bool      { return r.completed }
func (r *Request) IsCanceled() bool       { return r.canceled }

// IsFinalized reports whether the request reached a terminal state.
func (r *Request) IsFinalized() bool {
	return r.completed || r.canceled
}

// Complete finalizes the request as accepted by the recipient.
func (r *Request) Complete() error {
	if r.IsFinalized() {
		return ErrAlreadyFinalized
	}
	r.completed = true
	return nil
}

// Cancel finalizes the request as withdrawn by the requester.
func (r *Request) Cancel() error {
	if r.IsFinalized() {
		return ErrAlreadyFinalized
	}
	r.canceled = true
	return nil
}
