package transfer

import "context"

// Notifier informs the proposed recipient that a handover awaits their
// decision. Delivery is best effort and outside the transaction scope;
// failures are logged, never surfaced to the requester.
type Notifier interface {
	TransferRequested(ctx context.Context, r *Request) error
}

// NopNotifier discards notifications. Used when no channel is configured.
type NopNotifier struct{}

func (NopNotifier) TransferRequested(ctx context.Context, r *Request) error {
	return nil
}
