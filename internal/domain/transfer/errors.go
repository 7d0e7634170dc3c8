package transfer

import "errors"

var (
	// ErrTransferNotFound is returned when a transfer id does not exist
	ErrTransferNotFound = errors.New("transfer request not found")

	// ErrAlreadyFinalized is returned on any transition out of a terminal state
	ErrAlreadyFinalized = errors.New("transfer request already finalized")

	// ErrInvalidRecipient is returned when the recipient is the null actor or
	// the current owner
	ErrInvalidRecipient = errors.New("invalid transfer recipient")

	// ErrNotRecipient is returned when someone other than the proposed
	// recipient tries to accept
	ErrNotRecipient = errors.New("caller is not the transfer recipient")

	// ErrNotRequester is returned when someone other than the requesting owner
	// tries to cancel
	ErrNotRequester = errors.New("caller is not the transfer requester")
)
