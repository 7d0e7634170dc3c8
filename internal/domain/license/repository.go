package license

import (
	"context"

	"iprights/internal/domain/shared/actor"
)

// Repository defines the interface for license persistence.
type Repository interface {
	// Create stores a new grant
	Create(ctx context.Context, g *Grant) error

	// Update persists mutations (active flag, royalty paid) of a grant
	Update(ctx context.Context, g *Grant) error

	// GetByID retrieves a grant by id; returns ErrLicenseNotFound if absent
	GetByID(ctx context.Context, id string) (*Grant, error)

	// ListIDsByLicensor returns grant ids issued by the actor in creation
	// order, unfiltered. Expired and terminated grants are included; callers
	// check validity themselves.
	ListIDsByLicensor(ctx context.Context, licensor actor.ID) ([]string, error)

	// ListIDsByLicensee returns grant ids held by the actor in creation
	// order, unfiltered.
	ListIDsByLicensee(ctx context.Context, licensee actor.ID) ([]string, error)
}

// PaymentGateway is the ledger-native value-transfer primitive used by
// royalty payments. The implementation is an external collaborator.
type PaymentGateway interface {
	Transfer(ctx context.Context, from, to actor.ID, amount uint64, licenseID string) error
}
