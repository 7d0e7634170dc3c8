// Package events models the ledger's audit trail: an append-only log of
// tagged records that any component appends to and any collaborator can
// subscribe to or replay for off-ledger indexing.
package events

import (
	"context"
	"time"
)

// Event types emitted by the four ledger components.
const (
	TypeAssetRegistered      = "asset.registered"
	TypeAssetDeactivated     = "asset.deactivated"
	TypeAssetReactivated     = "asset.reactivated"
	TypeTransferRequested    = "transfer.requested"
	TypeTransferCompleted    = "transfer.completed"
	TypeTransferCanceled     = "transfer.canceled"
	TypeLicenseCreated       = "license.created"
	TypeLicenseTerminated    = "license.terminated"
	TypeRoyaltyPaid          = "license.royalty_paid"
	TypeRoleGranted          = "role.granted"
	TypeRoleRevoked          = "role.revoked"
	TypeControllerReassigned = "controller.reassigned"
	TypeDeletionRequested    = "deletion.requested"
	TypeDeletionReverted     = "deletion.reverted"
)

// Record is one audit-trail entry. Sequence is assigned by the log on append
// and is strictly increasing.
type Record struct {
	Sequence   uint64            `json:"sequence"`
	Type       string            `json:"type"`
	EntityID   string            `json:"entity_id"`
	Actors     []string          `json:"actors"`
	OccurredAt time.Time         `json:"occurred_at"`
	Details    map[string]string `json:"details,omitempty"`
}

// Recorder is the append side of the audit trail. Use cases append one record
// per state change inside their transaction scope.
type Recorder interface {
	Append(ctx context.Context, rec Record) error
}

// New builds an unsequenced record.
func New(eventType, entityID string, actors ...string) Record {
	return Record{
		Type:       eventType,
		EntityID:   entityID,
		Actors:     actors,
		OccurredAt: time.Now().UTC(),
	}
}

// WithDetail attaches a key/value detail to the record.
func (r Record) WithDetail(key, value string) Record {
	if r.Details == nil {
		r.Details = make(map[string]string)
	}
	r.Details[key] = value
	return r
}
