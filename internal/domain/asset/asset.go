package asset

import (
	"fmt"
	"time"

	"iprights/internal/domain/shared/actor"
)

// Type classifies a registered intellectual-property asset.
type Type string

const (
	TypeCopyright Type = "copyright"
	TypePatent    Type = "patent"
	TypeTrademark Type = "trademark"
	TypeDesign    Type = "design"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeCopyright, TypePatent, TypeTrademark, TypeDesign:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Asset is the registry's record of one intellectual-property asset.
// Content hash, registering actor, registration time and type are immutable
// after creation; only the active flag and the owner (via transfer
// completion) change over time. Records are never physically deleted.
type Asset struct {
	id           string
	contentHash  string
	owner        actor.ID
	registeredBy actor.ID
	registeredAt time.Time
	active       bool
	assetType    Type
	metadataHash string
}

// NewAsset creates a registered asset owned by its registrant.
func NewAsset(id, contentHash string, registrant actor.ID, registeredAt time.Time, assetType Type, metadataHash string) (*Asset, error) {
	if id == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if contentHash == "" {
		return nil, ErrContentHashRequired
	}
	if registrant.IsZero() {
		return nil, ErrOwnerRequired
	}
	if !assetType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAssetType, assetType)
	}

	return &Asset{
		id:           id,
		contentHash:  contentHash,
		owner:        registrant,
		registeredBy: registrant,
		registeredAt: registeredAt.UTC(),
		active:       true,
		assetType:    assetType,
		metadataHash: metadataHash,
	}, nil
}

// ReconstructAsset rebuilds an asset from persistence.
func ReconstructAsset(id, contentHash string, owner, registeredBy actor.ID, registeredAt time.Time, active bool, assetType Type, metadataHash string) (*Asset, error) {
	if id == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if contentHash == "" {
		return nil, ErrContentHashRequired
	}
	if owner.IsZero() || registeredBy.IsZero() {
		return nil, ErrOwnerRequired
	}
	if !assetType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAssetType, assetType)
	}

	return &Asset{
		id:           id,
		contentHash:  contentHash,
		owner:        owner,
		registeredBy: registeredBy,
		registeredAt: registeredAt,
		active:       active,
		assetType:    assetType,
		metadataHash: metadataHash,
	}, nil
}

func (a *Asset) ID() string              { return a.id }
func (a *Asset) ContentHash() string     { return a.contentHash }
func (a *Asset) Owner() actor.ID         { return a.owner }
func (a *Asset) RegisteredBy() actor.ID  { return a.registeredBy }
func (a *Asset) RegisteredAt() time.Time { return a.registeredAt }
func (a *Asset) IsActive() bool          { return a.active }
func (a *Asset) AssetType() Type         { return a.assetType }
func (a *Asset) MetadataHash() string    { return a.metadataHash }

// IsOwnedBy reports whether the given actor is the current owner.
func (a *Asset) IsOwnedBy(who actor.ID) bool {
	return a.owner == who
}

// Deactivate marks the asset inactive. Idempotent.
func (a *Asset) Deactivate() {
	a.active = false
}

// Reactivate marks the asset active again. Idempotent.
func (a *Asset) Reactivate() {
	a.active = true
}

// TransferTo hands ownership to a new actor. Only the transfer manager calls
// this, after a completed two-phase handover.
func (a *Asset) TransferTo(newOwner actor.ID) error {
	if newOwner.IsZero() {
		return ErrOwnerRequired
	}
	a.owner = newOwner
	return nil
}
