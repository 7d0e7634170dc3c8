package license

import (
	"fmt"
	"time"

	"iprights/internal/domain/shared/actor"
)

// Type classifies a license grant.
type Type string

const (
	TypeExclusive    Type = "exclusive"
	TypeNonExclusive Type = "non_exclusive"
	TypeSingleUse    Type = "single_use"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeExclusive, TypeNonExclusive, TypeSingleUse:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType maps a wire-format license type to its canonical token. The
// hyphenated spellings "non-exclusive" and "single-use" are accepted as
// aliases of the stored forms.
func ParseType(s string) (Type, bool) {
	switch s {
	case "non-exclusive":
		return TypeNonExclusive, true
	case "single-use":
		return TypeSingleUse, true
	}
	t := Type(s)
	return t, t.IsValid()
}

// Grant is one time-bounded or perpetual license over a registered asset.
// Royalty accrual is monotonically increasing; termination is terminal.
type Grant struct {
	id            string
	assetID       string
	licensor      actor.ID
	licensee      actor.ID
	startDate     time.Time
	endDate       *time.Time // nil means perpetual
	licenseType   Type
	termsDigest   string
	active        bool
	royaltyAmount uint64
	royaltyPaid   uint64
	createdAt     time.Time
}

// NewGrant creates an active license grant. The start date must not precede
// the grant creation time; the end date, when present, must follow the start.
func NewGrant(id, assetID string, licensor, licensee actor.ID, startDate time.Time, endDate *time.Time, licenseType Type, termsDigest string, royaltyAmount uint64, createdAt time.Time) (*Grant, error) {
	if id == "" {
		return nil, fmt.Errorf("license id is required")
	}
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if licensor.IsZero() {
		return nil, fmt.Errorf("licensor is required")
	}
	if licensee.IsZero() {
		return nil, ErrInvalidLicensee
	}
	if !licenseType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLicenseType, licenseType)
	}
	if startDate.Before(createdAt) {
		return nil, ErrInvalidDateRange
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	var end *time.Time
	if endDate != nil {
		e := endDate.UTC()
		end = &e
	}

	return &Grant{
		id:            id,
		assetID:       assetID,
		licensor:      licensor,
		licensee:      licensee,
		startDate:     startDate.UTC(),
		endDate:       end,
		licenseType:   licenseType,
		termsDigest:   termsDigest,
		active:        true,
		royaltyAmount: royaltyAmount,
		createdAt:     createdAt.UTC(),
	}, nil
}

// ReconstructGrant rebuilds a grant from persistence.
func ReconstructGrant(id, assetID string, licensor, licensee actor.ID, startDate time.Time, endDate *time.Time, licenseType Type, termsDigest string, active bool, royaltyAmount, royaltyPaid uint64, createdAt time.Time) (*Grant, error) {
	if id == "" {
		return nil, fmt.Errorf("license id is required")
	}
	if !licenseType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLicenseType, licenseType)
	}

	return &Grant{
		id:            id,
		assetID:       assetID,
		licensor:      licensor,
		licensee:      licensee,
		startDate:     startDate,
		endDate:       endDate,
		licenseType:   licenseType,
		termsDigest:   termsDigest,
		active:        active,
		royaltyAmount: royaltyAmount,
		royaltyPaid:   royaltyPaid,
		createdAt:     createdAt,
	}, nil
}

func (g *Grant) ID() string            { return g.id }
func (g *Grant) AssetID() string       { return g.assetID }
func (g *Grant) Licensor() actor.ID    { return g.licensor }
func (g *Grant) Licensee() actor.ID    { return g.licensee }
func (g *Grant) StartDate() time.Time  { return g.startDate }
func (g *Grant) EndDate() *time.Time   { return g.endDate }
func (g *Grant) LicenseType() Type     { return g.licenseType }
func (g *Grant) TermsDigest() string   { return g.termsDigest }
func (g *Grant) IsActive() bool        { return g.active }
func (g *Grant) RoyaltyAmount() uint64 { return g.royaltyAmount }
func (g *Grant) RoyaltyPaid() uint64   { return g.royaltyPaid }
func (g *Grant) CreatedAt() time.Time  { return g.createdAt }

// IsPerpetual reports whether the grant has no end date.
func (g *Grant) IsPerpetual() bool {
	return g.endDate == nil
}

// IsParty reports whether the actor is the licensor or the licensee.
func (g *Grant) IsParty(who actor.ID) bool {
	return who == g.licensor || who == g.licensee
}

// IsValidAt reports whether the grant is exercisable at the given instant:
// active, started, and not past its end. Both window bounds are inclusive.
func (g *Grant) IsValidAt(t time.Time) bool {
	if !g.active {
		return false
	}
	if t.Before(g.startDate) {
		return false
	}
	if g.endDate != nil && t.After(*g.endDate) {
		return false
	}
	return true
}

// Terminate deactivates the grant. Terminal; there is no reactivation path.
func (g *Grant) Terminate() error {
	if !g.active {
		return ErrAlreadyTerminated
	}
	g.active = false
	return nil
}

// AddRoyalty accrues a payment. Amount must be positive and the grant active.
func (g *Grant) AddRoyalty(amount uint64) error {
	if !g.active {
		return ErrLicenseInactive
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	g.royaltyPaid += amount
	return nil
}
