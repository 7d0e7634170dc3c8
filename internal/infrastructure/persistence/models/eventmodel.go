package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventModel is one durable audit-trail record. Sequence is the
// auto-incremented primary key, which gives the strictly increasing order
// the replay API exposes. Details holds the per-event key/value payload.
type EventModel struct {
	Sequence   uint64 `gorm:"primarykey;autoIncrement"`
	Type       string `gorm:"not null;size:40;index:idx_event_type"`
	EntityID   string `gorm:"not null;size:64;index:idx_event_entity"`
	Actors     string `gorm:"not null;size:512"`
	OccurredAt time.Time `gorm:"not null"`
	Details    datatypes.JSON
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (EventModel) TableName() string {
	return "ledger_events"
}

// RoyaltyPaymentModel is one row of the royalty payment ledger, the
// value-transfer record behind a royalty payment. LicenseID links back to
// the grant the payment accrued on.
type RoyaltyPaymentModel struct {
	ID        uint   `gorm:"primarykey"`
	LicenseID string `gorm:"not null;size:64;index:idx_payment_license"`
	FromActor string `gorm:"not null;size:128;index:idx_payment_from"`
	ToActor   string `gorm:"not null;size:128;index:idx_payment_to"`
	Amount    uint64 `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (RoyaltyPaymentModel) TableName() string {
	return "royalty_payments"
}
