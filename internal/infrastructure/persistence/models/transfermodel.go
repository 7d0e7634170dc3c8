package models

import "time"

// TransferModel is the persistence model for ownership transfer requests.
// Rows are never deleted: finalized requests stay as history and the pending
// view is computed from the two flags.
type TransferModel struct {
	ID          string    `gorm:"primarykey;size:64"`
	AssetID     string    `gorm:"not null;size:64;index:idx_transfer_asset"`
	FromActor   string    `gorm:"not null;size:128"`
	ToActor     string    `gorm:"not null;size:128;index:idx_transfer_recipient"`
	RequestedAt time.Time `gorm:"not null"`
	Completed   bool      `gorm:"not null;default:false"`
	Canceled    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (TransferModel) TableName() string {
	return "transfer_requests"
}
