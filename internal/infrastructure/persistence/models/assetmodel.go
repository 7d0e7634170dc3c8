package models

import "time"

// AssetModel is the persistence model for registered assets. Owner is
// denormalized onto the row so the owned-assets index is a plain indexed
// query that stays live as transfers complete.
type AssetModel struct {
	ID           string    `gorm:"primarykey;size:64"`
	ContentHash  string    `gorm:"not null;size:128;index:idx_asset_content"`
	Owner        string    `gorm:"not null;size:128;index:idx_asset_owner"`
	RegisteredBy string    `gorm:"not null;size:128"`
	RegisteredAt time.Time `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	AssetType    string    `gorm:"not null;size:20"`
	MetadataHash string    `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (AssetModel) TableName() string {
	return "assets"
}
