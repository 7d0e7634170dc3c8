package models

import "time"

// AssetControlModel is the persistence model for per-asset data-protection
// control records. One row per asset; the controller column is never empty.
type AssetControlModel struct {
	AssetID           string `gorm:"primarykey;size:64"`
	Controller        string `gorm:"not null;size:128;index:idx_control_controller"`
	DeletionRequested bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (AssetControlModel) TableName() string {
	return "asset_controls"
}

// SubjectAssetModel is one entry of the per-subject asset index: the asset
// carries the subject's personal data. The pair is unique, which makes the
// append idempotent at the storage layer.
type SubjectAssetModel struct {
	ID        uint   `gorm:"primarykey"`
	Subject   string `gorm:"not null;size:128;uniqueIndex:idx_subject_asset,priority:1"`
	AssetID   string `gorm:"not null;size:64;uniqueIndex:idx_subject_asset,priority:2"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (SubjectAssetModel) TableName() string {
	return "subject_assets"
}
