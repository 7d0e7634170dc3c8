package models

import "time"

// LicenseModel is the persistence model for license grants. EndDate NULL
// means a perpetual grant. Both party columns are indexed because the
// license index is queried from either side.
type LicenseModel struct {
	ID            string     `gorm:"primarykey;size:64"`
	AssetID       string     `gorm:"not null;size:64;index:idx_license_asset"`
	Licensor      string     `gorm:"not null;size:128;index:idx_license_licensor"`
	Licensee      string     `gorm:"not null;size:128;index:idx_license_licensee"`
	StartDate     time.Time  `gorm:"not null"`
	EndDate       *time.Time
	LicenseType   string     `gorm:"not null;size:20"`
	TermsDigest   string     `gorm:"size:128"`
	Active        bool       `gorm:"not null;default:true"`
	RoyaltyAmount uint64     `gorm:"not null;default:0"`
	RoyaltyPaid   uint64     `gorm:"not null;default:0"`
	GrantedAt     time.Time  `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (LicenseModel) TableName() string {
	return "licenses"
}
