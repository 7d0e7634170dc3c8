// Package dto defines the request/response payloads of the licensing
// operations. Dates travel as RFC3339 strings on the wire.
package dto

import "time"

// CreateLicenseRequest carries either the raw markdown terms document (whose
// digest is then derived server-side) or a precomputed terms_digest when the
// document is managed elsewhere. Terms wins when both are present.
type CreateLicenseRequest struct {
	AssetID       string  `json:"asset_id" binding:"required"`
	Licensee      string  `json:"licensee" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date"`
	LicenseType   string  `json:"license_type" binding:"required"`
	Terms         string  `json:"terms"`
	TermsDigest   string  `json:"terms_digest"`
	RoyaltyAmount uint64  `json:"royalty_amount"`
	Caller        string  `json:"-"`
}

type LicenseResponse struct {
	ID            string     `json:"id"`
	AssetID       string     `json:"asset_id"`
	Licensor      string     `json:"licensor"`
	Licensee      string     `json:"licensee"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	LicenseType   string     `json:"license_type"`
	TermsDigest   string     `json:"terms_digest"`
	Active        bool       `json:"active"`
	RoyaltyAmount uint64     `json:"royalty_amount"`
	RoyaltyPaid   uint64     `json:"royalty_paid"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TerminateLicenseRequest struct {
	LicenseID string `json:"-"`
	Caller    string `json:"-"`
}

type PayRoyaltyRequest struct {
	LicenseID string `json:"-"`
	Amount    uint64 `json:"amount" binding:"required"`
	Caller    string `json:"-"`
}

type PreviewTermsRequest struct {
	Terms string `json:"terms" binding:"required"`
}

type PreviewTermsResponse struct {
	HTML   string `json:"html"`
	Digest string `json:"digest"`
}

type LicenseValidityResponse struct {
	LicenseID string `json:"license_id"`
	Valid     bool   `json:"valid"`
}

// ListLicensesRequest selects one side of the license index. Results are
// unfiltered: expired and terminated grants stay listed and the caller
// checks validity per id.
type ListLicensesRequest struct {
	Actor string `json:"actor"`
	Side  string `json:"side"` // "licensor" or "licensee"
}

type ListLicensesResponse struct {
	Actor      string   `json:"actor"`
	Side       string   `json:"side"`
	LicenseIDs []string `json:"license_ids"`
}
