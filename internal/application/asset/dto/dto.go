// Package dto defines the request/response payloads of the asset registry
// operations.
package dto

import "time"

type RegisterAssetRequest struct {
	ContentHash  string `json:"content_hash" binding:"required"`
	AssetType    string `json:"asset_type" binding:"required"`
	MetadataHash string `json:"metadata_hash"`
	Caller       string `json:"-"`
}

type AssetResponse struct {
	ID           string    `json:"id"`
	ContentHash  string    `json:"content_hash"`
	Owner        string    `json:"owner"`
	RegisteredBy string    `json:"registered_by"`
	RegisteredAt time.Time `json:"registered_at"`
	Active       bool      `json:"active"`
	AssetType    string    `json:"asset_type"`
	MetadataHash string    `json:"metadata_hash"`
}

type AssetStatusResponse struct {
	AssetID string `json:"asset_id"`
	Active  bool   `json:"active"`
}

type ActivationRequest struct {
	AssetID string `json:"-"`
	Caller  string `json:"-"`
}

type ListOwnedAssetsResponse struct {
	Owner    string   `json:"owner"`
	AssetIDs []string `json:"asset_ids"`
}
