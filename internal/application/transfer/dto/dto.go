// Package dto defines the request/response payloads of the ownership
// transfer operations.
package dto

import "time"

type RequestTransferRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
	To      string `json:"to" binding:"required"`
	Caller  string `json:"-"`
}

type TransferResponse struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"asset_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	RequestedAt time.Time `json:"requested_at"`
	Completed   bool      `json:"completed"`
	Canceled    bool      `json:"canceled"`
}

type FinalizeTransferRequest struct {
	TransferID string `json:"-"`
	Caller     string `json:"-"`
}

type PendingTransfersResponse struct {
	Actor       string   `json:"actor"`
	TransferIDs []string `json:"transfer_ids"`
}
