// Package dto defines the request/response payloads of the access-control
// operations.
package dto

import "time"

type GrantRoleRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Caller string `json:"-"`
}

type RevokeRoleRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Caller string `json:"-"`
}

type CheckRoleRequest struct {
	Actor string `json:"actor"`
	Role  string `json:"role"`
}

type CheckRoleResponse struct {
	Actor   string `json:"actor"`
	Role    string `json:"role"`
	HasRole bool   `json:"has_role"`
}

type RegisterSubjectRequest struct {
	Subject string `json:"subject" binding:"required"`
	AssetID string `json:"asset_id" binding:"required"`
	Caller  string `json:"-"`
}

type ReassignControllerRequest struct {
	AssetID       string `json:"-"`
	NewController string `json:"new_controller" binding:"required"`
	Caller        string `json:"-"`
}

type LogicalDeletionRequest struct {
	AssetID string `json:"-"`
	Caller  string `json:"-"`
}

type AssetControlResponse struct {
	AssetID           string    `json:"asset_id"`
	Controller        string    `json:"controller"`
	DeletionRequested bool      `json:"deletion_requested"`
	UpdatedAt         time.Time `json:"updated_at"`
}
