package asset

import "errors"

var (
	// ErrAssetNotFound is returned when an asset id is not registered
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAlreadyRegistered is returned on a registration id collision
	ErrAlreadyRegistered = errors.New("asset already registered")

	// ErrAssetInactive is returned when an operation requires an active asset
	ErrAssetInactive = errors.New("asset is inactive")

	// ErrContentHashRequired is returned when the content hash is empty
	ErrContentHashRequired = errors.New("content hash is required")

	// ErrOwnerRequired is returned when the owner actor is the null actor
	ErrOwnerRequired = errors.New("owner is required")

	// ErrInvalidAssetType is returned for an unknown asset type
	ErrInvalidAssetType = errors.New("invalid asset type")
)
