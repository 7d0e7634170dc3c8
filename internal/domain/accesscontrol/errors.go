package accesscontrol

import "errors"

var (
	// ErrControlNotFound is returned when no control record exists for an asset
	ErrControlNotFound = errors.New("asset control record not found")

	// ErrControllerRequired is returned when the controller would become the
	// null actor
	ErrControllerRequired = errors.New("controller is required")

	// ErrInvalidRole is returned for an unknown role name
	ErrInvalidRole = errors.New("invalid role")

	// ErrNotAdministrator is returned when the caller lacks the administrative
	// data-controller role
	ErrNotAdministrator = errors.New("caller does not hold the data-controller role")

	// ErrUntrustedCaller is returned when registerSubject is invoked by a
	// caller outside the trusted allowlist
	ErrUntrustedCaller = errors.New("caller is not a trusted subject registrar")
)
