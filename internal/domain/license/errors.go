package license

import "errors"

var (
	// ErrLicenseNotFound is returned when a license id does not exist
	ErrLicenseNotFound = errors.New("license not found")

	// ErrLicenseInactive is returned when an operation requires an active grant
	ErrLicenseInactive = errors.New("license is inactive")

	// ErrAlreadyTerminated is returned when terminating a terminated grant
	ErrAlreadyTerminated = errors.New("license already terminated")

	// ErrInvalidLicensee is returned when the licensee is the null actor
	ErrInvalidLicensee = errors.New("invalid licensee")

	// ErrInvalidLicenseType is returned for an unknown license type
	ErrInvalidLicenseType = errors.New("invalid license type")

	// ErrInvalidDateRange is returned when the start date precedes grant
	// creation or the end date does not follow the start date
	ErrInvalidDateRange = errors.New("invalid license date range")

	// ErrInvalidAmount is returned for a zero royalty payment
	ErrInvalidAmount = errors.New("royalty amount must be positive")

	// ErrNotParty is returned when the caller is neither licensor nor licensee
	ErrNotParty = errors.New("caller is not a party to the license")
)
