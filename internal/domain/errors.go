package domain

import "errors"

// Sentinel errors returned by the accounting services. Adapters match on
// these with errors.Is to pick the wire representation.
var (
	// ErrOwnerNotFound is returned when no owner with the given name exists
	ErrOwnerNotFound = errors.New("owner does not exist")

	// ErrLocationNotFound is returned when no location with the given name is listed
	ErrLocationNotFound = errors.New("location is not listed")

	// ErrDuplicateOwner is returned when creating an owner whose name is taken
	ErrDuplicateOwner = errors.New("owner already exists")

	// ErrDuplicateLocation is returned when listing a location whose name is taken
	ErrDuplicateLocation = errors.New("location is already listed")

	// ErrInvalidAmount is returned for a non-numeric or out-of-range quantity
	ErrInvalidAmount = errors.New("amount is invalid")

	// ErrInvalidRange is returned for a fraction outside [0, 1]
	ErrInvalidRange = errors.New("fraction must be between 0 and 1")

	// ErrInsufficientFunds is returned when an owner's cash cannot cover an operation
	ErrInsufficientFunds = errors.New("cash is not sufficient")

	// ErrExceedsAvailable is returned when a purchase exceeds a location's available value
	ErrExceedsAvailable = errors.New("amount exceeds the available value")

	// ErrInsufficientOwnership is returned when a sale exceeds the seller's stake
	ErrInsufficientOwnership = errors.New("ownership is not sufficient")

	// ErrNoSuchHolding is returned when no holding exists for an (owner, location) pair
	ErrNoSuchHolding = errors.New("holding does not exist")

	// ErrTransactionNotFound is returned when no transaction matches the given criteria
	ErrTransactionNotFound = errors.New("transaction does not exist")
)
