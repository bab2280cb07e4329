package domain

import (
	"context"

	"github.com/google/uuid"
)

// OwnerRepository defines the interface for owner persistence operations.
// List and GetByName iterate the collection in insertion order; callers
// relying on duplicate-name tie-breaks get the first inserted match.
type OwnerRepository interface {
	// Create inserts a new owner
	Create(ctx context.Context, owner *Owner) error

	// GetByID retrieves an owner by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Owner, error)

	// GetByName retrieves the first owner with the given name in insertion order
	// Returns ErrOwnerNotFound if no owner matches
	GetByName(ctx context.Context, name string) (*Owner, error)

	// List retrieves all owners in insertion order
	List(ctx context.Context) ([]*Owner, error)

	// Update overwrites an existing owner
	Update(ctx context.Context, owner *Owner) error

	// Delete removes an owner by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository defines the interface for location persistence operations
type LocationRepository interface {
	// Create inserts a new location
	Create(ctx context.Context, location *Location) error

	// GetByID retrieves a location by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// GetByName retrieves the first location with the given name in insertion order
	// Returns ErrLocationNotFound if no location matches
	GetByName(ctx context.Context, name string) (*Location, error)

	// List retrieves all locations in insertion order
	List(ctx context.Context) ([]*Location, error)

	// Update overwrites an existing location
	Update(ctx context.Context, location *Location) error

	// Delete removes a location by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for transaction persistence operations.
// Transactions are append-only; they are removed only by corrective deletion
// or by owner/location cascade.
type TransactionRepository interface {
	// Create appends a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// List retrieves all transactions in insertion order
	List(ctx context.Context) ([]*Transaction, error)

	// ListByOwner retrieves all transactions of an owner in insertion order
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error)

	// ListByLocation retrieves all transactions on a location in insertion order
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*Transaction, error)

	// ListByOwnerAndLocation retrieves all transactions of an owner on a location
	// in insertion order
	ListByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) ([]*Transaction, error)

	// Delete removes a single transaction by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes all transactions referencing an owner
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error

	// DeleteByLocation removes all transactions referencing a location
	DeleteByLocation(ctx context.Context, locationID uuid.UUID) error
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// Create inserts a new holding
	Create(ctx context.Context, holding *Holding) error

	// GetByOwnerAndLocation retrieves the holding for an (owner, location) pair
	// Returns ErrNoSuchHolding if none exists
	GetByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) (*Holding, error)

	// List retrieves all holdings in insertion order
	List(ctx context.Context) ([]*Holding, error)

	// ListByOwner retrieves all holdings of an owner in insertion order
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Holding, error)

	// ListByLocation retrieves all holdings on a location in insertion order
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*Holding, error)

	// Update overwrites an existing holding
	Update(ctx context.Context, holding *Holding) error

	// DeleteByOwner removes all holdings referencing an owner
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error

	// DeleteByLocation removes all holdings referencing a location
	DeleteByLocation(ctx context.Context, locationID uuid.UUID) error
}
