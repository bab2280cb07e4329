// Package memory provides in-memory implementations of the domain
// repositories. Each collection is an ordered map: lookups go through a
// map, full scans follow insertion order. Entities are copied on the way
// in and out so callers can stage changes and commit them with Update.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/realstake/realstake-backend/internal/domain"
)

// Store holds the four entity collections behind a single lock
type Store struct {
	mu sync.RWMutex

	owners     map[uuid.UUID]domain.Owner
	ownerOrder []uuid.UUID

	locations     map[uuid.UUID]domain.Location
	locationOrder []uuid.UUID

	transactions     map[uuid.UUID]domain.Transaction
	transactionOrder []uuid.UUID

	holdings     map[uuid.UUID]domain.Holding
	holdingOrder []uuid.UUID
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		owners:       make(map[uuid.UUID]domain.Owner),
		locations:    make(map[uuid.UUID]domain.Location),
		transactions: make(map[uuid.UUID]domain.Transaction),
		holdings:     make(map[uuid.UUID]domain.Holding),
	}
}

// removeID deletes the first occurrence of id from order, preserving the
// relative order of the remaining elements.
func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
