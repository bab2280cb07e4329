package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is the cumulative stake of one owner in one location.
// At most one holding exists per (owner, location) pair. A holding is
// created on first purchase, accumulated by later buys and sells of the
// same pair, and removed only when its owner or location is deleted.
// Corrective operations (DeleteTransaction, SetOwnershipPercentage) may
// drive OwnPercentage outside [0, 1]; no clamping is applied.
type Holding struct {
	ID            uuid.UUID
	LocationID    uuid.UUID
	OwnerID       uuid.UUID
	OwnPercentage decimal.Decimal // Cumulative fraction owned
	CapitalAmount decimal.Decimal // Cumulative dollars invested
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
