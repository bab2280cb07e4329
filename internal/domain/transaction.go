package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a single buy or sell event.
// Buys and sells produce structurally identical records: there is no
// direction flag, and both OwnPercentage and CapitalAmount are positive.
type Transaction struct {
	ID            uuid.UUID
	LocationID    uuid.UUID
	OwnerID       uuid.UUID
	OwnPercentage decimal.Decimal // Fraction of the location moved by this event
	CapitalAmount decimal.Decimal // Dollar amount moved, always positive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.LocationID == uuid.Nil {
		return errors.New("transaction must reference a location")
	}

	if t.OwnerID == uuid.Nil {
		return errors.New("transaction must reference an owner")
	}

	if t.CapitalAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction capital amount must be positive")
	}

	return nil
}
