package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location represents a listed property that can be fractionally owned.
// AvailableFraction is the portion of total value not yet owned by anyone.
// Price is immutable after creation.
type Location struct {
	ID                uuid.UUID
	Name              string
	Price             decimal.Decimal // Total value, always positive
	AvailableFraction decimal.Decimal // In [0, 1]
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate ensures the location adheres to domain rules
func (l *Location) Validate() error {
	if l.Name == "" {
		return errors.New("location name cannot be empty")
	}

	if l.Price.LessThanOrEqual(decimal.Zero) {
		return errors.New("location price must be positive")
	}

	if l.AvailableFraction.IsNegative() || l.AvailableFraction.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("available fraction must be between 0 and 1")
	}

	return nil
}
