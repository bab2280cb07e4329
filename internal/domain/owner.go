package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Owner represents an investor holding cash and fractional stakes.
// Names are unique across the owners collection.
type Owner struct {
	ID        uuid.UUID
	Name      string
	Cash      decimal.Decimal // Never negative
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate ensures the owner adheres to domain rules
func (o *Owner) Validate() error {
	if o.Name == "" {
		return errors.New("owner name cannot be empty")
	}

	if o.Cash.IsNegative() {
		return errors.New("owner cash cannot be negative")
	}

	return nil
}
