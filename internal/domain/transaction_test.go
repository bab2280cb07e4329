package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		ID:            uuid.New(),
		LocationID:    uuid.New(),
		OwnerID:       uuid.New(),
		OwnPercentage: decimal.NewFromFloat(0.4),
		CapitalAmount: decimal.NewFromInt(400),
	}
	assert.NoError(t, valid.Validate())

	noLocation := valid
	noLocation.LocationID = uuid.Nil
	assert.Error(t, noLocation.Validate())

	noOwner := valid
	noOwner.OwnerID = uuid.Nil
	assert.Error(t, noOwner.Validate())

	zeroAmount := valid
	zeroAmount.CapitalAmount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())
}
