package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOwner_Validate(t *testing.T) {
	tests := []struct {
		name    string
		owner   Owner
		wantErr bool
		errMsg  string
	}{
		{
			name: "Owner with name and zero cash should pass",
			owner: Owner{
				ID:   uuid.New(),
				Name: "Alice",
				Cash: decimal.Zero,
			},
			wantErr: false,
		},
		{
			name: "Owner with empty name should fail",
			owner: Owner{
				ID:   uuid.New(),
				Name: "",
				Cash: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "owner name cannot be empty",
		},
		{
			name: "Owner with negative cash should fail",
			owner: Owner{
				ID:   uuid.New(),
				Name: "Alice",
				Cash: decimal.NewFromInt(-1),
			},
			wantErr: true,
			errMsg:  "owner cash cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.owner.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
