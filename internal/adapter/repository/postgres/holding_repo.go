package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realstake/realstake-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

const holdingColumns = "id, location_id, owner_id, own_percentage, capital_amount, created_at, updated_at"

// Create inserts a new holding
func (r *holdingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, location_id, owner_id, own_percentage, capital_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.LocationID,
		holding.OwnerID,
		holding.OwnPercentage.String(),
		holding.CapitalAmount.String(),
		holding.CreatedAt,
		holding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// GetByOwnerAndLocation retrieves the holding for an (owner, location) pair
func (r *holdingRepository) GetByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE owner_id = $1 AND location_id = $2 ORDER BY seq LIMIT 1`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, ownerID, locationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoSuchHolding
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return holding, nil
}

// List retrieves all holdings in insertion order
func (r *holdingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings ORDER BY seq`
	return r.queryHoldings(ctx, query)
}

// ListByOwner retrieves all holdings of an owner in insertion order
func (r *holdingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE owner_id = $1 ORDER BY seq`
	return r.queryHoldings(ctx, query, ownerID)
}

// ListByLocation retrieves all holdings on a location in insertion order
func (r *holdingRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE location_id = $1 ORDER BY seq`
	return r.queryHoldings(ctx, query, locationID)
}

// Update overwrites an existing holding
func (r *holdingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	query := `
		UPDATE holdings
		SET own_percentage = $2, capital_amount = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.OwnPercentage.String(),
		holding.CapitalAmount.String(),
		holding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNoSuchHolding
	}

	return nil
}

// DeleteByOwner removes all holdings referencing an owner
func (r *holdingRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to delete holdings by owner: %w", err)
	}
	return nil
}

// DeleteByLocation removes all holdings referencing a location
func (r *holdingRepository) DeleteByLocation(ctx context.Context, locationID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete holdings by location: %w", err)
	}
	return nil
}

func (r *holdingRepository) queryHoldings(ctx context.Context, query string, args ...interface{}) ([]*domain.Holding, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var holding domain.Holding
	var percentageStr, amountStr string

	if err := row.Scan(&holding.ID, &holding.LocationID, &holding.OwnerID, &percentageStr, &amountStr, &holding.CreatedAt, &holding.UpdatedAt); err != nil {
		return nil, err
	}

	percentage, err := decimal.NewFromString(percentageStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse own_percentage: %w", err)
	}
	holding.OwnPercentage = percentage

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capital_amount: %w", err)
	}
	holding.CapitalAmount = amount

	return &holding, nil
}
