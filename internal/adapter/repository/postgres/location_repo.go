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

// locationRepository implements domain.LocationRepository
type locationRepository struct {
	db *DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *DB) domain.LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = "id, name, price, available_fraction, created_at, updated_at"

// Create inserts a new location
func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (id, name, price, available_fraction, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		location.ID,
		location.Name,
		location.Price.String(),
		location.AvailableFraction.String(),
		location.CreatedAt,
		location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

// GetByID retrieves a location by its ID
func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	location, err := scanLocation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return location, nil
}

// GetByName retrieves the first location with the given name in insertion order
func (r *locationRepository) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE name = $1 ORDER BY seq LIMIT 1`

	location, err := scanLocation(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location by name: %w", err)
	}

	return location, nil
}

// List retrieves all locations in insertion order
func (r *locationRepository) List(ctx context.Context) ([]*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*domain.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}

// Update overwrites an existing location
func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	query := `
		UPDATE locations
		SET name = $2, price = $3, available_fraction = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		location.ID,
		location.Name,
		location.Price.String(),
		location.AvailableFraction.String(),
		location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrLocationNotFound
	}

	return nil
}

// Delete removes a location by ID
func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrLocationNotFound
	}

	return nil
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var location domain.Location
	var priceStr, fractionStr string

	if err := row.Scan(&location.ID, &location.Name, &priceStr, &fractionStr, &location.CreatedAt, &location.UpdatedAt); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	location.Price = price

	fraction, err := decimal.NewFromString(fractionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse available_fraction: %w", err)
	}
	location.AvailableFraction = fraction

	return &location, nil
}
