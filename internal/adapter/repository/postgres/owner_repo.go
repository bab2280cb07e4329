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

// ownerRepository implements domain.OwnerRepository
type ownerRepository struct {
	db *DB
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *DB) domain.OwnerRepository {
	return &ownerRepository{db: db}
}

const ownerColumns = "id, name, cash, created_at, updated_at"

// Create inserts a new owner
func (r *ownerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	query := `
		INSERT INTO owners (id, name, cash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		owner.ID,
		owner.Name,
		owner.Cash.String(),
		owner.CreatedAt,
		owner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}

	return nil
}

// GetByID retrieves an owner by its ID
func (r *ownerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	owner, err := scanOwner(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to get owner by ID: %w", err)
	}

	return owner, nil
}

// GetByName retrieves the first owner with the given name in insertion order
func (r *ownerRepository) GetByName(ctx context.Context, name string) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE name = $1 ORDER BY seq LIMIT 1`

	owner, err := scanOwner(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to get owner by name: %w", err)
	}

	return owner, nil
}

// List retrieves all owners in insertion order
func (r *ownerRepository) List(ctx context.Context) ([]*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate owners: %w", err)
	}

	return owners, nil
}

// Update overwrites an existing owner
func (r *ownerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	query := `
		UPDATE owners
		SET name = $2, cash = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		owner.ID,
		owner.Name,
		owner.Cash.String(),
		owner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}

// Delete removes an owner by ID
func (r *ownerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete owner: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOwner(row rowScanner) (*domain.Owner, error) {
	var owner domain.Owner
	var cashStr string

	if err := row.Scan(&owner.ID, &owner.Name, &cashStr, &owner.CreatedAt, &owner.UpdatedAt); err != nil {
		return nil, err
	}

	cash, err := decimal.NewFromString(cashStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cash: %w", err)
	}
	owner.Cash = cash

	return &owner, nil
}
