package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realstake/realstake-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = "id, location_id, owner_id, own_percentage, capital_amount, created_at, updated_at"

// Create appends a new transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, location_id, owner_id, own_percentage, capital_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.LocationID,
		tx.OwnerID,
		tx.OwnPercentage.String(),
		tx.CapitalAmount.String(),
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// List retrieves all transactions in insertion order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY seq`
	return r.queryTransactions(ctx, query)
}

// ListByOwner retrieves all transactions of an owner in insertion order
func (r *transactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 ORDER BY seq`
	return r.queryTransactions(ctx, query, ownerID)
}

// ListByLocation retrieves all transactions on a location in insertion order
func (r *transactionRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE location_id = $1 ORDER BY seq`
	return r.queryTransactions(ctx, query, locationID)
}

// ListByOwnerAndLocation retrieves all transactions of an owner on a location
// in insertion order
func (r *transactionRepository) ListByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND location_id = $2 ORDER BY seq`
	return r.queryTransactions(ctx, query, ownerID, locationID)
}

// Delete removes a single transaction by ID
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteByOwner removes all transactions referencing an owner
func (r *transactionRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to delete transactions by owner: %w", err)
	}
	return nil
}

// DeleteByLocation removes all transactions referencing a location
func (r *transactionRepository) DeleteByLocation(ctx context.Context, locationID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete transactions by location: %w", err)
	}
	return nil
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var percentageStr, amountStr string

		if err := rows.Scan(&tx.ID, &tx.LocationID, &tx.OwnerID, &percentageStr, &amountStr, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		percentage, err := decimal.NewFromString(percentageStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse own_percentage: %w", err)
		}
		tx.OwnPercentage = percentage

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse capital_amount: %w", err)
		}
		tx.CapitalAmount = amount

		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}
