package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/realstake/realstake-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	s *Store
}

// NewTransactionRepository creates a new in-memory transaction repository
func NewTransactionRepository(s *Store) domain.TransactionRepository {
	return &transactionRepository{s: s}
}

func (r *transactionRepository) Create(_ context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.transactions[tx.ID] = *tx
	r.s.transactionOrder = append(r.s.transactionOrder, tx.ID)
	return nil
}

func (r *transactionRepository) List(_ context.Context) ([]*domain.Transaction, error) {
	return r.filter(func(*domain.Transaction) bool { return true })
}

func (r *transactionRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Transaction, error) {
	return r.filter(func(tx *domain.Transaction) bool { return tx.OwnerID == ownerID })
}

func (r *transactionRepository) ListByLocation(_ context.Context, locationID uuid.UUID) ([]*domain.Transaction, error) {
	return r.filter(func(tx *domain.Transaction) bool { return tx.LocationID == locationID })
}

func (r *transactionRepository) ListByOwnerAndLocation(_ context.Context, ownerID, locationID uuid.UUID) ([]*domain.Transaction, error) {
	return r.filter(func(tx *domain.Transaction) bool {
		return tx.OwnerID == ownerID && tx.LocationID == locationID
	})
}

func (r *transactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	r.s.transactionOrder = removeID(r.s.transactionOrder, id)
	return nil
}

func (r *transactionRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	return r.deleteWhere(func(tx *domain.Transaction) bool { return tx.OwnerID == ownerID })
}

func (r *transactionRepository) DeleteByLocation(_ context.Context, locationID uuid.UUID) error {
	return r.deleteWhere(func(tx *domain.Transaction) bool { return tx.LocationID == locationID })
}

func (r *transactionRepository) filter(keep func(*domain.Transaction) bool) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Transaction
	for _, id := range r.s.transactionOrder {
		tx := r.s.transactions[id]
		if keep(&tx) {
			out = append(out, &tx)
		}
	}
	return out, nil
}

func (r *transactionRepository) deleteWhere(match func(*domain.Transaction) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.transactionOrder[:0]
	for _, id := range r.s.transactionOrder {
		tx := r.s.transactions[id]
		if match(&tx) {
			delete(r.s.transactions, id)
			continue
		}
		kept = append(kept, id)
	}
	r.s.transactionOrder = kept
	return nil
}
