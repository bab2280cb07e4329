package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/realstake/realstake-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	s *Store
}

// NewHoldingRepository creates a new in-memory holding repository
func NewHoldingRepository(s *Store) domain.HoldingRepository {
	return &holdingRepository{s: s}
}

func (r *holdingRepository) Create(_ context.Context, holding *domain.Holding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.holdings[holding.ID] = *holding
	r.s.holdingOrder = append(r.s.holdingOrder, holding.ID)
	return nil
}

func (r *holdingRepository) GetByOwnerAndLocation(_ context.Context, ownerID, locationID uuid.UUID) (*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.holdingOrder {
		holding := r.s.holdings[id]
		if holding.OwnerID == ownerID && holding.LocationID == locationID {
			return &holding, nil
		}
	}
	return nil, domain.ErrNoSuchHolding
}

func (r *holdingRepository) List(_ context.Context) ([]*domain.Holding, error) {
	return r.filter(func(*domain.Holding) bool { return true })
}

func (r *holdingRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Holding, error) {
	return r.filter(func(h *domain.Holding) bool { return h.OwnerID == ownerID })
}

func (r *holdingRepository) ListByLocation(_ context.Context, locationID uuid.UUID) ([]*domain.Holding, error) {
	return r.filter(func(h *domain.Holding) bool { return h.LocationID == locationID })
}

func (r *holdingRepository) Update(_ context.Context, holding *domain.Holding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.holdings[holding.ID]; !ok {
		return domain.ErrNoSuchHolding
	}
	r.s.holdings[holding.ID] = *holding
	return nil
}

func (r *holdingRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	return r.deleteWhere(func(h *domain.Holding) bool { return h.OwnerID == ownerID })
}

func (r *holdingRepository) DeleteByLocation(_ context.Context, locationID uuid.UUID) error {
	return r.deleteWhere(func(h *domain.Holding) bool { return h.LocationID == locationID })
}

func (r *holdingRepository) filter(keep func(*domain.Holding) bool) ([]*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Holding
	for _, id := range r.s.holdingOrder {
		holding := r.s.holdings[id]
		if keep(&holding) {
			out = append(out, &holding)
		}
	}
	return out, nil
}

func (r *holdingRepository) deleteWhere(match func(*domain.Holding) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.holdingOrder[:0]
	for _, id := range r.s.holdingOrder {
		holding := r.s.holdings[id]
		if match(&holding) {
			delete(r.s.holdings, id)
			continue
		}
		kept = append(kept, id)
	}
	r.s.holdingOrder = kept
	return nil
}
