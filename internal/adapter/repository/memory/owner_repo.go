package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/realstake/realstake-backend/internal/domain"
)

// ownerRepository implements domain.OwnerRepository
type ownerRepository struct {
	s *Store
}

// NewOwnerRepository creates a new in-memory owner repository
func NewOwnerRepository(s *Store) domain.OwnerRepository {
	return &ownerRepository{s: s}
}

func (r *ownerRepository) Create(_ context.Context, owner *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.owners[owner.ID] = *owner
	r.s.ownerOrder = append(r.s.ownerOrder, owner.ID)
	return nil
}

func (r *ownerRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owner, ok := r.s.owners[id]
	if !ok {
		return nil, domain.ErrOwnerNotFound
	}
	return &owner, nil
}

func (r *ownerRepository) GetByName(_ context.Context, name string) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.ownerOrder {
		if owner := r.s.owners[id]; owner.Name == name {
			return &owner, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

func (r *ownerRepository) List(_ context.Context) ([]*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Owner, 0, len(r.s.ownerOrder))
	for _, id := range r.s.ownerOrder {
		owner := r.s.owners[id]
		out = append(out, &owner)
	}
	return out, nil
}

func (r *ownerRepository) Update(_ context.Context, owner *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[owner.ID]; !ok {
		return domain.ErrOwnerNotFound
	}
	r.s.owners[owner.ID] = *owner
	return nil
}

func (r *ownerRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return domain.ErrOwnerNotFound
	}
	delete(r.s.owners, id)
	r.s.ownerOrder = removeID(r.s.ownerOrder, id)
	return nil
}
