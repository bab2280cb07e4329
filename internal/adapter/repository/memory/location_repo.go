package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/realstake/realstake-backend/internal/domain"
)

// locationRepository implements domain.LocationRepository
type locationRepository struct {
	s *Store
}

// NewLocationRepository creates a new in-memory location repository
func NewLocationRepository(s *Store) domain.LocationRepository {
	return &locationRepository{s: s}
}

func (r *locationRepository) Create(_ context.Context, location *domain.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.locations[location.ID] = *location
	r.s.locationOrder = append(r.s.locationOrder, location.ID)
	return nil
}

func (r *locationRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	location, ok := r.s.locations[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	return &location, nil
}

func (r *locationRepository) GetByName(_ context.Context, name string) (*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.locationOrder {
		if location := r.s.locations[id]; location.Name == name {
			return &location, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *locationRepository) List(_ context.Context) ([]*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Location, 0, len(r.s.locationOrder))
	for _, id := range r.s.locationOrder {
		location := r.s.locations[id]
		out = append(out, &location)
	}
	return out, nil
}

func (r *locationRepository) Update(_ context.Context, location *domain.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[location.ID]; !ok {
		return domain.ErrLocationNotFound
	}
	r.s.locations[location.ID] = *location
	return nil
}

func (r *locationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrLocationNotFound
	}
	delete(r.s.locations, id)
	r.s.locationOrder = removeID(r.s.locationOrder, id)
	return nil
}
