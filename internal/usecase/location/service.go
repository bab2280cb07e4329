package location

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realstake/realstake-backend/internal/domain"
)

var one = decimal.NewFromInt(1)

// Service handles location lifecycle operations
type Service struct {
	Ledger          *sync.Mutex
	LocationRepo    domain.LocationRepository
	TransactionRepo domain.TransactionRepository
	HoldingRepo     domain.HoldingRepository
}

// NewService creates a new location Service instance.
// ledger is the shared lock serializing all accounting operations.
func NewService(
	ledger *sync.Mutex,
	locationRepo domain.LocationRepository,
	transactionRepo domain.TransactionRepository,
	holdingRepo domain.HoldingRepository,
) *Service {
	return &Service{
		Ledger:          ledger,
		LocationRepo:    locationRepo,
		TransactionRepo: transactionRepo,
		HoldingRepo:     holdingRepo,
	}
}

// CreateLocation lists a new location with full availability.
// The duplicate-name check runs before price validation, matching the
// behavior callers depend on.
func (s *Service) CreateLocation(ctx context.Context, name string, price decimal.Decimal) (*domain.Location, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	if _, err := s.LocationRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateLocation
	} else if !errors.Is(err, domain.ErrLocationNotFound) {
		return nil, fmt.Errorf("failed to check location name: %w", err)
	}

	if price.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now()
	location := &domain.Location{
		ID:                uuid.New(),
		Name:              name,
		Price:             price,
		AvailableFraction: one,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := location.Validate(); err != nil {
		return nil, err
	}

	if err := s.LocationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

// SetAvailability overwrites a location's available fraction directly.
// No consistency check against existing holdings is performed; keeping
// conservation intact is the caller's responsibility.
func (s *Service) SetAvailability(ctx context.Context, name string, fraction decimal.Decimal) (*domain.Location, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	location, err := s.LocationRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if fraction.IsNegative() || fraction.GreaterThan(one) {
		return nil, domain.ErrInvalidRange
	}

	location.AvailableFraction = fraction
	location.UpdatedAt = time.Now()

	if err := s.LocationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return location, nil
}

// DeleteLocation removes a location and cascades deletion of all
// transactions and holdings referencing it. Owner cash is NOT refunded.
func (s *Service) DeleteLocation(ctx context.Context, name string) error {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	location, err := s.LocationRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.TransactionRepo.DeleteByLocation(ctx, location.ID); err != nil {
		return fmt.Errorf("failed to delete location transactions: %w", err)
	}

	if err := s.HoldingRepo.DeleteByLocation(ctx, location.ID); err != nil {
		return fmt.Errorf("failed to delete location holdings: %w", err)
	}

	if err := s.LocationRepo.Delete(ctx, location.ID); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}

// GetLocation retrieves a location by name
func (s *Service) GetLocation(ctx context.Context, name string) (*domain.Location, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	return s.LocationRepo.GetByName(ctx, name)
}
