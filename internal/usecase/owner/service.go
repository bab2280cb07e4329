package owner

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

// Service handles owner lifecycle operations
type Service struct {
	Ledger          *sync.Mutex
	OwnerRepo       domain.OwnerRepository
	TransactionRepo domain.TransactionRepository
	HoldingRepo     domain.HoldingRepository
}

// NewService creates a new owner Service instance.
// ledger is the shared lock serializing all accounting operations.
func NewService(
	ledger *sync.Mutex,
	ownerRepo domain.OwnerRepository,
	transactionRepo domain.TransactionRepository,
	holdingRepo domain.HoldingRepository,
) *Service {
	return &Service{
		Ledger:          ledger,
		OwnerRepo:       ownerRepo,
		TransactionRepo: transactionRepo,
		HoldingRepo:     holdingRepo,
	}
}

// CreateOwner registers a new owner with zero cash
// Returns domain.ErrDuplicateOwner if the name is already taken
func (s *Service) CreateOwner(ctx context.Context, name string) (*domain.Owner, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	if _, err := s.OwnerRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateOwner
	} else if !errors.Is(err, domain.ErrOwnerNotFound) {
		return nil, fmt.Errorf("failed to check owner name: %w", err)
	}

	now := time.Now()
	owner := &domain.Owner{
		ID:        uuid.New(),
		Name:      name,
		Cash:      decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := owner.Validate(); err != nil {
		return nil, err
	}

	if err := s.OwnerRepo.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	return owner, nil
}

// TopUpCash adds cash to an owner's balance
// A zero amount is accepted and only touches the updated timestamp
func (s *Service) TopUpCash(ctx context.Context, name string, amount decimal.Decimal) (*domain.Owner, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	owner.Cash = owner.Cash.Add(amount)
	owner.UpdatedAt = time.Now()

	if err := s.OwnerRepo.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	return owner, nil
}

// WithdrawCash removes cash from an owner's balance
// Returns domain.ErrInsufficientFunds if the amount exceeds the balance
func (s *Service) WithdrawCash(ctx context.Context, name string, amount decimal.Decimal) (*domain.Owner, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if amount.GreaterThan(owner.Cash) {
		return nil, domain.ErrInsufficientFunds
	}

	owner.Cash = owner.Cash.Sub(amount)
	owner.UpdatedAt = time.Now()

	if err := s.OwnerRepo.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	return owner, nil
}

// DeleteOwner removes an owner and cascades deletion of all transactions
// and holdings referencing it. Location availability is NOT restored.
func (s *Service) DeleteOwner(ctx context.Context, name string) error {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.TransactionRepo.DeleteByOwner(ctx, owner.ID); err != nil {
		return fmt.Errorf("failed to delete owner transactions: %w", err)
	}

	if err := s.HoldingRepo.DeleteByOwner(ctx, owner.ID); err != nil {
		return fmt.Errorf("failed to delete owner holdings: %w", err)
	}

	if err := s.OwnerRepo.Delete(ctx, owner.ID); err != nil {
		return fmt.Errorf("failed to delete owner: %w", err)
	}

	return nil
}

// GetOwner retrieves an owner by name
func (s *Service) GetOwner(ctx context.Context, name string) (*domain.Owner, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	return s.OwnerRepo.GetByName(ctx, name)
}
