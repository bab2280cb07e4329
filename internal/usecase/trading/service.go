package trading

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

// Service handles stake purchases, sales and corrective adjustments.
// Every operation validates against current state before the first write,
// so a failed call leaves all four collections untouched.
type Service struct {
	Ledger          *sync.Mutex
	OwnerRepo       domain.OwnerRepository
	LocationRepo    domain.LocationRepository
	TransactionRepo domain.TransactionRepository
	HoldingRepo     domain.HoldingRepository
}

// NewService creates a new trading Service instance.
// ledger is the shared lock serializing all accounting operations.
func NewService(
	ledger *sync.Mutex,
	ownerRepo domain.OwnerRepository,
	locationRepo domain.LocationRepository,
	transactionRepo domain.TransactionRepository,
	holdingRepo domain.HoldingRepository,
) *Service {
	return &Service{
		Ledger:          ledger,
		OwnerRepo:       ownerRepo,
		LocationRepo:    locationRepo,
		TransactionRepo: transactionRepo,
		HoldingRepo:     holdingRepo,
	}
}

// BuyLocation purchases a fractional stake worth amount dollars.
//
// Checks run in a fixed order that callers depend on: buyer, location,
// funds, availability, and only then the amount itself. Callers see the
// first failing check's error, so the order is part of the API.
func (s *Service) BuyLocation(ctx context.Context, buyerName, locationName string, amount decimal.Decimal) (*domain.Transaction, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	buyer, err := s.OwnerRepo.GetByName(ctx, buyerName)
	if err != nil {
		return nil, err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return nil, err
	}

	if buyer.Cash.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if location.AvailableFraction.Mul(location.Price).LessThan(amount) {
		return nil, domain.ErrExceedsAvailable
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	fraction := amount.Div(location.Price)
	now := time.Now()

	tx := &domain.Transaction{
		ID:            uuid.New(),
		LocationID:    location.ID,
		OwnerID:       buyer.ID,
		OwnPercentage: fraction,
		CapitalAmount: amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.upsertHolding(ctx, buyer.ID, location.ID, fraction, amount, now); err != nil {
		return nil, err
	}

	buyer.Cash = buyer.Cash.Sub(amount)
	buyer.UpdatedAt = now
	if err := s.OwnerRepo.Update(ctx, buyer); err != nil {
		return nil, fmt.Errorf("failed to update buyer: %w", err)
	}

	location.AvailableFraction = location.AvailableFraction.Sub(fraction)
	location.UpdatedAt = now
	if err := s.LocationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return tx, nil
}

// SellLocation sells back a stake worth amount dollars.
//
// The sale is recorded with the same positive shape as a buy; transactions
// carry no direction flag. The holding is decremented but never removed,
// even at a zero balance.
func (s *Service) SellLocation(ctx context.Context, sellerName, locationName string, amount decimal.Decimal) (*domain.Transaction, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	seller, err := s.OwnerRepo.GetByName(ctx, sellerName)
	if err != nil {
		return nil, err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return nil, err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	fraction := amount.Div(location.Price)

	holding, err := s.HoldingRepo.GetByOwnerAndLocation(ctx, seller.ID, location.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoSuchHolding) {
			return nil, domain.ErrInsufficientOwnership
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	if holding.OwnPercentage.LessThan(fraction) {
		return nil, domain.ErrInsufficientOwnership
	}

	now := time.Now()

	tx := &domain.Transaction{
		ID:            uuid.New(),
		LocationID:    location.ID,
		OwnerID:       seller.ID,
		OwnPercentage: fraction,
		CapitalAmount: amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	holding.OwnPercentage = holding.OwnPercentage.Sub(fraction)
	holding.CapitalAmount = holding.CapitalAmount.Sub(amount)
	holding.UpdatedAt = now
	if err := s.HoldingRepo.Update(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	seller.Cash = seller.Cash.Add(amount)
	seller.UpdatedAt = now
	if err := s.OwnerRepo.Update(ctx, seller); err != nil {
		return nil, fmt.Errorf("failed to update seller: %w", err)
	}

	location.AvailableFraction = location.AvailableFraction.Add(fraction)
	location.UpdatedAt = now
	if err := s.LocationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return tx, nil
}

// SetOwnershipPercentage is an administrative override that rewrites a
// holding's percentage to a caller-supplied value in [0, 1]. It bypasses
// the capital/availability bookkeeping maintained by buys and sells.
func (s *Service) SetOwnershipPercentage(ctx context.Context, ownerName, locationName string, fraction decimal.Decimal) (*domain.Holding, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return nil, err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return nil, err
	}

	if fraction.IsNegative() || fraction.GreaterThan(one) {
		return nil, domain.ErrInvalidRange
	}

	holding, err := s.HoldingRepo.GetByOwnerAndLocation(ctx, owner.ID, location.ID)
	if err != nil {
		return nil, err
	}

	holding.OwnPercentage = fraction
	holding.UpdatedAt = time.Now()

	if err := s.HoldingRepo.Update(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return holding, nil
}

// DeleteTransaction removes the first transaction matching the owner,
// location and exact capital amount, and reverses its effect as if it
// were a buy: cash is refunded and availability restored regardless of
// whether the record came from a buy or a sell. The holding may go
// negative; no clamping is applied.
func (s *Service) DeleteTransaction(ctx context.Context, ownerName, locationName string, amount decimal.Decimal) error {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	txs, err := s.TransactionRepo.ListByOwnerAndLocation(ctx, owner.ID, location.ID)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	// First exact-amount match in insertion order wins.
	var match *domain.Transaction
	for _, tx := range txs {
		if tx.CapitalAmount.Equal(amount) {
			match = tx
			break
		}
	}
	if match == nil {
		return domain.ErrTransactionNotFound
	}

	if err := s.TransactionRepo.Delete(ctx, match.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	now := time.Now()

	holding, err := s.HoldingRepo.GetByOwnerAndLocation(ctx, owner.ID, location.ID)
	if err == nil {
		holding.OwnPercentage = holding.OwnPercentage.Sub(match.OwnPercentage)
		holding.CapitalAmount = holding.CapitalAmount.Sub(match.CapitalAmount)
		holding.UpdatedAt = now
		if err := s.HoldingRepo.Update(ctx, holding); err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
	} else if !errors.Is(err, domain.ErrNoSuchHolding) {
		return fmt.Errorf("failed to get holding: %w", err)
	}

	owner.Cash = owner.Cash.Add(match.CapitalAmount)
	owner.UpdatedAt = now
	if err := s.OwnerRepo.Update(ctx, owner); err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}

	location.AvailableFraction = location.AvailableFraction.Add(match.OwnPercentage)
	location.UpdatedAt = now
	if err := s.LocationRepo.Update(ctx, location); err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	return nil
}

// upsertHolding creates the (owner, location) holding on first purchase
// or accumulates into the existing one.
func (s *Service) upsertHolding(ctx context.Context, ownerID, locationID uuid.UUID, fraction, amount decimal.Decimal, now time.Time) error {
	holding, err := s.HoldingRepo.GetByOwnerAndLocation(ctx, ownerID, locationID)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSuchHolding) {
			return fmt.Errorf("failed to get holding: %w", err)
		}

		holding = &domain.Holding{
			ID:            uuid.New(),
			LocationID:    locationID,
			OwnerID:       ownerID,
			OwnPercentage: fraction,
			CapitalAmount: amount,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.HoldingRepo.Create(ctx, holding); err != nil {
			return fmt.Errorf("failed to create holding: %w", err)
		}
		return nil
	}

	holding.OwnPercentage = holding.OwnPercentage.Add(fraction)
	holding.CapitalAmount = holding.CapitalAmount.Add(amount)
	holding.UpdatedAt = now
	if err := s.HoldingRepo.Update(ctx, holding); err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	return nil
}
