package reporting

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realstake/realstake-backend/internal/domain"
)

// Service formats the four collections into human-readable text reports.
// Reports are purely derived; nothing here mutates the store. Reads take
// the shared ledger lock so each report sees a consistent snapshot.
type Service struct {
	Ledger          *sync.Mutex
	OwnerRepo       domain.OwnerRepository
	LocationRepo    domain.LocationRepository
	TransactionRepo domain.TransactionRepository
	HoldingRepo     domain.HoldingRepository
}

// NewService creates a new reporting Service instance
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

const reportRule = "----------------------------------------------------"

// ListOwners returns a summary line per owner
func (s *Service) ListOwners(ctx context.Context) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owners, err := s.OwnerRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list owners: %w", err)
	}

	lines := []string{
		"------------------ All Owner Summaries ------------------",
		"Name - Cash",
	}
	for _, o := range owners {
		lines = append(lines, fmt.Sprintf("%s - $%s", o.Name, o.Cash.String()))
	}
	lines = append(lines, reportRule)

	return strings.Join(lines, "\n"), nil
}

// ListLocations returns a summary line per location
func (s *Service) ListLocations(ctx context.Context) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	locations, err := s.LocationRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list locations: %w", err)
	}

	lines := []string{
		"------------------ All Location Summaries ------------------",
		"Name - Price - Availability",
	}
	for _, l := range locations {
		lines = append(lines, fmt.Sprintf("%s - $%s - %s%%", l.Name, l.Price.String(), percent(l.AvailableFraction)))
	}
	lines = append(lines, reportRule)

	return strings.Join(lines, "\n"), nil
}

// ListTransactions returns a summary line per transaction
func (s *Service) ListTransactions(ctx context.Context) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	txs, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list transactions: %w", err)
	}

	lines := []string{
		"------------------ All Transaction Summaries ------------------",
		"Owner - Name - Location - Location Name",
	}
	for _, tx := range txs {
		lines = append(lines, fmt.Sprintf("%s - %s - %s - %s",
			tx.OwnerID, s.ownerName(ctx, tx.OwnerID), tx.LocationID, s.locationName(ctx, tx.LocationID)))
	}
	lines = append(lines, reportRule)

	return strings.Join(lines, "\n"), nil
}

// ListHoldings returns a summary line per holding
func (s *Service) ListHoldings(ctx context.Context) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	holdings, err := s.HoldingRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list holdings: %w", err)
	}

	lines := []string{
		"------------------ All Owner Location Summaries ------------------",
		"Owner - Owner Name - Location - Location name - amount - percentage",
	}
	for _, h := range holdings {
		lines = append(lines, fmt.Sprintf("%s - %s - %s - %s - $%s - %s%%",
			h.OwnerID, s.ownerName(ctx, h.OwnerID), h.LocationID, s.locationName(ctx, h.LocationID),
			h.CapitalAmount.String(), percent(h.OwnPercentage)))
	}
	lines = append(lines, reportRule)

	return strings.Join(lines, "\n"), nil
}

// OwnerDetails returns the full record of one owner
func (s *Service) OwnerDetails(ctx context.Context, name string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}

	lines := []string{
		"------------------ Owner Details ------------------",
		fmt.Sprintf("Owner ID:    %s", owner.ID),
		fmt.Sprintf("Owner Name:  %s", owner.Name),
		fmt.Sprintf("Owner Cash:  $%s", owner.Cash.String()),
		fmt.Sprintf("Created At:  %s", owner.CreatedAt),
		fmt.Sprintf("Updated At:  %s", owner.UpdatedAt),
		reportRule,
	}

	return strings.Join(lines, "\n"), nil
}

// LocationDetails returns the full record of one location
func (s *Service) LocationDetails(ctx context.Context, name string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	location, err := s.LocationRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}

	lines := []string{
		"------------------ Location Details ------------------",
		fmt.Sprintf("Location ID:          %s", location.ID),
		fmt.Sprintf("Location Name:        %s", location.Name),
		fmt.Sprintf("Location Price:       $%s", location.Price.String()),
		fmt.Sprintf("Available Percentage: %s%%", percent(location.AvailableFraction)),
		fmt.Sprintf("Created At:           %s", location.CreatedAt),
		fmt.Sprintf("Updated At:           %s", location.UpdatedAt),
		reportRule,
	}

	return strings.Join(lines, "\n"), nil
}

// TransactionsByOwner returns detail blocks for all transactions of an owner
func (s *Service) TransactionsByOwner(ctx context.Context, ownerName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return "", err
	}

	txs, err := s.TransactionRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list transactions: %w", err)
	}

	return s.transactionBlocks(ctx, txs), nil
}

// TransactionsByLocation returns detail blocks for all transactions on a location
func (s *Service) TransactionsByLocation(ctx context.Context, locationName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return "", err
	}

	txs, err := s.TransactionRepo.ListByLocation(ctx, location.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list transactions: %w", err)
	}

	return s.transactionBlocks(ctx, txs), nil
}

// TransactionsByOwnerAndLocation returns detail blocks for all transactions
// of one owner on one location
func (s *Service) TransactionsByOwnerAndLocation(ctx context.Context, ownerName, locationName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return "", err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return "", err
	}

	txs, err := s.TransactionRepo.ListByOwnerAndLocation(ctx, owner.ID, location.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list transactions: %w", err)
	}

	return s.transactionBlocks(ctx, txs), nil
}

// HoldingsByOwner returns detail blocks for all holdings of an owner
func (s *Service) HoldingsByOwner(ctx context.Context, ownerName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return "", err
	}

	holdings, err := s.HoldingRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list holdings: %w", err)
	}

	return s.holdingBlocks(ctx, holdings), nil
}

// HoldingsByLocation returns detail blocks for all holdings on a location
func (s *Service) HoldingsByLocation(ctx context.Context, locationName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return "", err
	}

	holdings, err := s.HoldingRepo.ListByLocation(ctx, location.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list holdings: %w", err)
	}

	return s.holdingBlocks(ctx, holdings), nil
}

// HoldingsByOwnerAndLocation returns the detail block for one owner's
// holding on one location, if any
func (s *Service) HoldingsByOwnerAndLocation(ctx context.Context, ownerName, locationName string) (string, error) {
	s.Ledger.Lock()
	defer s.Ledger.Unlock()

	owner, err := s.OwnerRepo.GetByName(ctx, ownerName)
	if err != nil {
		return "", err
	}

	location, err := s.LocationRepo.GetByName(ctx, locationName)
	if err != nil {
		return "", err
	}

	holdings, err := s.HoldingRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list holdings: %w", err)
	}

	matched := make([]*domain.Holding, 0, 1)
	for _, h := range holdings {
		if h.LocationID == location.ID {
			matched = append(matched, h)
		}
	}

	return s.holdingBlocks(ctx, matched), nil
}

func (s *Service) transactionBlocks(ctx context.Context, txs []*domain.Transaction) string {
	var lines []string
	for _, tx := range txs {
		lines = append(lines,
			"------------------ Transaction Details ------------------",
			fmt.Sprintf("Transaction ID: %s", tx.ID),
			fmt.Sprintf("Location: %s", tx.LocationID),
			fmt.Sprintf("Location Name: %s", s.locationName(ctx, tx.LocationID)),
			fmt.Sprintf("Owner: %s", tx.OwnerID),
			fmt.Sprintf("Owner Name: %s", s.ownerName(ctx, tx.OwnerID)),
			fmt.Sprintf("Owner Percentage: %s%%", percent(tx.OwnPercentage)),
			fmt.Sprintf("Owner Capital: $%s", tx.CapitalAmount.String()),
			fmt.Sprintf("Created At: %s", tx.CreatedAt),
			fmt.Sprintf("Updated At: %s", tx.UpdatedAt),
			reportRule,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (s *Service) holdingBlocks(ctx context.Context, holdings []*domain.Holding) string {
	var lines []string
	for _, h := range holdings {
		lines = append(lines,
			"------------------ Owner Location Details ------------------",
			fmt.Sprintf("OwnerLocation ID: %s", h.ID),
			fmt.Sprintf("Location: %s", h.LocationID),
			fmt.Sprintf("Location Name: %s", s.locationName(ctx, h.LocationID)),
			fmt.Sprintf("Owner: %s", h.OwnerID),
			fmt.Sprintf("Owner Name: %s", s.ownerName(ctx, h.OwnerID)),
			fmt.Sprintf("Owner Percentage: %s%%", percent(h.OwnPercentage)),
			fmt.Sprintf("Owner Capital: $%s", h.CapitalAmount.String()),
			fmt.Sprintf("Created At: %s", h.CreatedAt),
			fmt.Sprintf("Updated At: %s", h.UpdatedAt),
			reportRule,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// ownerName resolves an owner ID to its name. Deleted owners may leave
// dangling references behind; those render as a dash.
func (s *Service) ownerName(ctx context.Context, id uuid.UUID) string {
	owner, err := s.OwnerRepo.GetByID(ctx, id)
	if err != nil {
		return "-"
	}
	return owner.Name
}

func (s *Service) locationName(ctx context.Context, id uuid.UUID) string {
	location, err := s.LocationRepo.GetByID(ctx, id)
	if err != nil {
		return "-"
	}
	return location.Name
}

// percent renders a fraction as a percentage value without the sign,
// e.g. 0.4 -> "40".
func percent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).String()
}
