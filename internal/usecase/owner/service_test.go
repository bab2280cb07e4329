package owner

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/realstake/realstake-backend/internal/domain"
)

// MockOwnerRepository is a mock implementation of OwnerRepository for testing
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) GetByName(ctx context.Context, name string) (*domain.Owner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) List(ctx context.Context) ([]*domain.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteByLocation(ctx context.Context, locationID uuid.UUID) error {
	args := m.Called(ctx, locationID)
	return args.Error(0)
}

// MockHoldingRepository is a mock implementation of HoldingRepository for testing
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) GetByOwnerAndLocation(ctx context.Context, ownerID, locationID uuid.UUID) (*domain.Holding, error) {
	args := m.Called(ctx, ownerID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Holding, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.Holding, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockHoldingRepository) DeleteByLocation(ctx context.Context, locationID uuid.UUID) error {
	args := m.Called(ctx, locationID)
	return args.Error(0)
}

func newTestService() (*Service, *MockOwnerRepository, *MockTransactionRepository, *MockHoldingRepository) {
	ownerRepo := new(MockOwnerRepository)
	txRepo := new(MockTransactionRepository)
	holdingRepo := new(MockHoldingRepository)
	return NewService(&sync.Mutex{}, ownerRepo, txRepo, holdingRepo), ownerRepo, txRepo, holdingRepo
}

func TestCreateOwner_Success(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	ownerRepo.On("GetByName", ctx, "Alice").Return(nil, domain.ErrOwnerNotFound)
	ownerRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Owner) bool {
		return o.Name == "Alice" && o.Cash.IsZero() && o.ID != uuid.Nil
	})).Return(nil)

	owner, err := service.CreateOwner(ctx, "Alice")

	assert.NoError(t, err)
	assert.Equal(t, "Alice", owner.Name)
	assert.True(t, owner.Cash.IsZero())
	assert.Equal(t, owner.CreatedAt, owner.UpdatedAt)
	ownerRepo.AssertExpectations(t)
}

func TestCreateOwner_DuplicateName(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice"}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)

	owner, err := service.CreateOwner(ctx, "Alice")

	assert.ErrorIs(t, err, domain.ErrDuplicateOwner)
	assert.Nil(t, owner)
	ownerRepo.AssertNotCalled(t, "Create")
}

func TestTopUpCash_Success(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)
	ownerRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Owner) bool {
		return o.Cash.Equal(decimal.NewFromInt(150))
	})).Return(nil)

	owner, err := service.TopUpCash(ctx, "Alice", decimal.NewFromInt(50))

	assert.NoError(t, err)
	assert.True(t, owner.Cash.Equal(decimal.NewFromInt(150)))
	ownerRepo.AssertExpectations(t)
}

func TestTopUpCash_ZeroAmountAccepted(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)
	ownerRepo.On("Update", ctx, mock.Anything).Return(nil)

	owner, err := service.TopUpCash(ctx, "Alice", decimal.Zero)

	assert.NoError(t, err)
	assert.True(t, owner.Cash.Equal(decimal.NewFromInt(100)))
}

func TestTopUpCash_NegativeAmount(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)

	_, err := service.TopUpCash(ctx, "Alice", decimal.NewFromInt(-10))

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	ownerRepo.AssertNotCalled(t, "Update")
}

func TestTopUpCash_OwnerNotFound(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	ownerRepo.On("GetByName", ctx, "Ghost").Return(nil, domain.ErrOwnerNotFound)

	_, err := service.TopUpCash(ctx, "Ghost", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestWithdrawCash_Success(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)
	ownerRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Owner) bool {
		return o.Cash.Equal(decimal.NewFromInt(40))
	})).Return(nil)

	owner, err := service.WithdrawCash(ctx, "Alice", decimal.NewFromInt(60))

	assert.NoError(t, err)
	assert.True(t, owner.Cash.Equal(decimal.NewFromInt(40)))
	ownerRepo.AssertExpectations(t)
}

func TestWithdrawCash_ZeroAmount(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)

	_, err := service.WithdrawCash(ctx, "Alice", decimal.Zero)

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	ownerRepo.AssertNotCalled(t, "Update")
}

func TestWithdrawCash_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)

	_, err := service.WithdrawCash(ctx, "Alice", decimal.NewFromInt(101))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	ownerRepo.AssertNotCalled(t, "Update")
}

func TestWithdrawCash_ExactBalance(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, _, _ := newTestService()

	existing := &domain.Owner{ID: uuid.New(), Name: "Alice", Cash: decimal.NewFromInt(100)}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)
	ownerRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Owner) bool {
		return o.Cash.IsZero()
	})).Return(nil)

	owner, err := service.WithdrawCash(ctx, "Alice", decimal.NewFromInt(100))

	assert.NoError(t, err)
	assert.True(t, owner.Cash.IsZero())
}

func TestDeleteOwner_CascadesTransactionsAndHoldings(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, txRepo, holdingRepo := newTestService()

	ownerID := uuid.New()
	existing := &domain.Owner{ID: ownerID, Name: "Alice"}
	ownerRepo.On("GetByName", ctx, "Alice").Return(existing, nil)
	txRepo.On("DeleteByOwner", ctx, ownerID).Return(nil)
	holdingRepo.On("DeleteByOwner", ctx, ownerID).Return(nil)
	ownerRepo.On("Delete", ctx, ownerID).Return(nil)

	err := service.DeleteOwner(ctx, "Alice")

	assert.NoError(t, err)
	ownerRepo.AssertExpectations(t)
	txRepo.AssertExpectations(t)
	holdingRepo.AssertExpectations(t)
}

func TestDeleteOwner_NotFound(t *testing.T) {
	ctx := context.Background()
	service, ownerRepo, txRepo, holdingRepo := newTestService()

	ownerRepo.On("GetByName", ctx, "Ghost").Return(nil, domain.ErrOwnerNotFound)

	err := service.DeleteOwner(ctx, "Ghost")

	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
	txRepo.AssertNotCalled(t, "DeleteByOwner")
	holdingRepo.AssertNotCalled(t, "DeleteByOwner")
}
