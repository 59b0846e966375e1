package powerup

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/usecase/balance"
	"github.com/ulogs/wallet-backend/internal/usecase/username"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockActionDispatcher is a mock implementation of ActionDispatcher for testing
type MockActionDispatcher struct {
	mock.Mock
}

func (m *MockActionDispatcher) Dispatch(ctx context.Context, intent *domain.TransferIntent) (string, error) {
	args := m.Called(ctx, intent)
	return args.String(0), args.Error(1)
}

func newTestService(accountRepo domain.AccountRepository, dispatcher domain.ActionDispatcher) *PowerUpService {
	validations := validation.NewValidations(
		balance.NewBalanceService(accountRepo, nil),
		username.NewValidator(nil),
	)
	return NewPowerUpService(validations, dispatcher)
}

func TestSubmit_Success(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockDispatcher := new(MockActionDispatcher)
	service := newTestService(mockAccountRepo, mockDispatcher)

	// Setup: alice holds 100 liquid STEEM
	mockAccountRepo.On("GetAccount", ctx, "alice").Return(&domain.Account{
		Name:    "alice",
		Balance: decimal.RequireFromString("100.000"),
	}, nil)
	mockDispatcher.On("Dispatch", ctx, mock.MatchedBy(func(intent *domain.TransferIntent) bool {
		return intent.ActionName == domain.ActionTransferToVesting &&
			intent.Parameters[domain.ParamTo] == "alice" &&
			intent.Parameters[domain.ParamAmount] == "12.345"
	})).Return("https://steemconnect.com/sign/transfer_to_vesting?amount=12.345&to=alice", nil)

	// Execute
	result, err := service.Submit(ctx, SubmitInput{
		Session: validation.Session{Account: "alice", Authenticated: true},
		Amount:  "12.345",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"to": "alice", "amount": "12.345"}, result.Intent.Parameters)
	assert.Contains(t, result.SignURL, "/sign/transfer_to_vesting")

	mockAccountRepo.AssertExpectations(t)
	mockDispatcher.AssertExpectations(t)
}

func TestSubmit_InsufficientFundsIsNotDispatched(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockDispatcher := new(MockActionDispatcher)
	service := newTestService(mockAccountRepo, mockDispatcher)

	mockAccountRepo.On("GetAccount", ctx, "alice").Return(&domain.Account{
		Name:    "alice",
		Balance: decimal.RequireFromString("100.000"),
	}, nil)

	result, err := service.Submit(ctx, SubmitInput{
		Session: validation.Session{Account: "alice", Authenticated: true},
		Amount:  "150",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	mockDispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSubmit_BadFormatIsNotDispatched(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockDispatcher := new(MockActionDispatcher)
	service := newTestService(mockAccountRepo, mockDispatcher)

	_, err := service.Submit(ctx, SubmitInput{
		Session: validation.Session{Account: "alice", Authenticated: true},
		Amount:  "99,999",
	})

	assert.ErrorIs(t, err, domain.ErrBadFormat)
	mockAccountRepo.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	mockDispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSubmit_WithMemo(t *testing.T) {
	ctx := context.Background()
	mockDispatcher := new(MockActionDispatcher)
	service := newTestService(new(MockAccountRepository), mockDispatcher)

	mockDispatcher.On("Dispatch", ctx, mock.Anything).Return("https://example.test/sign", nil)

	// Unauthenticated sessions only get the format checks
	result, err := service.Submit(ctx, SubmitInput{
		Session: validation.Session{Account: "bob"},
		Amount:  "1",
		Memo:    "stake",
	})

	require.NoError(t, err)
	assert.Equal(t, "stake", result.Intent.Parameters[domain.ParamMemo])
}

func TestSubmit_DispatchError(t *testing.T) {
	ctx := context.Background()
	mockDispatcher := new(MockActionDispatcher)
	service := newTestService(new(MockAccountRepository), mockDispatcher)

	mockDispatcher.On("Dispatch", ctx, mock.Anything).Return("", errors.New("signing service not configured"))

	result, err := service.Submit(ctx, SubmitInput{Amount: "1"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to dispatch transfer_to_vesting")
}
