package powerdown

import (
	"context"
	"fmt"

	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// SubmitInput represents a submitted Power Down form
type SubmitInput struct {
	Session validation.Session
	Amount  string // Steem Power to unlock
	Memo    string // Optional
}

// PowerDownService starts unlocking Steem Power back into liquid STEEM.
// The chain pays it out in weekly installments over 13 weeks.
type PowerDownService struct {
	Validations *validation.Validations
	Dispatcher  domain.ActionDispatcher
}

// NewPowerDownService creates a new PowerDownService instance
func NewPowerDownService(validations *validation.Validations, dispatcher domain.ActionDispatcher) *PowerDownService {
	return &PowerDownService{
		Validations: validations,
		Dispatcher:  dispatcher,
	}
}

// Submit validates the form against the Steem Power balance and dispatches a withdraw_vesting intent.
// Validation errors are returned unchanged and nothing is dispatched.
func (s *PowerDownService) Submit(ctx context.Context, input SubmitInput) (*domain.DispatchedIntent, error) {
	if err := s.Validations.ValidateSPBalance(ctx, input.Session, input.Amount); err != nil {
		return nil, err
	}

	intent := domain.BuildPowerDown(input.Amount, input.Memo)

	signURL, err := s.Dispatcher.Dispatch(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch %s: %w", intent.ActionName, err)
	}

	return &domain.DispatchedIntent{
		Intent:  intent,
		SignURL: signURL,
	}, nil
}
