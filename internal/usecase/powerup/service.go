package powerup

import (
	"context"
	"fmt"

	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// SubmitInput represents a submitted Power Up form
type SubmitInput struct {
	Session validation.Session
	Amount  string
	Memo    string // Optional
}

// PowerUpService turns liquid STEEM into Steem Power for the session account
type PowerUpService struct {
	Validations *validation.Validations
	Dispatcher  domain.ActionDispatcher
}

// NewPowerUpService creates a new PowerUpService instance
func NewPowerUpService(validations *validation.Validations, dispatcher domain.ActionDispatcher) *PowerUpService {
	return &PowerUpService{
		Validations: validations,
		Dispatcher:  dispatcher,
	}
}

// Submit validates the form and dispatches a transfer_to_vesting intent
// Logic:
//  1. Validate the amount against the liquid STEEM balance
//  2. Build the intent (to = session account)
//  3. Hand it to the dispatcher and return the signing URL
//
// Validation errors are returned unchanged and nothing is dispatched.
func (s *PowerUpService) Submit(ctx context.Context, input SubmitInput) (*domain.DispatchedIntent, error) {
	// 1. Validate
	if err := s.Validations.ValidateSteemBalance(ctx, input.Session, input.Amount); err != nil {
		return nil, err
	}

	// 2. Build intent
	intent := domain.BuildPowerUp(input.Session.Account, input.Amount, input.Memo)

	// 3. Dispatch
	signURL, err := s.Dispatcher.Dispatch(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch %s: %w", intent.ActionName, err)
	}

	return &domain.DispatchedIntent{
		Intent:  intent,
		SignURL: signURL,
	}, nil
}
