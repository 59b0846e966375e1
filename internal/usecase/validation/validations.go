package validation

import (
	"context"
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/usecase/balance"
	"github.com/ulogs/wallet-backend/internal/usecase/username"
)

// Session describes who is filling in a form
type Session struct {
	Account       string
	Authenticated bool
}

// Validations is the shared set of form validators injected into every transfer form.
// Each form receives the same instance instead of re-implementing the rules.
type Validations struct {
	BalanceService *balance.BalanceService
	Usernames      *username.Validator
}

// NewValidations creates a new Validations instance
func NewValidations(balanceService *balance.BalanceService, usernames *username.Validator) *Validations {
	return &Validations{
		BalanceService: balanceService,
		Usernames:      usernames,
	}
}

// AmountPattern returns the pattern every amount field uses to gate keystrokes
func (v *Validations) AmountPattern() *regexp.Regexp {
	return domain.AmountPattern
}

// ValidateSteemBalance validates an amount against the session's liquid STEEM balance
func (v *Validations) ValidateSteemBalance(ctx context.Context, session Session, raw string) error {
	return v.validateBalance(raw, session, func() (decimal.Decimal, error) {
		return v.BalanceService.LiquidBalance(ctx, session.Account)
	})
}

// ValidateSPBalance validates an amount against the session's Steem Power.
// When the conversion is undefined the amount cannot be checked and a
// DivisionUndefined error is reported on the amount field.
func (v *Validations) ValidateSPBalance(ctx context.Context, session Session, raw string) error {
	return v.validateBalance(raw, session, func() (decimal.Decimal, error) {
		sp, err := v.BalanceService.SteemPower(ctx, session.Account)
		if errors.Is(err, domain.ErrDivisionUndefined) {
			return decimal.Zero, &domain.ValidationError{
				Kind:    domain.ErrorKindDivisionUndefined,
				Field:   domain.FieldAmount,
				Message: "balance unavailable",
			}
		}
		return sp, err
	})
}

// ValidateUsername validates an optional account name field
func (v *Validations) ValidateUsername(ctx context.Context, name string) error {
	return v.Usernames.ValidateUsername(ctx, name)
}

// validateBalance runs the format checks first, then fetches the ceiling only
// for authenticated sessions; unauthenticated sessions have no known balance.
func (v *Validations) validateBalance(raw string, session Session, ceiling func() (decimal.Decimal, error)) error {
	if err := domain.ValidateAmount(raw, decimal.Zero, false); err != nil {
		return err
	}

	if !session.Authenticated {
		return nil
	}

	available, err := ceiling()
	if err != nil {
		return err
	}

	return domain.ValidateAmount(raw, available, true)
}
