package username

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ulogs/wallet-backend/internal/domain"
)

// Account name length bounds on the Steem chain
const (
	MinAccountLength = 3
	MaxAccountLength = 16
)

// Validator checks that an optional username field names an existing account
type Validator struct {
	Lookup domain.AccountLookup
}

// NewValidator creates a new Validator instance
func NewValidator(lookup domain.AccountLookup) *Validator {
	return &Validator{
		Lookup: lookup,
	}
}

// ValidateUsername validates an optional account name.
// Logic:
//  1. Empty name is valid and no lookup is made
//  2. Length must be within [MinAccountLength, MaxAccountLength]
//  3. A single lookup must find the account (no retry)
//
// Lookup failures are returned as plain errors, not as ValidationErrors.
func (v *Validator) ValidateUsername(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}

	length := utf8.RuneCountInString(name)
	if length < MinAccountLength {
		return &domain.ValidationError{
			Kind:    domain.ErrorKindTooShort,
			Field:   domain.FieldUsername,
			Message: fmt.Sprintf("Username %s is too short.", name),
		}
	}
	if length > MaxAccountLength {
		return &domain.ValidationError{
			Kind:    domain.ErrorKindTooLong,
			Field:   domain.FieldUsername,
			Message: fmt.Sprintf("Username %s is too long.", name),
		}
	}

	exists, err := v.Lookup.AccountExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up account %s: %w", name, err)
	}
	if !exists {
		return &domain.ValidationError{
			Kind:    domain.ErrorKindUserNotFound,
			Field:   domain.FieldUsername,
			Message: fmt.Sprintf("Couldn't find user with name %s.", name),
		}
	}

	return nil
}
