package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPattern accepts an optional integer part, an optional dot and at most 3 fractional digits.
// Only "." is a decimal separator.
var AmountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]{0,3}$`)

// AmountPrecision is the number of fractional digits the chain accepts for STEEM and SP amounts
const AmountPrecision = 3

// IsAmountInput reports whether raw is a well-formed (possibly partially typed) amount
func IsAmountInput(raw string) bool {
	return AmountPattern.MatchString(raw)
}

// ParseAmount converts a well-formed amount string into a decimal.
// Forms like ".5" and "5." are accepted; a lone "." carries no digits and is rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if !IsAmountInput(raw) {
		return decimal.Zero, NewValidationError(ErrorKindBadFormat, FieldAmount)
	}

	intPart, fracPart, _ := strings.Cut(raw, ".")
	if intPart == "" && fracPart == "" {
		return decimal.Zero, NewValidationError(ErrorKindBadFormat, FieldAmount)
	}
	if intPart == "" {
		intPart = "0"
	}

	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, NewValidationError(ErrorKindBadFormat, FieldAmount)
	}
	return value, nil
}

// ValidateAmount checks a user-entered amount against format rules and an available-balance ceiling.
// Rules, in order:
//  1. Empty input is rejected (EmptyAmount)
//  2. Input must match AmountPattern (BadFormat)
//  3. The parsed value must be greater than zero (NonPositive)
//  4. When authenticated, a non-zero value must not exceed the ceiling (InsufficientFunds)
//
// Unauthenticated sessions have no authoritative balance, so only rules 1-3 apply.
// The function is pure: keystroke gating and the final submit check share it.
func ValidateAmount(raw string, ceiling decimal.Decimal, authenticated bool) error {
	if raw == "" {
		return NewValidationError(ErrorKindEmptyAmount, FieldAmount)
	}

	value, err := ParseAmount(raw)
	if err != nil {
		return err
	}

	if value.LessThanOrEqual(decimal.Zero) {
		return NewValidationError(ErrorKindNonPositive, FieldAmount)
	}

	if authenticated && !value.IsZero() && value.GreaterThan(ceiling) {
		return NewValidationError(ErrorKindInsufficientFunds, FieldAmount)
	}

	return nil
}
