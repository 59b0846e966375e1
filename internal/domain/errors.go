package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a form field failed validation
type ErrorKind string

const (
	ErrorKindEmptyAmount       ErrorKind = "EMPTY_AMOUNT"
	ErrorKindBadFormat         ErrorKind = "BAD_FORMAT"
	ErrorKindNonPositive       ErrorKind = "NON_POSITIVE"
	ErrorKindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	ErrorKindTooShort          ErrorKind = "TOO_SHORT"
	ErrorKindTooLong           ErrorKind = "TOO_LONG"
	ErrorKindUserNotFound      ErrorKind = "USER_NOT_FOUND"
	ErrorKindDivisionUndefined ErrorKind = "DIVISION_UNDEFINED"
)

// Form field names used in validation errors
const (
	FieldAmount   = "amount"
	FieldUsername = "username"
	FieldBalance  = "balance"
)

// Sentinel errors, one per kind. A *ValidationError matches its sentinel with errors.Is.
var (
	ErrEmptyAmount       = errors.New("amount is required")
	ErrBadFormat         = errors.New("incorrect amount format")
	ErrNonPositive       = errors.New("amount has to be higher than 0")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTooShort          = errors.New("username is too short")
	ErrTooLong           = errors.New("username is too long")
	ErrUserNotFound      = errors.New("user not found")
	ErrDivisionUndefined = errors.New("vesting conversion undefined: total vesting shares is zero")
)

// ErrAccountNotFound is returned by account sources when the account does not exist
var ErrAccountNotFound = errors.New("account not found")

var sentinelByKind = map[ErrorKind]error{
	ErrorKindEmptyAmount:       ErrEmptyAmount,
	ErrorKindBadFormat:         ErrBadFormat,
	ErrorKindNonPositive:       ErrNonPositive,
	ErrorKindInsufficientFunds: ErrInsufficientFunds,
	ErrorKindTooShort:          ErrTooShort,
	ErrorKindTooLong:           ErrTooLong,
	ErrorKindUserNotFound:      ErrUserNotFound,
	ErrorKindDivisionUndefined: ErrDivisionUndefined,
}

// ValidationError is a user-facing message attached to a single form field.
// It is never fatal: callers render Message next to Field.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

// NewValidationError creates a ValidationError with the default message for its kind
func NewValidationError(kind ErrorKind, field string) *ValidationError {
	msg := "invalid value"
	if sentinel, ok := sentinelByKind[kind]; ok {
		msg = sentinel.Error()
	}
	return &ValidationError{Kind: kind, Field: field, Message: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, domain.ErrInsufficientFunds) match a ValidationError of that kind
func (e *ValidationError) Is(target error) bool {
	return sentinelByKind[e.Kind] == target
}

// AsValidationError extracts a *ValidationError from err, if there is one
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
