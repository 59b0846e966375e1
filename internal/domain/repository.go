package domain

import (
	"context"
)

// AccountRepository is the read-only source of account balances
type AccountRepository interface {
	// GetAccount retrieves an account by name
	// Returns ErrAccountNotFound (wrapped) when the account does not exist
	GetAccount(ctx context.Context, name string) (*Account, error)
}

// GlobalPropertiesRepository is the read-only source of chain-wide vesting totals
type GlobalPropertiesRepository interface {
	// GetGlobalProperties retrieves the current vesting totals
	GetGlobalProperties(ctx context.Context) (*GlobalProperties, error)
}

// AccountLookup answers whether an account name exists.
// It is a single request with no retry.
type AccountLookup interface {
	AccountExists(ctx context.Context, name string) (bool, error)
}

// ActionDispatcher hands an intent to the external signing service.
// It returns the URL the caller opens to finish signing out of band; the outcome is never awaited.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, intent *TransferIntent) (string, error)
}
