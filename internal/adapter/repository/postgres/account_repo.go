package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ulogs/wallet-backend/internal/domain"
)

// AccountRepository implements domain.AccountRepository and domain.AccountLookup
// over the indexer's accounts table
type AccountRepository struct {
	db *DB
}

var (
	_ domain.AccountRepository = (*AccountRepository)(nil)
	_ domain.AccountLookup     = (*AccountRepository)(nil)
)

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccount retrieves an account by name
func (r *AccountRepository) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	query := `
		SELECT name, balance, vesting_shares
		FROM accounts
		WHERE name = $1
	`

	var account domain.Account
	var balanceStr, vestingSharesStr string

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&account.Name,
		&balanceStr,
		&vestingSharesStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", name, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to get account by name: %w", err)
	}

	// Parse balance (DECIMAL)
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	// Parse vesting_shares (DECIMAL)
	vestingShares, err := decimal.NewFromString(vestingSharesStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vesting_shares: %w", err)
	}
	account.VestingShares = vestingShares

	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("invalid account row %s: %w", name, err)
	}

	return &account, nil
}

// AccountExists reports whether an account with this name is indexed
func (r *AccountRepository) AccountExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}
