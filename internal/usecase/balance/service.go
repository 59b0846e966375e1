package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ulogs/wallet-backend/internal/domain"
)

// Balances is the wallet view of one account
type Balances struct {
	Account       string
	Balance       decimal.Decimal // Liquid STEEM
	VestingShares decimal.Decimal // VESTS
	SteemPower    decimal.Decimal // VESTS expressed in STEEM, zero when SteemPowerErr is set
	SteemPowerErr error           // DivisionUndefined when the chain totals cannot convert
}

// BalanceDisplay renders the liquid balance, e.g. "12.000 STEEM"
func (b *Balances) BalanceDisplay() string {
	return domain.FormatBalance(b.Balance, nil, domain.SymbolSteem)
}

// SteemPowerDisplay renders the Steem Power figure or "unavailable"
func (b *Balances) SteemPowerDisplay() string {
	return domain.FormatBalance(b.SteemPower, b.SteemPowerErr, domain.SymbolSteemPower)
}

// BalanceService reads balances from the external read-only state
type BalanceService struct {
	AccountRepo domain.AccountRepository
	PropsRepo   domain.GlobalPropertiesRepository
}

// NewBalanceService creates a new BalanceService instance
func NewBalanceService(accountRepo domain.AccountRepository, propsRepo domain.GlobalPropertiesRepository) *BalanceService {
	return &BalanceService{
		AccountRepo: accountRepo,
		PropsRepo:   propsRepo,
	}
}

// LiquidBalance returns the account's liquid STEEM balance
func (s *BalanceService) LiquidBalance(ctx context.Context, account string) (decimal.Decimal, error) {
	acc, err := s.AccountRepo.GetAccount(ctx, account)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get account %s: %w", account, err)
	}
	return acc.Balance, nil
}

// SteemPower returns the account's vesting shares converted to STEEM.
// A DivisionUndefined ValidationError is returned as-is when the totals cannot convert.
func (s *BalanceService) SteemPower(ctx context.Context, account string) (decimal.Decimal, error) {
	acc, err := s.AccountRepo.GetAccount(ctx, account)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get account %s: %w", account, err)
	}

	props, err := s.PropsRepo.GetGlobalProperties(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get global properties: %w", err)
	}

	return acc.SteemPower(props)
}

// GetBalances collects the wallet view of an account.
// Logic:
//   - Balance and VestingShares come straight from the account
//   - SteemPower uses the pro-rata conversion against the chain totals
//   - An undefined conversion is kept in SteemPowerErr so the view still renders
func (s *BalanceService) GetBalances(ctx context.Context, account string) (*Balances, error) {
	acc, err := s.AccountRepo.GetAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", account, err)
	}

	props, err := s.PropsRepo.GetGlobalProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get global properties: %w", err)
	}

	sp, spErr := acc.SteemPower(props)

	return &Balances{
		Account:       acc.Name,
		Balance:       acc.Balance,
		VestingShares: acc.VestingShares,
		SteemPower:    sp,
		SteemPowerErr: spErr,
	}, nil
}
