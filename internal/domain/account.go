package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Account is the read-only view of a Steem account used by the wallet forms
type Account struct {
	Name          string
	Balance       decimal.Decimal // Liquid STEEM
	VestingShares decimal.Decimal // VESTS owned by the account
}

// GlobalProperties holds the chain-wide vesting totals
type GlobalProperties struct {
	TotalVestingShares    decimal.Decimal // VESTS
	TotalVestingFundSteem decimal.Decimal // STEEM backing all VESTS
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}
	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}
	if a.VestingShares.IsNegative() {
		return errors.New("account vesting shares cannot be negative")
	}
	return nil
}

// VestingSnapshot combines the account's shares with the chain totals
func (a *Account) VestingSnapshot(props *GlobalProperties) VestingSnapshot {
	return VestingSnapshot{
		UserVestingShares:       a.VestingShares,
		TotalVestingShares:      props.TotalVestingShares,
		TotalVestingFundBalance: props.TotalVestingFundSteem,
	}
}

// SteemPower returns the account's vesting shares expressed in STEEM
func (a *Account) SteemPower(props *GlobalProperties) (decimal.Decimal, error) {
	return VestingToLiquid(a.VestingSnapshot(props))
}
