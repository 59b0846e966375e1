package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset symbols used by the Steem chain
const (
	SymbolSteem        = "STEEM"
	SymbolSteemPower   = "SP"
	SymbolVests        = "VESTS"
	BalanceUnavailable = "unavailable"
)

// VestingSnapshot is the data needed to express an account's vesting shares in liquid units.
// TotalVestingShares must be positive whenever UserVestingShares is.
type VestingSnapshot struct {
	UserVestingShares       decimal.Decimal
	TotalVestingShares      decimal.Decimal
	TotalVestingFundBalance decimal.Decimal
}

// VestingToLiquid returns the pro-rata share of the vesting fund owned by the user:
//
//	liquid = userVestingShares * totalVestingFundBalance / totalVestingShares
//
// A zero (or negative) total, or negative inputs, yield DivisionUndefined instead of a number.
func VestingToLiquid(snapshot VestingSnapshot) (decimal.Decimal, error) {
	if !snapshot.TotalVestingShares.IsPositive() {
		return decimal.Zero, NewValidationError(ErrorKindDivisionUndefined, FieldBalance)
	}
	if snapshot.UserVestingShares.IsNegative() || snapshot.TotalVestingFundBalance.IsNegative() {
		return decimal.Zero, NewValidationError(ErrorKindDivisionUndefined, FieldBalance)
	}

	return snapshot.UserVestingShares.
		Mul(snapshot.TotalVestingFundBalance).
		Div(snapshot.TotalVestingShares), nil
}

// ErrInvalidAsset is returned for chain asset strings without a numeric amount.
// It describes bad source data, not user input, so it is not a ValidationError.
var ErrInvalidAsset = errors.New("invalid asset")

var assetNumberPrefix = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)`)

// ParseAsset reads the numeric part of a chain asset string such as "1234.567890 VESTS".
// The symbol is ignored. An empty string parses as zero.
func ParseAsset(asset string) (decimal.Decimal, error) {
	asset = strings.TrimSpace(asset)
	if asset == "" {
		return decimal.Zero, nil
	}

	number := assetNumberPrefix.FindString(asset)
	if number == "" {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAsset, asset)
	}
	number = strings.TrimSuffix(number, ".")

	value, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrInvalidAsset, asset, err)
	}
	return value, nil
}

// FormatBalance renders a balance figure with chain precision, e.g. "12.345 SP".
// When the figure could not be computed it renders BalanceUnavailable, so that
// an undefined conversion never reaches the UI as a number.
func FormatBalance(amount decimal.Decimal, err error, symbol string) string {
	if err != nil {
		return BalanceUnavailable
	}
	out := amount.StringFixed(AmountPrecision)
	if symbol != "" {
		out += " " + symbol
	}
	return out
}
