package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	ceiling := decimal.RequireFromString("100.000")

	tests := []struct {
		name          string
		raw           string
		ceiling       decimal.Decimal
		authenticated bool
		wantKind      ErrorKind // empty means success
	}{
		{name: "empty input", raw: "", ceiling: ceiling, authenticated: true, wantKind: ErrorKindEmptyAmount},
		{name: "letters", raw: "abc", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "comma separator", raw: "99,999", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "four fractional digits", raw: "1.2345", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "negative sign", raw: "-1", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "two dots", raw: "1.2.3", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "leading space", raw: " 1", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "lone dot", raw: ".", ceiling: ceiling, authenticated: true, wantKind: ErrorKindBadFormat},
		{name: "zero", raw: "0", ceiling: ceiling, authenticated: true, wantKind: ErrorKindNonPositive},
		{name: "zero with decimals", raw: "0.000", ceiling: ceiling, authenticated: true, wantKind: ErrorKindNonPositive},
		{name: "zero with trailing dot", raw: "0.", ceiling: ceiling, authenticated: false, wantKind: ErrorKindNonPositive},
		{name: "over balance", raw: "150", ceiling: ceiling, authenticated: true, wantKind: ErrorKindInsufficientFunds},
		{name: "just over balance", raw: "100.001", ceiling: ceiling, authenticated: true, wantKind: ErrorKindInsufficientFunds},
		{name: "just under balance", raw: "99.999", ceiling: ceiling, authenticated: true},
		{name: "exact balance", raw: "100", ceiling: ceiling, authenticated: true},
		{name: "leading dot", raw: ".5", ceiling: ceiling, authenticated: true},
		{name: "trailing dot", raw: "5.", ceiling: ceiling, authenticated: true},
		{name: "unauthenticated over balance", raw: "150", ceiling: ceiling, authenticated: false},
		{name: "unauthenticated zero ceiling", raw: "1000000", ceiling: decimal.Zero, authenticated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.raw, tt.ceiling, tt.authenticated)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			vErr, ok := AsValidationError(err)
			require.True(t, ok, "error should be a ValidationError")
			assert.Equal(t, tt.wantKind, vErr.Kind)
			assert.Equal(t, FieldAmount, vErr.Field)
		})
	}
}

func TestValidateAmount_InsufficientFundsIffAboveCeiling(t *testing.T) {
	values := []string{"0.001", "1", "5.5", "99.999", "100", "100.001", "250", "12345.678"}
	ceilings := []string{"0", "0.001", "5.5", "100", "12345.678"}

	for _, v := range values {
		for _, c := range ceilings {
			ceiling := decimal.RequireFromString(c)
			value := decimal.RequireFromString(v)

			err := ValidateAmount(v, ceiling, true)
			if value.GreaterThan(ceiling) {
				assert.ErrorIs(t, err, ErrInsufficientFunds, "value %s ceiling %s", v, c)
			} else {
				assert.NoError(t, err, "value %s ceiling %s", v, c)
			}

			assert.NoError(t, ValidateAmount(v, ceiling, false), "unauthenticated value %s ceiling %s", v, c)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "12.345", want: "12.345"},
		{raw: ".5", want: "0.5"},
		{raw: "5.", want: "5"},
		{raw: "007", want: "7"},
		{raw: ".", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "1e3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestIsAmountInput(t *testing.T) {
	assert.True(t, IsAmountInput(""))
	assert.True(t, IsAmountInput("1"))
	assert.True(t, IsAmountInput("1."))
	assert.True(t, IsAmountInput("1.23"))
	assert.False(t, IsAmountInput("1.2345"))
	assert.False(t, IsAmountInput("1,2"))
	assert.False(t, IsAmountInput("abc"))
}
