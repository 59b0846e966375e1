package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormState_ModalLifecycle(t *testing.T) {
	var form FormState

	form.OpenModal()
	assert.True(t, form.DisplayModal)

	assert.True(t, form.SetAmount("12.5"))
	assert.Equal(t, "12.5", form.Amount)

	form.CloseModal()
	assert.False(t, form.DisplayModal)
	assert.Empty(t, form.Amount, "amount should reset when the modal closes")
}

func TestFormState_SetAmount(t *testing.T) {
	form := FormState{DisplayModal: true}

	// Partially typed values are committed while they match the pattern
	for _, keystroke := range []string{"1", "12", "12.", "12.3", "12.34", "12.345"} {
		assert.True(t, form.SetAmount(keystroke), keystroke)
		assert.Equal(t, keystroke, form.Amount)
	}

	// Malformed input keeps the last good value
	assert.False(t, form.SetAmount("12.3456"))
	assert.Equal(t, "12.345", form.Amount)

	assert.False(t, form.SetAmount("12,345"))
	assert.Equal(t, "12.345", form.Amount)

	// Clearing the field is allowed; submission reports EmptyAmount
	assert.True(t, form.SetAmount(""))
	assert.Equal(t, "", form.Amount)
}

func TestFormState_UseBalance(t *testing.T) {
	tests := []struct {
		name       string
		display    string
		wantOK     bool
		wantAmount string
	}{
		{name: "steem power display", display: "61.728 SP", wantOK: true, wantAmount: "61.728"},
		{name: "trailing zeros dropped", display: "5.000 STEEM", wantOK: true, wantAmount: "5"},
		{name: "unavailable", display: BalanceUnavailable, wantOK: false, wantAmount: "1"},
		{name: "empty", display: "", wantOK: false, wantAmount: "1"},
		{name: "too precise", display: "1.23456 VESTS", wantOK: false, wantAmount: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := FormState{DisplayModal: true, Amount: "1"}
			assert.Equal(t, tt.wantOK, form.UseBalance(tt.display))
			assert.Equal(t, tt.wantAmount, form.Amount)
		})
	}
}
