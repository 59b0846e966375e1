package domain

// FormState is the state of one power-up or power-down modal.
// It is owned by a single form instance and changed only through its methods.
type FormState struct {
	DisplayModal bool
	Amount       string
}

// OpenModal shows the modal
func (f *FormState) OpenModal() {
	f.DisplayModal = true
}

// CloseModal hides the modal. The modal is destroyed on close, so the amount starts empty next time.
func (f *FormState) CloseModal() {
	f.DisplayModal = false
	f.Amount = ""
}

// SetAmount commits raw as the current amount only if it is well-formed.
// Partially typed but malformed input (e.g. "1.2345" or "1,5") keeps the previous value.
// Returns true when raw was committed.
func (f *FormState) SetAmount(raw string) bool {
	if !IsAmountInput(raw) {
		return false
	}
	f.Amount = raw
	return true
}

// UseBalance fills the amount from a displayed balance such as "12.345 SP".
// An unavailable balance leaves the amount unchanged.
func (f *FormState) UseBalance(display string) bool {
	if display == "" || display == BalanceUnavailable {
		return false
	}
	value, err := ParseAsset(display)
	if err != nil || value.IsNegative() {
		return false
	}
	return f.SetAmount(value.String())
}
