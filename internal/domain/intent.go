package domain

import (
	"github.com/google/uuid"
)

// ActionName is the chain operation a TransferIntent asks the signing service to sign
type ActionName string

const (
	ActionTransferToVesting ActionName = "transfer_to_vesting"
	ActionWithdrawVesting   ActionName = "withdraw_vesting"
)

// Intent parameter keys
const (
	ParamTo            = "to"
	ParamAmount        = "amount"
	ParamVestingShares = "vesting_shares"
	ParamMemo          = "memo"
)

// TransferIntent is a named action plus parameters destined for the external signing service.
// It is built fresh for each submission from already validated input and is not retained.
type TransferIntent struct {
	ID         uuid.UUID
	ActionName ActionName
	Parameters map[string]string
}

// BuildPowerUp creates a transfer_to_vesting intent: liquid STEEM becomes Steem Power of targetAccount.
// The memo key is present only when memo is non-empty.
func BuildPowerUp(targetAccount, amount, memo string) *TransferIntent {
	params := map[string]string{
		ParamTo:     targetAccount,
		ParamAmount: amount,
	}
	if memo != "" {
		params[ParamMemo] = memo
	}

	return &TransferIntent{
		ID:         uuid.New(),
		ActionName: ActionTransferToVesting,
		Parameters: params,
	}
}

// BuildPowerDown creates a withdraw_vesting intent that starts unlocking the given vesting amount.
// The memo key is present only when memo is non-empty.
func BuildPowerDown(amount, memo string) *TransferIntent {
	params := map[string]string{
		ParamVestingShares: amount,
	}
	if memo != "" {
		params[ParamMemo] = memo
	}

	return &TransferIntent{
		ID:         uuid.New(),
		ActionName: ActionWithdrawVesting,
		Parameters: params,
	}
}

// DispatchedIntent is an intent handed to the signing service and the URL that completes it
type DispatchedIntent struct {
	Intent  *TransferIntent
	SignURL string
}
