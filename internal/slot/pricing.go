package slot

import (
	"fmt"
	"math"

	"slot-ledger/internal/model"
)

// TotalCost is the entry fee charged for pickCount positions.
func TotalCost(entryFee int64, pickCount int) int64 {
	return entryFee * int64(pickCount)
}

// CheckedCost is TotalCost with overflow rejected. No wallet can hold more
// than math.MaxInt64, so an overflowing cost is reported as insufficient funds.
func CheckedCost(entryFee int64, pickCount int) (int64, error) {
	if entryFee < 0 || pickCount < 0 {
		return 0, fmt.Errorf("%w: entry fee %d for %d positions", model.ErrInvalidRequest, entryFee, pickCount)
	}
	if pickCount > 0 && entryFee > math.MaxInt64/int64(pickCount) {
		return 0, fmt.Errorf("%w: entry fee %d for %d positions overflows", model.ErrInsufficientFunds, entryFee, pickCount)
	}
	return TotalCost(entryFee, pickCount), nil
}

// SplitDebit spreads amount over the account's sub-balances: deposited money
// first, then bonus, then winnings. The account must hold at least amount in
// total.
func SplitDebit(account *model.Account, amount int64) (model.Debit, error) {
	if amount < 0 {
		return model.Debit{}, fmt.Errorf("%w: negative debit %d", model.ErrInvalidRequest, amount)
	}
	if account.WalletBalance < amount {
		return model.Debit{}, fmt.Errorf("%w: need %d, have %d", model.ErrInsufficientFunds, amount, account.WalletBalance)
	}

	var d model.Debit
	remaining := amount

	d.Deposited = take(account.DepositedBalance, &remaining)
	d.Bonus = take(account.BonusBalance, &remaining)
	d.Winning = take(account.WinningBalance, &remaining)

	if remaining > 0 {
		// wallet balance disagrees with its parts
		return model.Debit{}, fmt.Errorf("%w: sub-balances short by %d", model.ErrInsufficientFunds, remaining)
	}
	return d, nil
}

func take(available int64, remaining *int64) int64 {
	if available <= 0 || *remaining == 0 {
		return 0
	}
	n := min(available, *remaining)
	*remaining -= n
	return n
}
