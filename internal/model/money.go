package model

import "github.com/shopspring/decimal"

// FormatAmount renders a whole-unit amount the way balances are shown to
// clients, e.g. 50 -> "50.00".
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}
