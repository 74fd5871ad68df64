// Package money holds the VND arithmetic shared by checkout and the wallet.
// Amounts are whole dong; there is no minor unit.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineTotal multiplies a unit price by a quantity.
func LineTotal(unitPrice int64, quantity int) int64 {
	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).IntPart()
}

// ApplyFee deducts rate from amount and returns the net credit and the fee kept.
// The net amount is rounded down so the fee never undercharges.
func ApplyFee(amount int64, rate decimal.Decimal) (net, fee int64) {
	gross := decimal.NewFromInt(amount)
	netDec := gross.Mul(decimal.NewFromInt(1).Sub(rate)).Floor()
	net = netDec.IntPart()
	return net, amount - net
}

// PercentString renders a fee rate such as 0.2 as "20".
func PercentString(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}

// FormatVND groups digits with dots the way vi-VN locales print prices.
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
