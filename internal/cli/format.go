// Package cli provides the command-line interface for the trading simulator.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// maxMinorUnits is the largest amount, in cents, go-money can hold.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatCurrency formats amount in the given ISO currency with exactly two
// fraction digits, e.g. $1,039.00 or -$12.50.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	cents := amount.Round(2).Shift(2)
	if cents.Abs().LessThanOrEqual(maxMinorUnits) {
		return money.New(cents.IntPart(), currency).Display()
	}
	return formatWide(cents, currency)
}

// formatWide renders cents beyond the int64 range using the currency's
// go-money display rules.
func formatWide(cents decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}

	digits := cents.Abs().String()
	if len(digits) <= cur.Fraction {
		digits = strings.Repeat("0", cur.Fraction-len(digits)+1) + digits
	}
	whole, frac := digits, ""
	if cur.Fraction > 0 {
		whole, frac = digits[:len(digits)-cur.Fraction], digits[len(digits)-cur.Fraction:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	out := strings.Replace(cur.Template, "1", b.String(), 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if cents.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatPnL formats P&L with an explicit sign for gains.
func FormatPnL(pnl decimal.Decimal, currency string) string {
	formatted := FormatCurrency(pnl, currency)
	if pnl.Round(2).IsPositive() {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value decimal.Decimal) string {
	sign := ""
	if value.Round(2).IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s%%", sign, value.StringFixed(2))
}

// FormatQuantity formats a share count.
func FormatQuantity(qty int) string {
	return fmt.Sprintf("%d", qty)
}

// FormatDateTime formats a timestamp in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
