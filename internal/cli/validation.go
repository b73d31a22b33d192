package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
)

// ParseQuantity parses a whole number of shares. Zero and negative values
// parse successfully; rejecting them is the trade flow's job.
func ParseQuantity(text string) (int, error) {
	text = strings.TrimSpace(text)
	qty, err := strconv.Atoi(text)
	if err != nil {
		return 0, apperrors.NewValidationError("quantity", text, "must be a whole number")
	}
	return qty, nil
}

// msgAmountTooLarge marks balances beyond what can be displayed in cents.
const msgAmountTooLarge = "exceeds the largest supported amount"

// ParseBalance parses a non-negative amount. A leading currency sign and
// thousands separators are accepted.
func ParseBalance(text string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(text)
	cleaned := strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || cleaned == "" {
		return decimal.Zero, apperrors.NewValidationError("balance", raw, "must be a number")
	}
	if amount.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("balance", raw, "cannot be negative")
	}
	if amount.Round(2).Shift(2).GreaterThan(maxMinorUnits) {
		return decimal.Zero, apperrors.NewValidationError("balance", raw, msgAmountTooLarge)
	}
	return amount, nil
}

// ParseMenuChoice parses a main menu selection.
func ParseMenuChoice(text string) (MenuChoice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < int(MenuViewMarket) || n > int(MenuExit) {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidMenuChoice, "%q", strings.TrimSpace(text))
	}
	return MenuChoice(n), nil
}

// IsAffirmative reports whether a confirmation answer means yes.
func IsAffirmative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y":
		return true
	}
	return false
}
