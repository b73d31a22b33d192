// Package models provides domain models for the trading simulator.
package models

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
)

// TransactionKind represents the side of a completed trade.
type TransactionKind string

const (
	KindBuy  TransactionKind = "BUY"
	KindSell TransactionKind = "SELL"
)

// PricePrecision is the number of fractional digits a stored price may carry.
const PricePrecision = 4

// MinPrice is the smallest representable positive price.
var MinPrice = decimal.New(1, -PricePrecision)

// ValidatePrice checks that price is at least MinPrice and has no more than
// PricePrecision fractional digits.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return apperrors.Wrapf(apperrors.ErrInvalidPrice, "price must be positive, got %s", price)
	}
	if !price.Equal(price.Round(PricePrecision)) {
		return apperrors.Wrapf(apperrors.ErrInvalidPrice, "price %s has more than %d fractional digits", price, PricePrecision)
	}
	return nil
}

// Stock is a tradable instrument. Symbol and name are fixed at construction;
// the price is updated in place by the market.
type Stock struct {
	symbol string
	name   string
	price  decimal.Decimal
}

// NewStock creates a stock. The symbol is normalized to upper case.
func NewStock(symbol, name string, price decimal.Decimal) (*Stock, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidSymbol, "symbol cannot be empty")
	}
	if err := ValidatePrice(price); err != nil {
		return nil, apperrors.Wrap(err, symbol)
	}
	return &Stock{symbol: symbol, name: name, price: price}, nil
}

// Symbol returns the ticker symbol.
func (s *Stock) Symbol() string { return s.symbol }

// Name returns the company name.
func (s *Stock) Name() string { return s.name }

// Price returns the current price.
func (s *Stock) Price() decimal.Decimal { return s.price }

// SetPrice replaces the current price.
func (s *Stock) SetPrice(price decimal.Decimal) { s.price = price }

// NormalizeSymbol trims and upper-cases a user-entered symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
