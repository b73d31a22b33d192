// Package market holds the simulated exchange: the fixed set of listed stocks
// and the random price perturbation applied to them.
package market

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
	"simtrader/internal/models"
)

// DefaultVolatilityPercent is the maximum absolute price move per update.
const DefaultVolatilityPercent = 5.0

// Listing is the opening data for one stock.
type Listing struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// DefaultListings returns the opening market.
func DefaultListings() []Listing {
	return []Listing{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: decimal.RequireFromString("175.50")},
		{Symbol: "GOOGL", Name: "Google", Price: decimal.RequireFromString("140.25")},
		{Symbol: "MSFT", Name: "Microsoft", Price: decimal.RequireFromString("380.75")},
		{Symbol: "TSLA", Name: "Tesla", Price: decimal.RequireFromString("245.00")},
		{Symbol: "AMZN", Name: "Amazon", Price: decimal.RequireFromString("178.30")},
	}
}

// RandSource supplies uniformly distributed floats in [0, 1).
// *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded generator. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// PriceChange describes the effect of one update on one stock.
type PriceChange struct {
	Symbol  string
	Old     decimal.Decimal
	New     decimal.Decimal
	Percent decimal.Decimal
}

// Market owns every listed stock and is the single source of current prices.
type Market struct {
	stocks     map[string]*models.Stock
	order      []string
	volatility decimal.Decimal
}

// Option configures a Market.
type Option func(*Market)

// WithVolatility sets the maximum absolute percentage move per update.
func WithVolatility(percent float64) Option {
	return func(m *Market) {
		m.volatility = decimal.NewFromFloat(percent)
	}
}

// New creates a market from listings. Symbols must be unique.
func New(listings []Listing, opts ...Option) (*Market, error) {
	m := &Market{
		stocks:     make(map[string]*models.Stock, len(listings)),
		order:      make([]string, 0, len(listings)),
		volatility: decimal.NewFromFloat(DefaultVolatilityPercent),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, l := range listings {
		stock, err := models.NewStock(l.Symbol, l.Name, l.Price)
		if err != nil {
			return nil, apperrors.Wrapf(err, "listing %q", l.Symbol)
		}
		if _, exists := m.stocks[stock.Symbol()]; exists {
			return nil, apperrors.Wrapf(apperrors.ErrDuplicateSymbol, "listing %q", stock.Symbol())
		}
		m.stocks[stock.Symbol()] = stock
		m.order = append(m.order, stock.Symbol())
	}

	return m, nil
}

// Lookup returns the stock for symbol, ignoring case.
func (m *Market) Lookup(symbol string) (*models.Stock, bool) {
	s, ok := m.stocks[models.NormalizeSymbol(symbol)]
	return s, ok
}

// Stocks returns all stocks in listing order.
func (m *Market) Stocks() []*models.Stock {
	stocks := make([]*models.Stock, 0, len(m.order))
	for _, sym := range m.order {
		stocks = append(stocks, m.stocks[sym])
	}
	return stocks
}

// Prices returns a snapshot of current prices keyed by symbol.
func (m *Market) Prices() map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(m.stocks))
	for sym, s := range m.stocks {
		prices[sym] = s.Price()
	}
	return prices
}

// Len returns the number of listed stocks.
func (m *Market) Len() int {
	return len(m.order)
}

// UpdatePrices moves every price by an independent uniform draw in
// [-volatility, +volatility) percent. The stored price is rounded to
// models.PricePrecision digits and kept inside the volatility band, so it
// never reaches zero. Percent reports the move actually applied.
func (m *Market) UpdatePrices(src RandSource) []PriceChange {
	changes := make([]PriceChange, 0, len(m.order))
	span := m.volatility.Mul(decimal.NewFromInt(2))

	for _, sym := range m.order {
		stock := m.stocks[sym]
		pct := decimal.NewFromFloat(src.Float64()).Mul(span).Sub(m.volatility)

		old := stock.Price()
		stock.SetPrice(m.move(old, pct))

		changes = append(changes, PriceChange{
			Symbol:  sym,
			Old:     old,
			New:     stock.Price(),
			Percent: stock.Price().Sub(old).Div(old).Shift(2).Round(models.PricePrecision),
		})
	}
	return changes
}

// move applies pct to price and clamps the rounded result to the band
// [price*(1-v), price*(1+v)], never below models.MinPrice.
func (m *Market) move(price, pct decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	limit := m.volatility.Shift(-2)

	lo := price.Mul(one.Sub(limit)).RoundCeil(models.PricePrecision)
	if lo.LessThan(models.MinPrice) {
		lo = models.MinPrice
	}
	hi := price.Mul(one.Add(limit)).RoundFloor(models.PricePrecision)

	next := price.Mul(one.Add(pct.Shift(-2))).Round(models.PricePrecision)
	switch {
	case next.LessThan(lo):
		return lo
	case next.GreaterThan(hi):
		return hi
	}
	return next
}
