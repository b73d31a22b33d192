package models

import "github.com/shopspring/decimal"

// PortfolioItem is a holding of one symbol with average-cost tracking.
// It never references the Stock itself; the current price is supplied by the
// caller at valuation time.
type PortfolioItem struct {
	Symbol      string
	Quantity    int
	AvgBuyPrice decimal.Decimal
}

// NewPortfolioItem opens a holding from a first purchase.
func NewPortfolioItem(symbol string, quantity int, price decimal.Decimal) *PortfolioItem {
	return &PortfolioItem{
		Symbol:      symbol,
		Quantity:    quantity,
		AvgBuyPrice: price,
	}
}

// AddQuantity records a purchase of qty shares at price and recomputes the
// quantity-weighted average buy price.
func (p *PortfolioItem) AddQuantity(qty int, price decimal.Decimal) {
	// Total cost uses the pre-update quantity and average.
	totalCost := p.AvgBuyPrice.Mul(decimal.NewFromInt(int64(p.Quantity))).
		Add(price.Mul(decimal.NewFromInt(int64(qty))))
	p.Quantity += qty
	if p.Quantity > 0 {
		p.AvgBuyPrice = totalCost.Div(decimal.NewFromInt(int64(p.Quantity)))
	}
}

// ReduceQuantity removes qty shares. The average buy price is unchanged and
// the caller guarantees qty <= Quantity.
func (p *PortfolioItem) ReduceQuantity(qty int) {
	p.Quantity -= qty
}

// Invested returns avgBuyPrice × quantity.
func (p *PortfolioItem) Invested() decimal.Decimal {
	return p.AvgBuyPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// CurrentValue returns currentPrice × quantity.
func (p *PortfolioItem) CurrentValue(currentPrice decimal.Decimal) decimal.Decimal {
	return currentPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProfitLoss returns current value minus invested amount.
func (p *PortfolioItem) ProfitLoss(currentPrice decimal.Decimal) decimal.Decimal {
	return p.CurrentValue(currentPrice).Sub(p.Invested())
}
