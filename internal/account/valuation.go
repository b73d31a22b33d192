package account

import (
	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
	"simtrader/internal/models"
)

// PriceLookup resolves a symbol to its live stock. *market.Market implements it.
type PriceLookup interface {
	Lookup(symbol string) (*models.Stock, bool)
}

// HoldingValue is one holding marked to the current price.
type HoldingValue struct {
	Symbol       string
	Quantity     int
	AvgBuyPrice  decimal.Decimal
	CurrentPrice decimal.Decimal
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	ProfitLoss   decimal.Decimal
}

// Valuation is the portfolio marked to market.
type Valuation struct {
	Username   string
	Cash       decimal.Decimal
	Holdings   []HoldingValue
	Invested   decimal.Decimal
	ProfitLoss decimal.Decimal
	TotalValue decimal.Decimal
}

// Valuation prices every holding through prices at call time. TotalValue is
// cash plus the current value of all holdings.
func (u *User) Valuation(prices PriceLookup) (*Valuation, error) {
	v := &Valuation{
		Username:   u.username,
		Cash:       u.balance,
		Holdings:   make([]HoldingValue, 0, len(u.portfolio)),
		Invested:   decimal.Zero,
		ProfitLoss: decimal.Zero,
		TotalValue: u.balance,
	}

	for _, item := range u.Holdings() {
		stock, ok := prices.Lookup(item.Symbol)
		if !ok {
			return nil, apperrors.Wrapf(apperrors.ErrUnknownSymbol, "valuing holding %s", item.Symbol)
		}
		price := stock.Price()
		hv := HoldingValue{
			Symbol:       item.Symbol,
			Quantity:     item.Quantity,
			AvgBuyPrice:  item.AvgBuyPrice,
			CurrentPrice: price,
			Invested:     item.Invested(),
			CurrentValue: item.CurrentValue(price),
			ProfitLoss:   item.ProfitLoss(price),
		}
		v.Holdings = append(v.Holdings, hv)
		v.Invested = v.Invested.Add(hv.Invested)
		v.ProfitLoss = v.ProfitLoss.Add(hv.ProfitLoss)
		v.TotalValue = v.TotalValue.Add(hv.CurrentValue)
	}

	return v, nil
}
