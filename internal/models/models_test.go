package models

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "simtrader/internal/errors"
)

func TestNewStock(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		price   decimal.Decimal
		wantSym string
		wantErr error
	}{
		{"normalizes symbol", " aapl ", decimal.RequireFromString("175.50"), "AAPL", nil},
		{"empty symbol", "  ", decimal.NewFromInt(1), "", apperrors.ErrInvalidSymbol},
		{"zero price", "MSFT", decimal.Zero, "", apperrors.ErrInvalidPrice},
		{"negative price", "MSFT", decimal.NewFromInt(-3), "", apperrors.ErrInvalidPrice},
		{"smallest price", "DUST", decimal.RequireFromString("0.0001"), "DUST", nil},
		{"below smallest price", "DUST", decimal.RequireFromString("0.00004"), "", apperrors.ErrInvalidPrice},
		{"too many fraction digits", "DUST", decimal.RequireFromString("1.00005"), "", apperrors.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStock(tt.symbol, "Name", tt.price)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSym, s.Symbol())
			assert.True(t, s.Price().Equal(tt.price))
		})
	}
}

func TestStockSetPrice(t *testing.T) {
	s, err := NewStock("TSLA", "Tesla", decimal.NewFromInt(245))
	require.NoError(t, err)

	s.SetPrice(decimal.RequireFromString("250.10"))
	assert.Equal(t, "250.1", s.Price().String())
	assert.Equal(t, "Tesla", s.Name())
}

func TestTransactionTotal(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tx := NewTransaction(KindBuy, "AAPL", 2, decimal.RequireFromString("175.50"), at)

	assert.Equal(t, "351", tx.Total().String())
	assert.Equal(t, at, tx.Timestamp)
	assert.NotEqual(t, tx.ID, NewTransaction(KindBuy, "AAPL", 2, decimal.NewFromInt(1), at).ID)
}

func TestPortfolioItemAddQuantity(t *testing.T) {
	item := NewPortfolioItem("AAPL", 2, decimal.RequireFromString("175.50"))
	item.AddQuantity(1, decimal.RequireFromString("180.00"))

	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.AvgBuyPrice.Equal(decimal.NewFromInt(177)), "avg = %s", item.AvgBuyPrice)
}

func TestPortfolioItemValuation(t *testing.T) {
	item := NewPortfolioItem("MSFT", 4, decimal.NewFromInt(100))
	price := decimal.RequireFromString("110.25")

	assert.True(t, item.Invested().Equal(decimal.NewFromInt(400)))
	assert.True(t, item.CurrentValue(price).Equal(decimal.NewFromInt(441)))
	assert.True(t, item.ProfitLoss(price).Equal(decimal.NewFromInt(41)))
	assert.True(t, item.ProfitLoss(decimal.NewFromInt(90)).Equal(decimal.NewFromInt(-40)))
}

// Property: two buys of the same symbol yield the quantity-weighted average
// and the summed quantity; a partial sell never moves the average.
func TestProperty_AverageCost(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	priceGen := gen.Int64Range(1, 1_000_000).Map(func(cents int64) decimal.Decimal {
		return decimal.New(cents, -2)
	})

	properties.Property("weighted average after two buys", prop.ForAll(
		func(qty1 int, price1 decimal.Decimal, qty2 int, price2 decimal.Decimal) bool {
			item := NewPortfolioItem("AAPL", qty1, price1)
			item.AddQuantity(qty2, price2)

			q1 := decimal.NewFromInt(int64(qty1))
			q2 := decimal.NewFromInt(int64(qty2))
			want := q1.Mul(price1).Add(q2.Mul(price2)).Div(q1.Add(q2))

			return item.Quantity == qty1+qty2 && item.AvgBuyPrice.Equal(want)
		},
		gen.IntRange(1, 10_000),
		priceGen,
		gen.IntRange(1, 10_000),
		priceGen,
	))

	properties.Property("reduce keeps the average", prop.ForAll(
		func(qty int, sell int, price decimal.Decimal) bool {
			if sell > qty {
				sell = qty
			}
			item := NewPortfolioItem("AAPL", qty, price)
			item.ReduceQuantity(sell)
			return item.Quantity == qty-sell && item.AvgBuyPrice.Equal(price)
		},
		gen.IntRange(1, 10_000),
		gen.IntRange(0, 10_000),
		priceGen,
	))

	properties.TestingRun(t)
}
