package cli

import (
	"github.com/shopspring/decimal"

	"simtrader/internal/market"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// renderMarket prints the listings of m as a table.
func renderMarket(out *Output, m *market.Market) {
	table := NewTable(out, "SYMBOL", "NAME", "PRICE")
	for _, s := range m.Stocks() {
		table.AddRow(s.Symbol(), s.Name(), out.Money(s.Price()))
	}
	table.Render()
}

func (s *Session) showMarket() {
	s.out.Println()
	s.out.Bold("===== MARKET DATA =====")
	renderMarket(s.out, s.market)
}

func (s *Session) showPortfolio() error {
	v, err := s.user.Valuation(s.market)
	if err != nil {
		return err
	}

	s.out.Println()
	s.out.Bold("===== PORTFOLIO =====")
	s.out.Printf("User: %s\n", v.Username)
	s.out.Printf("Cash Balance: %s\n", s.out.Money(v.Cash))
	s.out.Println()

	if len(v.Holdings) == 0 {
		s.out.Dim("No stocks in portfolio.")
	} else {
		table := NewTable(s.out, "SYMBOL", "QTY", "AVG PRICE", "CURRENT", "VALUE", "P&L")
		for _, h := range v.Holdings {
			table.AddRow(
				h.Symbol,
				FormatQuantity(h.Quantity),
				s.out.Money(h.AvgBuyPrice),
				s.out.Money(h.CurrentPrice),
				s.out.Money(h.CurrentValue),
				s.out.PnL(h.ProfitLoss),
			)
		}
		table.Render()
		s.out.Println()
		s.out.Printf("Unrealized P&L: %s\n", s.out.PnL(v.ProfitLoss))
	}

	s.out.Printf("Total Portfolio Value: %s\n", s.out.Money(v.TotalValue))
	return nil
}

func (s *Session) showHistory() {
	history := s.user.Transactions()

	s.out.Println()
	s.out.Bold("===== TRANSACTION HISTORY =====")
	if len(history) == 0 {
		s.out.Dim("No transactions yet.")
		return
	}

	table := NewTable(s.out, "TIME", "TYPE", "SYMBOL", "QTY", "PRICE", "TOTAL")
	for _, tx := range history {
		table.AddRow(
			FormatDateTime(tx.Timestamp),
			string(tx.Kind),
			tx.Symbol,
			FormatQuantity(tx.Quantity),
			s.out.Money(tx.PricePerShare),
			s.out.Money(tx.Total()),
		)
	}
	table.Render()
}
