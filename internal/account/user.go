// Package account implements the trader's cash balance, portfolio and
// transaction history.
package account

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
	"simtrader/internal/logging"
	"simtrader/internal/models"
)

// User is the single trader of a session.
type User struct {
	username  string
	balance   decimal.Decimal
	portfolio map[string]*models.PortfolioItem
	history   []models.Transaction

	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a User.
type Option func(*User)

// WithClock overrides the clock used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(u *User) {
		u.now = now
	}
}

// WithLogger attaches a logger for trade events.
func WithLogger(logger zerolog.Logger) Option {
	return func(u *User) {
		u.logger = logger
	}
}

// NewUser creates a user with a starting cash balance.
func NewUser(username string, balance decimal.Decimal, opts ...Option) (*User, error) {
	if balance.IsNegative() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidBalance, "starting balance %s", balance.StringFixed(2))
	}
	u := &User{
		username:  username,
		balance:   balance,
		portfolio: make(map[string]*models.PortfolioItem),
		history:   make([]models.Transaction, 0),
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.With().Str("user", username).Logger()
	return u, nil
}

// Username returns the trader's name.
func (u *User) Username() string { return u.username }

// Balance returns the cash balance.
func (u *User) Balance() decimal.Decimal { return u.balance }

// BuyStock buys quantity shares at the stock's current price.
// On failure nothing changes.
func (u *User) BuyStock(stock *models.Stock, quantity int) (models.Transaction, error) {
	if err := checkOrder(stock, quantity); err != nil {
		return models.Transaction{}, err
	}
	symbol := stock.Symbol()
	price := stock.Price()
	totalCost := price.Mul(decimal.NewFromInt(int64(quantity)))

	if u.balance.LessThan(totalCost) {
		err := apperrors.NewTradeError(string(models.KindBuy), symbol, quantity,
			fmt.Sprintf("cost %s exceeds balance %s", totalCost.StringFixed(2), u.balance.StringFixed(2)),
			apperrors.ErrInsufficientFunds)
		logging.LogRejection(u.logger, symbol, string(models.KindBuy), quantity, err)
		return models.Transaction{}, err
	}

	if item, ok := u.portfolio[symbol]; ok && item.Quantity > math.MaxInt-quantity {
		err := apperrors.NewTradeError(string(models.KindBuy), symbol, quantity,
			fmt.Sprintf("holding %d shares cannot grow by %d", item.Quantity, quantity),
			apperrors.ErrInvalidQuantity)
		logging.LogRejection(u.logger, symbol, string(models.KindBuy), quantity, err)
		return models.Transaction{}, err
	}

	u.balance = u.balance.Sub(totalCost)

	if item, ok := u.portfolio[symbol]; ok {
		item.AddQuantity(quantity, price)
	} else {
		u.portfolio[symbol] = models.NewPortfolioItem(symbol, quantity, price)
	}

	return u.record(models.KindBuy, symbol, quantity, price), nil
}

// SellStock sells quantity shares at the stock's current price. The holding
// is dropped once its quantity reaches zero. On failure nothing changes.
func (u *User) SellStock(stock *models.Stock, quantity int) (models.Transaction, error) {
	if err := checkOrder(stock, quantity); err != nil {
		return models.Transaction{}, err
	}
	symbol := stock.Symbol()
	price := stock.Price()

	item, ok := u.portfolio[symbol]
	if !ok || item.Quantity < quantity {
		held := 0
		if ok {
			held = item.Quantity
		}
		err := apperrors.NewTradeError(string(models.KindSell), symbol, quantity,
			fmt.Sprintf("holding %d shares", held),
			apperrors.ErrInsufficientShares)
		logging.LogRejection(u.logger, symbol, string(models.KindSell), quantity, err)
		return models.Transaction{}, err
	}

	u.balance = u.balance.Add(price.Mul(decimal.NewFromInt(int64(quantity))))

	item.ReduceQuantity(quantity)
	if item.Quantity == 0 {
		delete(u.portfolio, symbol)
	}

	return u.record(models.KindSell, symbol, quantity, price), nil
}

// record appends a transaction with a timestamp no earlier than the last one.
func (u *User) record(kind models.TransactionKind, symbol string, quantity int, price decimal.Decimal) models.Transaction {
	at := u.now()
	if n := len(u.history); n > 0 && at.Before(u.history[n-1].Timestamp) {
		at = u.history[n-1].Timestamp
	}
	tx := models.NewTransaction(kind, symbol, quantity, price, at)
	u.history = append(u.history, tx)

	logging.LogTrade(u.logger, symbol, string(kind), quantity, price, u.balance)
	return tx
}

func checkOrder(stock *models.Stock, quantity int) error {
	if stock == nil {
		return apperrors.ErrUnknownSymbol
	}
	if quantity <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidQuantity, "%s: quantity %d", stock.Symbol(), quantity)
	}
	return nil
}

// Holding returns a copy of the holding for symbol.
func (u *User) Holding(symbol string) (models.PortfolioItem, bool) {
	item, ok := u.portfolio[models.NormalizeSymbol(symbol)]
	if !ok {
		return models.PortfolioItem{}, false
	}
	return *item, true
}

// Holdings returns copies of all holdings sorted by symbol.
func (u *User) Holdings() []models.PortfolioItem {
	items := make([]models.PortfolioItem, 0, len(u.portfolio))
	for _, item := range u.portfolio {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Symbol < items[j].Symbol
	})
	return items
}

// Transactions returns the history in confirmation order.
func (u *User) Transactions() []models.Transaction {
	out := make([]models.Transaction, len(u.history))
	copy(out, u.history)
	return out
}
