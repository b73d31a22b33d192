package cli

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"simtrader/internal/account"
	apperrors "simtrader/internal/errors"
	"simtrader/internal/logging"
	"simtrader/internal/market"
	"simtrader/internal/models"
)

// SessionState is a state of the interactive session.
type SessionState int

const (
	StateAwaitingUsername SessionState = iota
	StateAwaitingBalance
	StateMenuActive
	StateTerminated
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingUsername:
		return "awaiting_username"
	case StateAwaitingBalance:
		return "awaiting_balance"
	case StateMenuActive:
		return "menu_active"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuViewMarket MenuChoice = iota + 1
	MenuBuy
	MenuSell
	MenuPortfolio
	MenuHistory
	MenuUpdatePrices
	MenuExit
)

var menuLabels = map[MenuChoice]string{
	MenuViewMarket:   "View Market Data",
	MenuBuy:          "Buy Stock",
	MenuSell:         "Sell Stock",
	MenuPortfolio:    "View Portfolio",
	MenuHistory:      "View Transaction History",
	MenuUpdatePrices: "Update Market Prices",
	MenuExit:         "Exit",
}

// SessionConfig holds the dependencies of a session.
type SessionConfig struct {
	Market *market.Market
	Rand   market.RandSource
	In     io.Reader
	Out    *Output
	Logger zerolog.Logger
	// UserOptions are passed to account.NewUser when the account is opened.
	UserOptions []account.Option
}

// Session drives one user through the menu loop.
type Session struct {
	market   *market.Market
	rng      market.RandSource
	out      *Output
	prompt   *Prompter
	logger   zerolog.Logger
	userOpts []account.Option

	state    SessionState
	username string
	user     *account.User
}

// NewSession creates a session waiting for a username.
func NewSession(cfg SessionConfig) *Session {
	rng := cfg.Rand
	if rng == nil {
		rng = market.NewRand(0)
	}
	opts := append([]account.Option{account.WithLogger(cfg.Logger)}, cfg.UserOptions...)
	return &Session{
		market:   cfg.Market,
		rng:      rng,
		out:      cfg.Out,
		prompt:   NewPrompter(cfg.In, cfg.Out),
		logger:   logging.WithOperation(cfg.Logger, "session"),
		userOpts: opts,
		state:    StateAwaitingUsername,
	}
}

// State returns the current state.
func (s *Session) State() SessionState { return s.state }

// User returns the account, nil until the balance has been entered.
func (s *Session) User() *account.User { return s.user }

// Run processes input until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.out.Bold("Welcome to Stock Trading Platform!")

	for s.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug().Str("state", s.state.String()).Msg("Input closed")
				s.transition(StateTerminated)
				s.out.Println()
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Session) transition(next SessionState) {
	s.logger.Debug().Str("from", s.state.String()).Str("to", next.String()).Msg("Session state")
	s.state = next
}

func (s *Session) step() error {
	switch s.state {
	case StateAwaitingUsername:
		name, err := s.prompt.NonEmpty("Enter your username: ")
		if err != nil {
			return err
		}
		s.username = name
		s.transition(StateAwaitingBalance)

	case StateAwaitingBalance:
		balance, err := s.prompt.Balance("Enter starting balance: $")
		if err != nil {
			return err
		}
		user, err := account.NewUser(s.username, balance, s.userOpts...)
		if err != nil {
			return err
		}
		s.user = user
		s.out.Println()
		s.out.Success("Account created successfully!")
		s.transition(StateMenuActive)

	case StateMenuActive:
		s.showMenu()
		text, err := s.prompt.Line("Enter your choice: ")
		if err != nil {
			return err
		}
		choice, err := ParseMenuChoice(text)
		if err != nil {
			s.logger.Debug().Err(err).Msg("Menu input rejected")
			s.out.Error("Invalid choice!")
			return nil
		}
		return s.dispatch(choice)
	}
	return nil
}

func (s *Session) showMenu() {
	s.out.Println()
	s.out.Bold("===== STOCK TRADING PLATFORM =====")
	for c := MenuViewMarket; c <= MenuExit; c++ {
		s.out.Printf("%d. %s\n", c, menuLabels[c])
	}
}

func (s *Session) dispatch(choice MenuChoice) error {
	switch choice {
	case MenuViewMarket:
		s.showMarket()
	case MenuBuy:
		return s.trade(models.KindBuy)
	case MenuSell:
		return s.trade(models.KindSell)
	case MenuPortfolio:
		return s.showPortfolio()
	case MenuHistory:
		s.showHistory()
	case MenuUpdatePrices:
		s.updatePrices()
	case MenuExit:
		s.out.Println("Thank you for using Stock Trading Platform!")
		s.transition(StateTerminated)
	}
	return nil
}

// tradeText holds the wording that differs between buying and selling.
type tradeText struct {
	symbolPrompt string
	totalLabel   string
	confirm      string
	success      string
}

var tradeTexts = map[models.TransactionKind]tradeText{
	models.KindBuy: {
		symbolPrompt: "Enter stock symbol to buy: ",
		totalLabel:   "Total cost",
		confirm:      "Confirm purchase? (yes/no): ",
		success:      "Purchase successful!",
	},
	models.KindSell: {
		symbolPrompt: "Enter stock symbol to sell: ",
		totalLabel:   "Total earning",
		confirm:      "Confirm sale? (yes/no): ",
		success:      "Sale successful!",
	},
}

// trade runs the buy or sell sub-flow. Every rejection is reported and
// returns to the menu; only input failures are returned.
func (s *Session) trade(kind models.TransactionKind) error {
	text := tradeTexts[kind]
	if kind == models.KindBuy {
		s.showMarket()
	}

	s.out.Println()
	symbol, err := s.prompt.Line(text.symbolPrompt)
	if err != nil {
		return err
	}
	stock, ok := s.market.Lookup(symbol)
	if !ok {
		return s.reportRejection(kind, models.NormalizeSymbol(symbol), 0, apperrors.ErrUnknownSymbol)
	}

	qty, err := s.prompt.Int("Enter quantity: ")
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.reportRejection(kind, stock.Symbol(), qty, apperrors.ErrInvalidQuantity)
	}

	total := stock.Price().Mul(decimalFromInt(qty))
	s.out.Printf("%s: %s\n", text.totalLabel, s.out.Money(total))

	confirmed, err := s.prompt.Confirm(text.confirm)
	if err != nil {
		return err
	}
	if !confirmed {
		logging.LogRejection(s.logger, stock.Symbol(), string(kind), qty, apperrors.ErrDeclinedConfirmation)
		return nil
	}

	if kind == models.KindBuy {
		_, err = s.user.BuyStock(stock, qty)
	} else {
		_, err = s.user.SellStock(stock, qty)
	}
	if err != nil {
		return s.reportRejection(kind, stock.Symbol(), qty, err)
	}

	s.out.Success(text.success)
	return nil
}

// reportRejection prints the message for a known trade failure. Unknown
// errors are returned to the caller.
func (s *Session) reportRejection(kind models.TransactionKind, symbol string, qty int, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrUnknownSymbol):
		s.out.Error("Stock not found!")
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		s.out.Error("Invalid quantity!")
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		s.out.Error("Insufficient balance!")
	case errors.Is(err, apperrors.ErrInsufficientShares):
		s.out.Error("You don't own enough shares!")
	default:
		return err
	}
	logging.LogRejection(s.logger, symbol, string(kind), qty, err)
	return nil
}

func (s *Session) updatePrices() {
	changes := s.market.UpdatePrices(s.rng)
	s.out.Success("Market prices updated!")

	table := NewTable(s.out, "SYMBOL", "OLD", "NEW", "CHANGE")
	for _, c := range changes {
		logging.LogPriceUpdate(logging.WithSymbol(s.logger, c.Symbol), c.Old, c.New, c.Percent)
		table.AddRow(c.Symbol, s.out.Money(c.Old), s.out.Money(c.New), s.out.Percent(c.Percent))
	}
	table.Render()
}
