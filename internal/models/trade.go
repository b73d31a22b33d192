package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the record of one completed buy or sell.
type Transaction struct {
	ID            uuid.UUID
	Kind          TransactionKind
	Symbol        string
	Quantity      int
	PricePerShare decimal.Decimal
	Timestamp     time.Time
}

// NewTransaction creates a transaction record stamped with at.
func NewTransaction(kind TransactionKind, symbol string, quantity int, price decimal.Decimal, at time.Time) Transaction {
	return Transaction{
		ID:            uuid.New(),
		Kind:          kind,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		Timestamp:     at,
	}
}

// Total returns quantity × price per share.
func (t Transaction) Total() decimal.Decimal {
	return t.PricePerShare.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
