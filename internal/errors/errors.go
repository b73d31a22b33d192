// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrUnknownSymbol        = errors.New("stock not found")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrDuplicateSymbol      = errors.New("duplicate symbol")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidBalance       = errors.New("invalid balance")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientShares   = errors.New("insufficient shares")
	ErrDeclinedConfirmation = errors.New("confirmation declined")
	ErrInvalidMenuChoice    = errors.New("invalid menu choice")
	ErrConfigInvalid        = errors.New("invalid configuration")
	ErrInputValidation      = errors.New("input validation failed")
)

// TradeError represents a rejected buy or sell.
type TradeError struct {
	Kind     string
	Symbol   string
	Quantity int
	Reason   string
	Err      error
}

func (e *TradeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trade error %s %d %s: %s: %v", e.Kind, e.Quantity, e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("trade error %s %d %s: %s", e.Kind, e.Quantity, e.Symbol, e.Reason)
}

func (e *TradeError) Unwrap() error {
	return e.Err
}

// NewTradeError creates a new TradeError.
func NewTradeError(kind, symbol string, quantity int, reason string, err error) *TradeError {
	return &TradeError{
		Kind:     kind,
		Symbol:   symbol,
		Quantity: quantity,
		Reason:   reason,
		Err:      err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers match any ValidationError against ErrInputValidation.
func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
