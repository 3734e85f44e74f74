// Package storage provides the data persistence layer for the application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidProperty   = errors.New("invalid property")
	ErrInvalidBooking    = errors.New("invalid booking")
	ErrInvalidTxn        = errors.New("invalid transaction")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProperty validates a property record before persisting.
func validateProperty(p *model.Property) error {
	if p == nil {
		return fmt.Errorf("%w: property", ErrNilParameter)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidProperty)
	}
	if p.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidProperty)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProperty)
	}
	if !model.ValidPropertyCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProperty, p.Category)
	}
	return nil
}

// validateBooking validates a booking record before persisting.
func validateBooking(b *model.Booking) error {
	if b == nil {
		return fmt.Errorf("%w: booking", ErrNilParameter)
	}
	if b.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBooking)
	}
	if b.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidBooking)
	}
	if b.PropertyID == "" {
		return fmt.Errorf("%w: missing property", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.GuestName) == "" {
		return fmt.Errorf("%w: missing guest name", ErrInvalidBooking)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	return nil
}

// validateTransaction validates a transaction record before persisting.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTxn)
	}
	if txn.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidTxn)
	}
	if txn.PropertyID == "" {
		return fmt.Errorf("%w: missing property", ErrInvalidTxn)
	}
	if strings.TrimSpace(txn.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTxn)
	}
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTxn, err)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(txns []model.Transaction) error {
	if txns == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(txns) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range txns {
		if err := validateTransaction(&txns[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateCategory validates a category record before persisting.
func validateCategory(c *model.Category) error {
	if c == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if c.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidCategory)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !model.ValidTransactionType(c.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, c.Type)
	}
	return nil
}
