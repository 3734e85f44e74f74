package model

import (
	"fmt"
	"time"
)

// TransactionType indicates whether money came in or went out. The type is
// fixed at creation and never changes.
type TransactionType string

const (
	// TransactionIncome represents money received.
	TransactionIncome TransactionType = "income"
	// TransactionExpense represents money spent.
	TransactionExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is a known type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is the ground truth for all financial aggregation. Every
// transaction belongs to a property and may optionally reference the
// booking that produced it.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	OwnerID     string
	PropertyID  string
	BookingID   string // optional
	Type        TransactionType
	Category    string
	Description string
	Amount      float64
}

// Validate checks the transaction's type and amount invariants.
func (t *Transaction) Validate() error {
	if !ValidTransactionType(t.Type) {
		return fmt.Errorf("invalid transaction type: %s", t.Type)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %.2f", t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

// SuggestedIncomeCategories is the fixed list offered when recording income.
var SuggestedIncomeCategories = []string{
	"Booking Revenue",
	"Cleaning Fees",
	"Extra Guest Fees",
	"Security Deposit",
	"Other Income",
}

// SuggestedExpenseCategories is the fixed list offered when recording expenses.
var SuggestedExpenseCategories = []string{
	"Cleaning",
	"Maintenance",
	"Repairs",
	"Supplies",
	"Utilities",
	"Insurance",
	"Property Tax",
	"Mortgage Interest",
	"HOA Fees",
	"Platform Fees",
	"Marketing",
	"Other Expense",
}
