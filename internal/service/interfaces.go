// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// A nil date leaves that side of the range open.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	PropertyID string
	Type       model.TransactionType
}

// Storage defines the contract for the persistence layer. Every operation
// is scoped to an owner identifier; a row belonging to a different owner
// behaves exactly as if it did not exist.
type Storage interface {
	// Property operations
	ListProperties(ctx context.Context, ownerID string) ([]model.Property, error)
	GetPropertyByID(ctx context.Context, id, ownerID string) (*model.Property, error)
	GetPropertyByName(ctx context.Context, name, ownerID string) (*model.Property, error)
	CreateProperty(ctx context.Context, property *model.Property) error
	UpdateProperty(ctx context.Context, property *model.Property) error
	DeleteProperty(ctx context.Context, id, ownerID string) error

	// Booking operations
	ListBookings(ctx context.Context, ownerID string) ([]model.Booking, error)
	ListBookingsByProperty(ctx context.Context, propertyID, ownerID string) ([]model.Booking, error)
	GetBookingByID(ctx context.Context, id, ownerID string) (*model.Booking, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	UpdateBooking(ctx context.Context, booking *model.Booking) error
	UpdateBookingStatus(ctx context.Context, id, ownerID string, status model.BookingStatus, cancellation *model.Cancellation) error
	DeleteBooking(ctx context.Context, id, ownerID string) error

	// Transaction operations
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id, ownerID string) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	CreateTransactions(ctx context.Context, txns []model.Transaction) error
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id, ownerID string) error
	GetTransactionDateBounds(ctx context.Context, ownerID string) (earliest, latest time.Time, err error)

	// Category operations
	ListCategories(ctx context.Context, ownerID string) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name, ownerID string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id, ownerID string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter pushes a generated report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, data *model.ReportData) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}
