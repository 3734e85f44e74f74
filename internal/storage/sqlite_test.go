package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// createTestProperty inserts a property and returns it.
func createTestProperty(t *testing.T, s *SQLiteStorage, ownerID, name string) *model.Property {
	t.Helper()

	p := &model.Property{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Address:   "123 Main St",
		Category:  model.PropertyApartment,
		Bedrooms:  2,
		Bathrooms: 1.5,
		MaxGuests: 4,
	}
	if err := s.CreateProperty(context.Background(), p); err != nil {
		t.Fatalf("Failed to create property %q: %v", name, err)
	}
	return p
}

func createTestBooking(t *testing.T, s *SQLiteStorage, ownerID, propertyID string, checkIn, checkOut time.Time) *model.Booking {
	t.Helper()

	b := &model.Booking{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		PropertyID:  propertyID,
		GuestName:   "Ada Guest",
		GuestEmail:  "ada@example.com",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      2,
		TotalAmount: 600,
		Status:      model.BookingPending,
	}
	if err := s.CreateBooking(context.Background(), b); err != nil {
		t.Fatalf("Failed to create booking: %v", err)
	}
	return b
}

func makeTestTransaction(ownerID, propertyID string, txType model.TransactionType, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		PropertyID:  propertyID,
		Type:        txType,
		Category:    "Booking Revenue",
		Amount:      amount,
		Description: "test transaction",
		Date:        date,
	}
}

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := createTestStorage(t)

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", ExpectedSchemaVersion, version)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)

	if err := store.Migrate(context.Background()); err != nil {
		t.Errorf("Second migrate should be a no-op, got: %v", err)
	}
}
