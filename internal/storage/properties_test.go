package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

func TestSQLiteStorage_CreateProperty(t *testing.T) {
	tests := []struct {
		name     string
		property *model.Property
		wantErr  bool
	}{
		{
			name: "valid property",
			property: &model.Property{
				ID:       uuid.NewString(),
				OwnerID:  "host-1",
				Name:     "Downtown Loft",
				Category: model.PropertyApartment,
			},
		},
		{
			name: "missing owner",
			property: &model.Property{
				ID:       uuid.NewString(),
				Name:     "Orphan Flat",
				Category: model.PropertyApartment,
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			property: &model.Property{
				ID:       uuid.NewString(),
				OwnerID:  "host-1",
				Name:     "Weird Place",
				Category: model.PropertyCategory("castle"),
			},
			wantErr: true,
		},
		{
			name:     "nil property",
			property: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			err := store.CreateProperty(context.Background(), tt.property)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateProperty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_CreateProperty_DuplicateName(t *testing.T) {
	store := createTestStorage(t)
	createTestProperty(t, store, "host-1", "Downtown Loft")

	dup := &model.Property{
		ID:       uuid.NewString(),
		OwnerID:  "host-1",
		Name:     "Downtown Loft",
		Category: model.PropertyHouse,
	}
	err := store.CreateProperty(context.Background(), dup)
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}

	// Same name under a different owner is fine
	other := &model.Property{
		ID:       uuid.NewString(),
		OwnerID:  "host-2",
		Name:     "Downtown Loft",
		Category: model.PropertyHouse,
	}
	if err := store.CreateProperty(context.Background(), other); err != nil {
		t.Errorf("Same name under another owner should succeed, got %v", err)
	}
}

func TestSQLiteStorage_OwnerScoping(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mine := createTestProperty(t, store, "host-1", "Downtown Loft")
	createTestProperty(t, store, "host-2", "Beach Bungalow")

	// List only sees own rows
	props, err := store.ListProperties(ctx, "host-1")
	if err != nil {
		t.Fatalf("ListProperties failed: %v", err)
	}
	if len(props) != 1 || props[0].Name != "Downtown Loft" {
		t.Errorf("Expected only own property, got %+v", props)
	}

	// Cross-owner lookup behaves as not found
	if _, err := store.GetPropertyByID(ctx, mine.ID, "host-2"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Cross-owner GetPropertyByID should be ErrNotFound, got %v", err)
	}

	// Cross-owner delete touches nothing
	if err := store.DeleteProperty(ctx, mine.ID, "host-2"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Cross-owner DeleteProperty should be ErrNotFound, got %v", err)
	}
	if _, err := store.GetPropertyByID(ctx, mine.ID, "host-1"); err != nil {
		t.Errorf("Own property should survive cross-owner delete: %v", err)
	}
}

func TestSQLiteStorage_UpdateProperty(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := createTestProperty(t, store, "host-1", "Downtown Loft")
	purchase := testDate(2020, time.June, 1)
	p.Name = "Downtown Loft Deluxe"
	p.Bedrooms = 3
	p.PurchaseDate = &purchase
	p.PurchasePrice = 425000

	if err := store.UpdateProperty(ctx, p); err != nil {
		t.Fatalf("UpdateProperty failed: %v", err)
	}

	got, err := store.GetPropertyByID(ctx, p.ID, "host-1")
	if err != nil {
		t.Fatalf("GetPropertyByID failed: %v", err)
	}
	if got.Name != "Downtown Loft Deluxe" || got.Bedrooms != 3 {
		t.Errorf("Update not persisted: %+v", got)
	}
	if got.PurchaseDate == nil || !got.PurchaseDate.Equal(purchase) {
		t.Errorf("Purchase date not persisted: %v", got.PurchaseDate)
	}
}

func TestSQLiteStorage_DeleteProperty_Cascades(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := createTestProperty(t, store, "host-1", "Downtown Loft")
	createTestBooking(t, store, "host-1", p.ID,
		testDate(2024, time.January, 15), testDate(2024, time.January, 20))
	txn := makeTestTransaction("host-1", p.ID, model.TransactionIncome, 1200, testDate(2024, time.January, 15))
	if err := store.CreateTransaction(ctx, &txn); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if err := store.DeleteProperty(ctx, p.ID, "host-1"); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}

	bookings, err := store.ListBookings(ctx, "host-1")
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("Expected bookings to cascade, got %d rows", len(bookings))
	}

	txns, err := store.ListTransactions(ctx, "host-1", serviceFilterAll())
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("Expected transactions to cascade, got %d rows", len(txns))
	}
}

func TestSQLiteStorage_GetPropertyByName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	createTestProperty(t, store, "host-1", "Downtown Loft")

	got, err := store.GetPropertyByName(ctx, "Downtown Loft", "host-1")
	if err != nil {
		t.Fatalf("GetPropertyByName failed: %v", err)
	}
	if got.Name != "Downtown Loft" {
		t.Errorf("Wrong property: %+v", got)
	}

	if _, err := store.GetPropertyByName(ctx, "Nonexistent", "host-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown name, got %v", err)
	}
}
