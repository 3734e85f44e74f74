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

func TestSQLiteStorage_CreateBooking_Validation(t *testing.T) {
	store := createTestStorage(t)
	p := createTestProperty(t, store, "host-1", "Downtown Loft")

	tests := []struct {
		name    string
		booking *model.Booking
		wantErr bool
	}{
		{
			name: "valid booking",
			booking: &model.Booking{
				ID:         uuid.NewString(),
				OwnerID:    "host-1",
				PropertyID: p.ID,
				GuestName:  "Ada Guest",
				CheckIn:    testDate(2024, time.January, 15),
				CheckOut:   testDate(2024, time.January, 20),
				Status:     model.BookingPending,
			},
		},
		{
			name: "inverted dates",
			booking: &model.Booking{
				ID:         uuid.NewString(),
				OwnerID:    "host-1",
				PropertyID: p.ID,
				GuestName:  "Ada Guest",
				CheckIn:    testDate(2024, time.January, 20),
				CheckOut:   testDate(2024, time.January, 15),
				Status:     model.BookingPending,
			},
			wantErr: true,
		},
		{
			name: "missing guest name",
			booking: &model.Booking{
				ID:         uuid.NewString(),
				OwnerID:    "host-1",
				PropertyID: p.ID,
				CheckIn:    testDate(2024, time.January, 15),
				CheckOut:   testDate(2024, time.January, 20),
				Status:     model.BookingPending,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateBooking(context.Background(), tt.booking)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateBooking() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_BookingNights_RoundTrip(t *testing.T) {
	store := createTestStorage(t)
	p := createTestProperty(t, store, "host-1", "Downtown Loft")

	b := createTestBooking(t, store, "host-1", p.ID,
		testDate(2024, time.January, 15), testDate(2024, time.January, 20))

	got, err := store.GetBookingByID(context.Background(), b.ID, "host-1")
	if err != nil {
		t.Fatalf("GetBookingByID failed: %v", err)
	}
	if got.Nights() != 5 {
		t.Errorf("Expected 5 nights, got %d", got.Nights())
	}
}

func TestSQLiteStorage_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed to completed", func(t *testing.T) {
		store := createTestStorage(t)
		p := createTestProperty(t, store, "host-1", "Downtown Loft")
		b := createTestBooking(t, store, "host-1", p.ID,
			testDate(2024, time.January, 15), testDate(2024, time.January, 20))

		if err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingConfirmed, nil); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingCompleted, nil); err != nil {
			t.Fatalf("complete failed: %v", err)
		}

		got, err := store.GetBookingByID(ctx, b.ID, "host-1")
		if err != nil {
			t.Fatalf("GetBookingByID failed: %v", err)
		}
		if got.Status != model.BookingCompleted {
			t.Errorf("Expected completed, got %s", got.Status)
		}
		if got.Cancellation != nil {
			t.Errorf("Completed booking should carry no cancellation record")
		}
	})

	t.Run("cancel records sub-record", func(t *testing.T) {
		store := createTestStorage(t)
		p := createTestProperty(t, store, "host-1", "Downtown Loft")
		b := createTestBooking(t, store, "host-1", p.ID,
			testDate(2024, time.January, 15), testDate(2024, time.January, 20))

		cancellation := &model.Cancellation{
			Reason:          "guest emergency",
			RefundAmount:    450,
			CancellationFee: 150,
			CancelledAt:     testDate(2024, time.January, 10),
		}
		if err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingCancelled, cancellation); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}

		got, err := store.GetBookingByID(ctx, b.ID, "host-1")
		if err != nil {
			t.Fatalf("GetBookingByID failed: %v", err)
		}
		if got.Status != model.BookingCancelled {
			t.Errorf("Expected cancelled, got %s", got.Status)
		}
		if got.Cancellation == nil {
			t.Fatal("Expected cancellation record")
		}
		if got.Cancellation.Reason != "guest emergency" || got.Cancellation.RefundAmount != 450 {
			t.Errorf("Cancellation record mismatch: %+v", got.Cancellation)
		}
	})

	t.Run("terminal status rejects transitions", func(t *testing.T) {
		store := createTestStorage(t)
		p := createTestProperty(t, store, "host-1", "Downtown Loft")
		b := createTestBooking(t, store, "host-1", p.ID,
			testDate(2024, time.January, 15), testDate(2024, time.January, 20))

		cancellation := &model.Cancellation{Reason: "no-show", CancelledAt: time.Now()}
		if err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingCancelled, cancellation); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}

		err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingConfirmed, nil)
		if !errors.Is(err, common.ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("cancel without details is rejected", func(t *testing.T) {
		store := createTestStorage(t)
		p := createTestProperty(t, store, "host-1", "Downtown Loft")
		b := createTestBooking(t, store, "host-1", p.ID,
			testDate(2024, time.January, 15), testDate(2024, time.January, 20))

		err := store.UpdateBookingStatus(ctx, b.ID, "host-1", model.BookingCancelled, nil)
		if !errors.Is(err, common.ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestSQLiteStorage_ListBookingsByProperty(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	loft := createTestProperty(t, store, "host-1", "Downtown Loft")
	cabin := createTestProperty(t, store, "host-1", "Lake Cabin")
	createTestBooking(t, store, "host-1", loft.ID,
		testDate(2024, time.January, 15), testDate(2024, time.January, 20))
	createTestBooking(t, store, "host-1", cabin.ID,
		testDate(2024, time.February, 1), testDate(2024, time.February, 4))

	got, err := store.ListBookingsByProperty(ctx, loft.ID, "host-1")
	if err != nil {
		t.Fatalf("ListBookingsByProperty failed: %v", err)
	}
	if len(got) != 1 || got[0].PropertyID != loft.ID {
		t.Errorf("Expected one loft booking, got %+v", got)
	}

	// Cross-owner sees nothing
	got, err = store.ListBookingsByProperty(ctx, loft.ID, "host-2")
	if err != nil {
		t.Fatalf("ListBookingsByProperty failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Cross-owner list should be empty, got %d rows", len(got))
	}
}
