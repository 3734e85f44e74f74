package model

import (
	"fmt"
	"time"
)

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	// BookingPending is the initial status of a new booking.
	BookingPending BookingStatus = "pending"
	// BookingConfirmed means the guest has confirmed the stay.
	BookingConfirmed BookingStatus = "confirmed"
	// BookingCancelled is a terminal status reached via cancellation.
	BookingCancelled BookingStatus = "cancelled"
	// BookingCompleted is a terminal status reached after checkout.
	BookingCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// ValidBookingStatus reports whether s is a known status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Cancellation records why and how a booking was cancelled. It is only
// populated on the transition to BookingCancelled.
type Cancellation struct {
	CancelledAt     time.Time
	Reason          string
	RefundAmount    float64
	CancellationFee float64
}

// Booking represents a guest stay at a property.
type Booking struct {
	CheckIn      time.Time
	CheckOut     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Cancellation *Cancellation
	ID           string
	OwnerID      string
	PropertyID   string
	GuestName    string
	GuestEmail   string
	GuestPhone   string
	Status       BookingStatus
	Guests       int
	TotalAmount  float64
	NightlyRate  float64 // optional override; 0 means derived from TotalAmount
}

// Nights returns the stay length in whole days.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Validate checks the booking's date invariant and status.
func (b *Booking) Validate() error {
	if !b.CheckOut.After(b.CheckIn) {
		return fmt.Errorf("check-out %s must be after check-in %s",
			b.CheckOut.Format("2006-01-02"), b.CheckIn.Format("2006-01-02"))
	}
	if !ValidBookingStatus(b.Status) {
		return fmt.Errorf("invalid booking status: %s", b.Status)
	}
	return nil
}

// CanTransitionTo reports whether a booking may move from its current
// status to the target status. Cancelled and completed are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status.IsTerminal() {
		return false
	}
	switch target {
	case BookingConfirmed:
		return b.Status == BookingPending
	case BookingCancelled:
		return true
	case BookingCompleted:
		return b.Status == BookingConfirmed
	case BookingPending:
		return false
	}
	return false
}
