package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

const bookingColumns = `id, owner_id, property_id, guest_name, guest_email, guest_phone,
	check_in, check_out, guests, total_amount, nightly_rate, status,
	cancel_reason, refund_amount, cancellation_fee, cancelled_at, created_at, updated_at`

// ListBookings returns all bookings belonging to the owner, newest check-in first.
func (s *SQLiteStorage) ListBookings(ctx context.Context, ownerID string) ([]model.Booking, error) {
	return s.listBookings(ctx, "ORDER BY check_in DESC", ownerID)
}

// ListBookingsByProperty returns the owner's bookings for one property.
func (s *SQLiteStorage) ListBookingsByProperty(ctx context.Context, propertyID, ownerID string) ([]model.Booking, error) {
	if err := validateString(propertyID, "propertyID"); err != nil {
		return nil, err
	}
	return s.listBookings(ctx, "AND property_id = ? ORDER BY check_in DESC", ownerID, propertyID)
}

func (s *SQLiteStorage) listBookings(ctx context.Context, extra, ownerID string, args ...any) ([]model.Booking, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	queryArgs := append([]any{ownerID}, args...)
	rows, err := s.db.QueryContext(ctx, scopedSelect(bookingColumns, "bookings", extra), queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []model.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

// GetBookingByID returns a single owner-scoped booking.
func (s *SQLiteStorage) GetBookingByID(ctx context.Context, id, ownerID string) (*model.Booking, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		scopedSelect(bookingColumns, "bookings", "AND id = ?"), ownerID, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking inserts a new booking after checking its date invariant.
func (s *SQLiteStorage) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBooking(booking); err != nil {
		return err
	}

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, owner_id, property_id, guest_name, guest_email, guest_phone,
			check_in, check_out, guests, total_amount, nightly_rate, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		booking.ID,
		booking.OwnerID,
		booking.PropertyID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.TotalAmount,
		booking.NightlyRate,
		string(booking.Status),
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	slog.Info("created booking",
		"id", booking.ID,
		"property", booking.PropertyID,
		"nights", booking.Nights())
	return nil
}

// UpdateBooking updates guest and stay details of an existing booking.
// Status changes go through UpdateBookingStatus instead.
func (s *SQLiteStorage) UpdateBooking(ctx context.Context, booking *model.Booking) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBooking(booking); err != nil {
		return err
	}

	booking.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx, scopedExec(`
		UPDATE bookings SET
			guest_name = ?, guest_email = ?, guest_phone = ?,
			check_in = ?, check_out = ?, guests = ?, total_amount = ?,
			nightly_rate = ?, updated_at = ?`,
		"AND id = ?"),
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.TotalAmount,
		booking.NightlyRate,
		booking.UpdatedAt,
		booking.OwnerID,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// UpdateBookingStatus transitions a booking to a new status. The
// cancellation record is persisted only on the transition to cancelled
// and must be nil otherwise.
func (s *SQLiteStorage) UpdateBookingStatus(ctx context.Context, id, ownerID string, status model.BookingStatus, cancellation *model.Cancellation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}
	if status == model.BookingCancelled && cancellation == nil {
		return fmt.Errorf("%w: cancellation details required", common.ErrInvalidTransition)
	}
	if status != model.BookingCancelled && cancellation != nil {
		return fmt.Errorf("%w: cancellation details only valid when cancelling", common.ErrInvalidTransition)
	}

	booking, err := s.GetBookingByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !booking.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, booking.Status, status)
	}

	now := time.Now()
	var result sql.Result
	if status == model.BookingCancelled {
		result, err = s.db.ExecContext(ctx, scopedExec(`
			UPDATE bookings SET
				status = ?, cancel_reason = ?, refund_amount = ?,
				cancellation_fee = ?, cancelled_at = ?, updated_at = ?`,
			"AND id = ?"),
			string(status),
			cancellation.Reason,
			cancellation.RefundAmount,
			cancellation.CancellationFee,
			cancellation.CancelledAt,
			now,
			ownerID,
			id,
		)
	} else {
		result, err = s.db.ExecContext(ctx, scopedExec(
			`UPDATE bookings SET status = ?, updated_at = ?`, "AND id = ?"),
			string(status), now, ownerID, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	slog.Info("booking status changed", "id", id, "from", booking.Status, "to", status)
	return nil
}

// DeleteBooking removes a booking.
func (s *SQLiteStorage) DeleteBooking(ctx context.Context, id, ownerID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		scopedExec("DELETE FROM bookings", "AND id = ?"), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanBooking(row scanner) (*model.Booking, error) {
	var b model.Booking
	var guestEmail, guestPhone, cancelReason sql.NullString
	var refundAmount, cancellationFee sql.NullFloat64
	var cancelledAt sql.NullTime
	var status string

	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.PropertyID,
		&b.GuestName,
		&guestEmail,
		&guestPhone,
		&b.CheckIn,
		&b.CheckOut,
		&b.Guests,
		&b.TotalAmount,
		&b.NightlyRate,
		&status,
		&cancelReason,
		&refundAmount,
		&cancellationFee,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	b.Status = model.BookingStatus(status)
	if guestEmail.Valid {
		b.GuestEmail = guestEmail.String
	}
	if guestPhone.Valid {
		b.GuestPhone = guestPhone.String
	}
	if b.Status == model.BookingCancelled && cancelledAt.Valid {
		b.Cancellation = &model.Cancellation{
			Reason:          cancelReason.String,
			RefundAmount:    refundAmount.Float64,
			CancellationFee: cancellationFee.Float64,
			CancelledAt:     cancelledAt.Time,
		}
	}
	return &b, nil
}
