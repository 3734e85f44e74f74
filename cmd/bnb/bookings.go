package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

func bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage guest bookings",
		Long:  `List, add, and move bookings through their lifecycle (pending, confirmed, completed, cancelled).`,
	}

	cmd.AddCommand(listBookingsCmd())
	cmd.AddCommand(addBookingCmd())
	cmd.AddCommand(confirmBookingCmd())
	cmd.AddCommand(completeBookingCmd())
	cmd.AddCommand(cancelBookingCmd())

	return cmd
}

func listBookingsCmd() *cobra.Command {
	var propertyName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var bookings []model.Booking
			if propertyName != "" {
				property, err := store.GetPropertyByName(ctx, propertyName, owner)
				if err != nil {
					return fmt.Errorf("failed to find property %q: %w", propertyName, err)
				}
				bookings, err = store.ListBookingsByProperty(ctx, property.ID, owner)
				if err != nil {
					return fmt.Errorf("failed to list bookings: %w", err)
				}
			} else {
				bookings, err = store.ListBookings(ctx, owner)
				if err != nil {
					return fmt.Errorf("failed to list bookings: %w", err)
				}
			}

			if len(bookings) == 0 {
				fmt.Println(cli.InfoStyle.Render("No bookings found. Use 'bnb bookings add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tGUEST\tCHECK-IN\tCHECK-OUT\tNIGHTS\tAMOUNT\tSTATUS")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8), strings.Repeat("-", 18), strings.Repeat("-", 10),
				strings.Repeat("-", 10), strings.Repeat("-", 6), strings.Repeat("-", 9),
				strings.Repeat("-", 9))

			for i := range bookings {
				b := &bookings[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t$%.2f\t%s\n",
					shortID(b.ID), b.GuestName,
					b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
					b.Nights(), b.TotalAmount, b.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&propertyName, "property", "", "only bookings for this property")

	return cmd
}

func addBookingCmd() *cobra.Command {
	var (
		propertyName string
		guestName    string
		guestEmail   string
		guestPhone   string
		checkIn      string
		checkOut     string
		guests       int
		nightlyRate  float64
		totalAmount  float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new booking",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			in, err := requireDateFlag(checkIn, "check-in")
			if err != nil {
				return err
			}
			out, err := requireDateFlag(checkOut, "check-out")
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			property, err := store.GetPropertyByName(ctx, propertyName, owner)
			if err != nil {
				return fmt.Errorf("failed to find property %q: %w", propertyName, err)
			}

			booking := &model.Booking{
				ID:          uuid.NewString(),
				OwnerID:     owner,
				PropertyID:  property.ID,
				GuestName:   guestName,
				GuestEmail:  guestEmail,
				GuestPhone:  guestPhone,
				CheckIn:     in,
				CheckOut:    out,
				Guests:      guests,
				NightlyRate: nightlyRate,
				TotalAmount: totalAmount,
				Status:      model.BookingPending,
			}

			// Derive the total from the nightly rate when it is not given
			// explicitly. Decimal math keeps multi-night totals exact.
			if totalAmount == 0 && nightlyRate > 0 {
				total := decimal.NewFromFloat(nightlyRate).
					Mul(decimal.NewFromInt(int64(booking.Nights())))
				booking.TotalAmount, _ = total.Float64()
			}

			if err := store.CreateBooking(ctx, booking); err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added booking %s for %s at %q (%d nights)",
				shortID(booking.ID), guestName, property.Name, booking.Nights())))
			return nil
		},
	}

	cmd.Flags().StringVar(&propertyName, "property", "", "property name (required)")
	cmd.Flags().StringVar(&guestName, "guest", "", "guest name (required)")
	cmd.Flags().StringVar(&guestEmail, "email", "", "guest email")
	cmd.Flags().StringVar(&guestPhone, "phone", "", "guest phone")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&guests, "guests", 1, "number of guests")
	cmd.Flags().Float64Var(&nightlyRate, "rate", 0, "nightly rate")
	cmd.Flags().Float64Var(&totalAmount, "amount", 0, "total booking amount (defaults to rate times nights)")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("guest")

	return cmd
}

func confirmBookingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <booking-id>",
		Short: "Confirm a pending booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateBookingStatus(ctx, args[0], owner, model.BookingConfirmed, nil); err != nil {
				return fmt.Errorf("failed to confirm booking: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Booking confirmed"))
			return nil
		},
	}
}

func completeBookingCmd() *cobra.Command {
	var recordIncome bool

	cmd := &cobra.Command{
		Use:   "complete <booking-id>",
		Short: "Mark a confirmed booking as completed",
		Long: `Mark a confirmed booking as completed after checkout.

With --record-income, an income transaction for the booking amount is
created as a second step. The two writes are not atomic: if the
transaction write fails the booking stays completed and the income row
must be added manually.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			booking, err := store.GetBookingByID(ctx, args[0], owner)
			if err != nil {
				return fmt.Errorf("failed to find booking: %w", err)
			}

			if err := store.UpdateBookingStatus(ctx, booking.ID, owner, model.BookingCompleted, nil); err != nil {
				return fmt.Errorf("failed to complete booking: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Booking completed"))

			if recordIncome {
				txn := &model.Transaction{
					ID:          uuid.NewString(),
					OwnerID:     owner,
					PropertyID:  booking.PropertyID,
					BookingID:   booking.ID,
					Type:        model.TransactionIncome,
					Category:    "Booking Revenue",
					Description: fmt.Sprintf("%s booking - %d nights", booking.GuestName, booking.Nights()),
					Amount:      booking.TotalAmount,
					Date:        booking.CheckOut,
				}
				if err := store.CreateTransaction(ctx, txn); err != nil {
					slog.Error("Booking completed but income transaction failed; add it manually",
						"booking", booking.ID, "error", err)
					return fmt.Errorf("failed to record income: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded $%.2f booking income", txn.Amount)))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&recordIncome, "record-income", false, "also create an income transaction for the booking amount")

	return cmd
}

func cancelBookingCmd() *cobra.Command {
	var (
		reason string
		refund float64
		fee    float64
	)

	cmd := &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cancellation := &model.Cancellation{
				CancelledAt:     time.Now().UTC(),
				Reason:          reason,
				RefundAmount:    refund,
				CancellationFee: fee,
			}

			if err := store.UpdateBookingStatus(ctx, args[0], owner, model.BookingCancelled, cancellation); err != nil {
				return fmt.Errorf("failed to cancel booking: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Booking cancelled"))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason (required)")
	cmd.Flags().Float64Var(&refund, "refund", 0, "refund amount")
	cmd.Flags().Float64Var(&fee, "fee", 0, "cancellation fee kept")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
