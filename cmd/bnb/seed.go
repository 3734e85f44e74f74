package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

func seedCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo data",
		Long: `Create a small demo portfolio so every command has something to show:
three properties, a season of bookings, and monthly income and expense
transactions ending this month.`,
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

			properties := demoProperties(owner)

			bar := progressbar.NewOptions(len(properties),
				progressbar.OptionSetDescription("Seeding properties"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			var txns []model.Transaction
			var bookingCount int
			now := time.Now().UTC()

			for i := range properties {
				p := &properties[i]
				if err := store.CreateProperty(ctx, p); err != nil {
					return fmt.Errorf("failed to create property %q: %w", p.Name, err)
				}

				for m := months - 1; m >= 0; m-- {
					monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
						AddDate(0, -m, 0)
					monthTxns, booking := demoMonth(owner, p, i, monthStart)
					txns = append(txns, monthTxns...)

					if booking != nil {
						if err := store.CreateBooking(ctx, booking); err != nil {
							return fmt.Errorf("failed to create booking: %w", err)
						}
						bookingCount++
					}
				}
				_ = bar.Add(1)
			}

			if err := store.CreateTransactions(ctx, txns); err != nil {
				return fmt.Errorf("failed to create transactions: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Seeded %d properties, %d bookings, %d transactions",
				len(properties), bookingCount, len(txns))))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "months of history to generate")

	return cmd
}

func demoProperties(owner string) []model.Property {
	return []model.Property{
		{
			ID:        uuid.NewString(),
			OwnerID:   owner,
			Name:      "Downtown Loft",
			Address:   "42 Main St, Unit 3B",
			Category:  model.PropertyApartment,
			Bedrooms:  2,
			Bathrooms: 1,
		},
		{
			ID:        uuid.NewString(),
			OwnerID:   owner,
			Name:      "Seaside Cottage",
			Address:   "7 Harbor Rd",
			Category:  model.PropertyHouse,
			Bedrooms:  3,
			Bathrooms: 2,
		},
		{
			ID:        uuid.NewString(),
			OwnerID:   owner,
			Name:      "Mountain Cabin",
			Address:   "15 Ridge Trail",
			Category:  model.PropertyHouse,
			Bedrooms:  2,
			Bathrooms: 1.5,
		},
	}
}

// demoMonth builds one month of activity for a property: a completed
// booking with its revenue transaction plus the usual running costs.
// The index staggers amounts so the properties do not look identical.
func demoMonth(owner string, p *model.Property, index int, monthStart time.Time) ([]model.Transaction, *model.Booking) {
	rate := 140.0 + float64(index)*45
	nights := 5 + index

	checkIn := monthStart.AddDate(0, 0, 9)
	checkOut := checkIn.AddDate(0, 0, nights)
	revenue := rate * float64(nights)

	booking := &model.Booking{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		PropertyID:  p.ID,
		GuestName:   "Demo Guest",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      2,
		NightlyRate: rate,
		TotalAmount: revenue,
		Status:      model.BookingCompleted,
	}

	txns := []model.Transaction{
		{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			PropertyID:  p.ID,
			BookingID:   booking.ID,
			Type:        model.TransactionIncome,
			Category:    "Booking Revenue",
			Description: fmt.Sprintf("Demo Guest booking - %d nights", nights),
			Amount:      revenue,
			Date:        checkOut,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			PropertyID:  p.ID,
			Type:        model.TransactionExpense,
			Category:    "Cleaning",
			Description: "Turnover cleaning",
			Amount:      85,
			Date:        checkOut.AddDate(0, 0, 1),
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			PropertyID:  p.ID,
			Type:        model.TransactionExpense,
			Category:    "Utilities",
			Description: "Monthly utilities",
			Amount:      120 + float64(index)*20,
			Date:        monthStart.AddDate(0, 0, 24),
		},
	}

	return txns, booking
}
