package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/dashboard"
	"github.com/bnbmargins/bnbmargins/internal/service"
)

func dashboardCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a portfolio overview in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			from, err := parseDateFlag(fromDate, "from")
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toDate, "to")
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txns, err := store.ListTransactions(ctx, owner, service.TransactionFilter{})
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			props, err := store.ListProperties(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to load properties: %w", err)
			}
			bookings, err := store.ListBookings(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to load bookings: %w", err)
			}

			a := dashboard.Compute(txns, props, bookings, from, to)
			fmt.Println(dashboard.Render(a))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date, inclusive (YYYY-MM-DD)")

	return cmd
}
