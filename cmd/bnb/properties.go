package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage rental properties",
		Long:  `List, add, update, and delete the rental properties in your portfolio.`,
	}

	cmd.AddCommand(listPropertiesCmd())
	cmd.AddCommand(addPropertyCmd())
	cmd.AddCommand(updatePropertyCmd())
	cmd.AddCommand(deletePropertyCmd())

	return cmd
}

func listPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all properties",
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

			properties, err := store.ListProperties(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			if len(properties) == 0 {
				fmt.Println(cli.InfoStyle.Render("No properties found. Use 'bnb properties add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "NAME\tCATEGORY\tBEDROOMS\tBATHROOMS\tGUESTS\tADDRESS")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20), strings.Repeat("-", 10), strings.Repeat("-", 8),
				strings.Repeat("-", 9), strings.Repeat("-", 6), strings.Repeat("-", 30))

			for i := range properties {
				p := &properties[i]
				fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%s\n",
					p.Name, p.Category, p.Bedrooms, p.Bathrooms, p.MaxGuests, p.Address)
			}

			return nil
		},
	}
}

func addPropertyCmd() *cobra.Command {
	var (
		address       string
		category      string
		notes         string
		purchaseDate  string
		bedrooms      int
		maxGuests     int
		bathrooms     float64
		purchasePrice float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new property",
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

			property := &model.Property{
				ID:            uuid.NewString(),
				OwnerID:       owner,
				Name:          args[0],
				Address:       address,
				Category:      model.PropertyCategory(category),
				Notes:         notes,
				Bedrooms:      bedrooms,
				Bathrooms:     bathrooms,
				MaxGuests:     maxGuests,
				PurchasePrice: purchasePrice,
			}

			if purchaseDate != "" {
				d, err := parseDateFlag(purchaseDate, "purchase-date")
				if err != nil {
					return err
				}
				property.PurchaseDate = d
			}

			if err := store.CreateProperty(ctx, property); err != nil {
				return fmt.Errorf("failed to create property: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added property %q", property.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&category, "category", "apartment", "property category (apartment, house, condo, townhouse, other)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&purchaseDate, "purchase-date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 1, "number of bedrooms")
	cmd.Flags().Float64Var(&bathrooms, "bathrooms", 1, "number of bathrooms")
	cmd.Flags().IntVar(&maxGuests, "guests", 2, "maximum guests")
	cmd.Flags().Float64Var(&purchasePrice, "purchase-price", 0, "purchase price")

	return cmd
}

func updatePropertyCmd() *cobra.Command {
	var (
		newName string
		address string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update a property",
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

			property, err := store.GetPropertyByName(ctx, args[0], owner)
			if err != nil {
				return fmt.Errorf("failed to find property %q: %w", args[0], err)
			}

			if newName != "" {
				property.Name = newName
			}
			if cmd.Flags().Changed("address") {
				property.Address = address
			}
			if cmd.Flags().Changed("notes") {
				property.Notes = notes
			}

			if err := store.UpdateProperty(ctx, property); err != nil {
				return fmt.Errorf("failed to update property: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated property %q", property.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new property name")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func deletePropertyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a property and its bookings and transactions",
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

			property, err := store.GetPropertyByName(ctx, args[0], owner)
			if err != nil {
				return fmt.Errorf("failed to find property %q: %w", args[0], err)
			}

			if err := store.DeleteProperty(ctx, property.ID, owner); err != nil {
				return fmt.Errorf("failed to delete property: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted property %q", property.Name)))
			return nil
		},
	}
}
