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
	"github.com/bnbmargins/bnbmargins/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage income and expense transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		propertyName string
		txnType      string
		fromDate     string
		toDate       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
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

			filter := service.TransactionFilter{
				StartDate: from,
				EndDate:   to,
				Type:      model.TransactionType(txnType),
			}
			if propertyName != "" {
				property, err := store.GetPropertyByName(ctx, propertyName, owner)
				if err != nil {
					return fmt.Errorf("failed to find property %q: %w", propertyName, err)
				}
				filter.PropertyID = property.ID
			}

			txns, err := store.ListTransactions(ctx, owner, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			properties, err := store.ListProperties(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}
			names := make(map[string]string, len(properties))
			for _, p := range properties {
				names[p.ID] = p.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tDATE\tPROPERTY\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8), strings.Repeat("-", 10), strings.Repeat("-", 18),
				strings.Repeat("-", 7), strings.Repeat("-", 16), strings.Repeat("-", 9),
				strings.Repeat("-", 30))

			var total float64
			for i := range txns {
				txn := &txns[i]
				amount := txn.Amount
				if txn.Type == model.TransactionExpense {
					amount = -amount
				}
				total += amount
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t$%.2f\t%s\n",
					shortID(txn.ID), txn.Date.Format("2006-01-02"), names[txn.PropertyID],
					txn.Type, txn.Category, txn.Amount, txn.Description)
			}
			fmt.Fprintf(w, "\t\t\t\t\tNet: $%.2f\t\n", total)

			return nil
		},
	}

	cmd.Flags().StringVar(&propertyName, "property", "", "only transactions for this property")
	cmd.Flags().StringVar(&txnType, "type", "", "only this type (income, expense)")
	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date, inclusive (YYYY-MM-DD)")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		propertyName string
		txnType      string
		category     string
		description  string
		date         string
		amount       float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			when, err := requireDateFlag(date, "date")
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

			txn := &model.Transaction{
				ID:          uuid.NewString(),
				OwnerID:     owner,
				PropertyID:  property.ID,
				Type:        model.TransactionType(txnType),
				Category:    category,
				Description: description,
				Amount:      amount,
				Date:        when,
			}

			if err := store.CreateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added %s of $%.2f for %q", txn.Type, txn.Amount, property.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&propertyName, "property", "", "property name (required)")
	cmd.Flags().StringVar(&txnType, "type", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVar(&category, "category", "", "category name (required)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount, always positive")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
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

			if err := store.DeleteTransaction(ctx, args[0], owner); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Deleted transaction"))
			return nil
		},
	}
}
