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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List, add, and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(suggestCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
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

			categories, err := store.ListCategories(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'bnb categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "NAME\tTYPE\tCOLOR")
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 20), strings.Repeat("-", 7), strings.Repeat("-", 7))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", cat.Name, cat.Type, cat.Color)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		catType string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
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

			category := &model.Category{
				ID:      uuid.NewString(),
				OwnerID: owner,
				Name:    args[0],
				Type:    model.TransactionType(catType),
				Color:   color,
			}

			if err := store.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s category %q", category.Type, category.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&catType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&color, "color", "#5DADE2", "display color (hex)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
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

			category, err := store.GetCategoryByName(ctx, args[0], owner)
			if err != nil {
				return fmt.Errorf("failed to find category %q: %w", args[0], err)
			}

			if err := store.DeleteCategory(ctx, category.ID, owner); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", category.Name)))
			return nil
		},
	}
}

func suggestCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Show the suggested category names",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.BoldStyle.Render("Income"))
			for _, name := range model.SuggestedIncomeCategories {
				fmt.Println("  " + name)
			}
			fmt.Println(cli.BoldStyle.Render("Expenses"))
			for _, name := range model.SuggestedExpenseCategories {
				fmt.Println("  " + name)
			}
		},
	}
}
