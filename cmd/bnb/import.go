package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		propertyName string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Every imported transaction is assigned to the property given with --property.
Positive amounts become income, negative amounts become expenses, and a
category is suggested from the transaction description.

Examples:
  # Import a single file
  bnb import-ofx --property "Downtown Loft" ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  bnb import-ofx --property "Downtown Loft" ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			owner, err := currentOwner()
			if err != nil {
				return err
			}

			// Expand globs and collect all files.
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}
			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			prop, err := store.GetPropertyByName(ctx, propertyName, owner)
			if err != nil {
				return fmt.Errorf("unknown property %q: %w", propertyName, err)
			}

			parser := ofx.NewParser()
			var allTransactions []model.Transaction

			bar := progressbar.NewOptions(len(allFiles),
				progressbar.OptionSetDescription("Parsing files"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			for _, filePath := range allFiles {
				f, err := os.Open(filePath) // #nosec G304
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				transactions, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				for i := range transactions {
					transactions[i].OwnerID = owner
					transactions[i].PropertyID = prop.ID
				}

				slog.Info("Parsed file",
					"file", filepath.Base(filePath),
					"transactions", len(transactions))
				allTransactions = append(allTransactions, transactions...)
				_ = bar.Add(1)
			}

			if len(allTransactions) == 0 {
				slog.Warn("No transactions found in any file")
				return nil
			}

			summarizeImport(allTransactions)

			if dryRun {
				fmt.Println(cli.FormatInfo("Dry run complete, nothing saved"))
				return nil
			}

			if err := store.CreateTransactions(ctx, allTransactions); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d transactions for %s", len(allTransactions), prop.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&propertyName, "property", "", "property the transactions belong to")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}

func summarizeImport(txns []model.Transaction) {
	var income, expenses float64
	categories := make(map[string]int)
	for _, t := range txns {
		switch t.Type {
		case model.TransactionIncome:
			income += t.Amount
		case model.TransactionExpense:
			expenses += t.Amount
		}
		categories[t.Category]++
	}

	fmt.Printf("\nParsed %d transactions: $%.2f income, $%.2f expenses\n",
		len(txns), income, expenses)
	fmt.Println("Categories:")
	for category, count := range categories {
		fmt.Printf("  - %s (%d)\n", category, count)
	}
}
