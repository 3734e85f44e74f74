package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/export"
	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/report"
	"github.com/bnbmargins/bnbmargins/internal/service"
	"github.com/bnbmargins/bnbmargins/internal/sheets"
)

func reportCmd() *cobra.Command {
	var (
		reportType          string
		format              string
		title               string
		fromDate            string
		toDate              string
		outputDir           string
		properties          []string
		includeCharts       bool
		includeTransactions bool
		includeComparisons  bool
		emptyOnNoData       bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report",
		Long: `Aggregate your transactions into a report and render it.

Formats: pdf, excel, csv write a file into the output directory; sheets
pushes the report to Google Sheets (requires BNB_SHEETS_* credentials).`,
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

			req := model.ReportRequest{
				StartDate:           from,
				EndDate:             to,
				Title:               title,
				Type:                model.ReportType(reportType),
				Format:              model.ReportFormat(format),
				Properties:          properties,
				IncludeCharts:       includeCharts,
				IncludeTransactions: includeTransactions,
				IncludeComparisons:  includeComparisons,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			in, err := loadReportInput(cmd, store, owner)
			if err != nil {
				return err
			}

			policy := report.FallbackSample
			if emptyOnNoData {
				policy = report.FallbackEmpty
			}

			data, err := report.NewEngine(policy).Build(req, in)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			if req.Format == model.FormatSheets {
				return pushToSheets(ctx, data)
			}

			filename := export.Filename(data.Title, req.Format, time.Now())
			path := filepath.Join(outputDir, filename)

			f, err := os.Create(path) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := renderReport(f, req.Format, data); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s", path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reportType, "type", "financial", "report type (financial, performance, tax, custom)")
	cmd.Flags().StringVar(&format, "format", "pdf", "output format (pdf, excel, csv, sheets)")
	cmd.Flags().StringVar(&title, "title", "", "report title (defaults to a title for the type)")
	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outputDir, "output", ".", "directory for the generated file")
	cmd.Flags().StringSliceVar(&properties, "properties", nil, "property names to include (default all)")
	cmd.Flags().BoolVar(&includeCharts, "include-charts", true, "draw charts in PDF output")
	cmd.Flags().BoolVar(&includeTransactions, "include-transactions", false, "include the flat transaction list")
	cmd.Flags().BoolVar(&includeComparisons, "include-comparisons", false, "include the period comparison block")
	cmd.Flags().BoolVar(&emptyOnNoData, "empty-on-no-data", false, "render an empty report instead of sample data when filters match nothing")

	return cmd
}

// loadReportInput fetches the raw rows the engine aggregates.
func loadReportInput(cmd *cobra.Command, store service.Storage, owner string) (report.Input, error) {
	ctx := cmd.Context()

	txns, err := store.ListTransactions(ctx, owner, service.TransactionFilter{})
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	props, err := store.ListProperties(ctx, owner)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load properties: %w", err)
	}

	bookings, err := store.ListBookings(ctx, owner)
	if err != nil {
		return report.Input{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	return report.Input{
		Transactions: txns,
		Properties:   props,
		Bookings:     bookings,
	}, nil
}

func renderReport(w io.Writer, format model.ReportFormat, data *model.ReportData) error {
	switch format {
	case model.FormatPDF:
		return export.NewPDFExporter().Export(w, data)
	case model.FormatExcel:
		return export.NewExcelExporter().Export(w, data)
	case model.FormatCSV:
		return export.NewCSVExporter().Export(w, data)
	default:
		return fmt.Errorf("unsupported file format: %s", format)
	}
}

func pushToSheets(ctx context.Context, data *model.ReportData) error {
	cfg := sheets.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to push report: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Pushed report to Google Sheets"))
	return nil
}
