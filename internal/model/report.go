package model

import (
	"fmt"
	"time"
)

// ReportType selects which body a generated report carries.
type ReportType string

const (
	// ReportFinancial is the income/expense/profit report.
	ReportFinancial ReportType = "financial"
	// ReportPerformance ranks properties by KPI.
	ReportPerformance ReportType = "performance"
	// ReportTax summarizes deductible expense categories.
	ReportTax ReportType = "tax"
	// ReportCustom reuses the financial body with caller-chosen flags.
	ReportCustom ReportType = "custom"
)

// ReportFormat selects the output renderer.
type ReportFormat string

const (
	// FormatPDF renders a paginated PDF document.
	FormatPDF ReportFormat = "pdf"
	// FormatExcel renders a multi-sheet XLSX workbook.
	FormatExcel ReportFormat = "excel"
	// FormatCSV renders flat delimited text.
	FormatCSV ReportFormat = "csv"
	// FormatSheets pushes the report to a Google Sheets spreadsheet.
	FormatSheets ReportFormat = "sheets"
)

// ReportRequest is the ephemeral descriptor of what a report should
// contain. It is never persisted.
type ReportRequest struct {
	StartDate           *time.Time
	EndDate             *time.Time
	Title               string
	Type                ReportType
	Format              ReportFormat
	Properties          []string // property names; empty means all
	IncludeCharts       bool
	IncludeTransactions bool
	IncludeComparisons  bool
}

// Validate checks the request's type and format.
func (r *ReportRequest) Validate() error {
	switch r.Type {
	case ReportFinancial, ReportPerformance, ReportTax, ReportCustom:
	default:
		return fmt.Errorf("invalid report type: %s", r.Type)
	}
	switch r.Format {
	case FormatPDF, FormatExcel, FormatCSV, FormatSheets:
	default:
		return fmt.Errorf("invalid report format: %s", r.Format)
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			r.EndDate.Format("2006-01-02"), r.StartDate.Format("2006-01-02"))
	}
	return nil
}

// Period returns a human-readable label for the requested date range.
func (r *ReportRequest) Period() string {
	switch {
	case r.StartDate != nil && r.EndDate != nil:
		return fmt.Sprintf("%s - %s",
			r.StartDate.Format("Jan 2, 2006"), r.EndDate.Format("Jan 2, 2006"))
	case r.StartDate != nil:
		return fmt.Sprintf("From %s", r.StartDate.Format("Jan 2, 2006"))
	case r.EndDate != nil:
		return fmt.Sprintf("Through %s", r.EndDate.Format("Jan 2, 2006"))
	default:
		return "All Time"
	}
}

// ReportSummary holds the headline totals of a report.
type ReportSummary struct {
	TotalIncome   float64
	TotalExpenses float64
	NetProfit     float64
	ProfitMargin  float64 // percent; 0 when TotalIncome is 0
}

// PropertyReport is the per-property rollup.
type PropertyReport struct {
	Name      string
	Income    float64
	Expenses  float64
	Profit    float64
	Occupancy float64 // percent of nights booked in the period
	Rating    float64
	Reviews   int
}

// Margin returns the property's profit margin in percent.
func (p *PropertyReport) Margin() float64 {
	if p.Income == 0 {
		return 0
	}
	return p.Profit / p.Income * 100
}

// PerformanceScore is the weighted KPI used to rank properties:
// occupancy x0.4 + rating x20 x0.3 + margin x0.3.
func (p *PropertyReport) PerformanceScore() float64 {
	return p.Occupancy*0.4 + p.Rating*20*0.3 + p.Margin()*0.3
}

// MonthlyReport is one bucket of the monthly time series, keyed by
// (month label, property).
type MonthlyReport struct {
	Month    string // e.g. "Jan 2024"
	Property string
	Income   float64
	Expenses float64
	Profit   float64
}

// TaxCategory is one entry of the curated deductible-category list.
type TaxCategory struct {
	Name       string
	Amount     float64
	Deductible bool
}

// ComparisonRow compares one metric between the current and previous
// period. Change is a percentage; a zero previous value yields 0.
type ComparisonRow struct {
	Metric   string
	Current  float64
	Previous float64
	Change   float64
}

// ReportTransaction is a transaction row denormalized for rendering: the
// property reference is resolved to its display name.
type ReportTransaction struct {
	Date        time.Time
	Property    string
	Type        TransactionType
	Category    string
	Description string
	Amount      float64
}

// ReportData is the ephemeral aggregated context consumed by the
// exporters. It is derived from raw rows and never stored.
type ReportData struct {
	Summary         ReportSummary
	Period          string
	Title           string
	Type            ReportType
	Properties      []PropertyReport
	Monthly         []MonthlyReport
	TaxCategories   []TaxCategory
	Comparison      []ComparisonRow
	Transactions    []ReportTransaction
	DeductibleTotal float64
	IncludeCharts   bool
}
