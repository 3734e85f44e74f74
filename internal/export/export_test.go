package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

func testReportData() *model.ReportData {
	return &model.ReportData{
		Title:         "Financial Report",
		Type:          model.ReportFinancial,
		Period:        "Jan 1, 2024 - Mar 31, 2024",
		IncludeCharts: true,
		Summary: model.ReportSummary{
			TotalIncome:   1200,
			TotalExpenses: 80,
			NetProfit:     1120,
			ProfitMargin:  93.33,
		},
		Properties: []model.PropertyReport{
			{Name: "Downtown Loft", Income: 1200, Expenses: 80, Profit: 1120, Occupancy: 75, Rating: 4.5, Reviews: 12},
		},
		Monthly: []model.MonthlyReport{
			{Month: "Jan 2024", Property: "Downtown Loft", Income: 1200, Expenses: 80, Profit: 1120},
		},
		Transactions: []model.ReportTransaction{
			{
				Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
				Property:    "Downtown Loft",
				Type:        model.TransactionIncome,
				Category:    "Booking Revenue",
				Description: "Airbnb booking - 5 nights",
				Amount:      1200,
			},
		},
		Comparison: []model.ComparisonRow{
			{Metric: "Income", Current: 1200, Previous: 1000, Change: 20},
			{Metric: "Expenses", Current: 80, Previous: 100, Change: -20},
			{Metric: "Net Profit", Current: 1120, Previous: 900, Change: 24.44},
		},
	}
}

func TestFilename(t *testing.T) {
	generated := time.Date(2024, time.March, 31, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		title  string
		format model.ReportFormat
		want   string
	}{
		{"Financial Report", model.FormatPDF, "Financial_Report_2024-03-31.pdf"},
		{"Q1 Tax Summary", model.FormatExcel, "Q1_Tax_Summary_2024-03-31.xlsx"},
		{"Financial Report", model.FormatCSV, "Financial_Report_2024-03-31.csv"},
		{"", model.FormatCSV, "Report_2024-03-31.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.title, tt.format, generated))
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(&buf, testReportData()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Financial Report\n"))
	assert.Contains(t, out, "Period,Jan 1, 2024 - Mar 31, 2024\n")
	assert.Contains(t, out, "Total Income,1200\n")
	assert.Contains(t, out, "Profit Margin,93.33%\n")

	// Transaction rows quote only the description and render amounts
	// without trailing zeros.
	assert.Contains(t, out,
		`2024-01-15,Downtown Loft,income,Booking Revenue,1200,"Airbnb booking - 5 nights"`)

	assert.Contains(t, out, "PROPERTIES\n")
	assert.Contains(t, out, "Downtown Loft,1200,80,1120,75%,4.5,12\n")
}

func TestCSVExportWithoutTransactions(t *testing.T) {
	data := testReportData()
	data.Transactions = nil

	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(&buf, data))

	assert.NotContains(t, buf.String(), "TRANSACTIONS")
	assert.Contains(t, buf.String(), "PROPERTIES")
}

func TestExcelExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Export(&buf, testReportData()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Executive Summary")
	assert.Contains(t, sheets, "Properties")
	assert.Contains(t, sheets, "Monthly Performance")
	assert.Contains(t, sheets, "Transactions")
	assert.Contains(t, sheets, "Period Comparison")
	assert.NotContains(t, sheets, "Tax Categories")
	assert.NotContains(t, sheets, "Sheet1")

	name, err := f.GetCellValue("Properties", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Downtown Loft", name)

	// Money and percentage cells carry number formats, so the rendered
	// values come back formatted.
	income, err := f.GetCellValue("Executive Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "$1,200.00", income)

	margin, err := f.GetCellValue("Executive Summary", "B7")
	require.NoError(t, err)
	assert.Equal(t, "93.33%", margin)
}

func TestExcelExportTaxReport(t *testing.T) {
	data := testReportData()
	data.Type = model.ReportTax
	data.TaxCategories = []model.TaxCategory{
		{Name: "Utilities", Amount: 100, Deductible: true},
		{Name: "Principal Payments", Amount: 900, Deductible: false},
	}
	data.DeductibleTotal = 100

	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Export(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Tax Categories")

	// Tax workbooks replace the monthly series with the category sheet,
	// even when monthly data is present.
	assert.NotContains(t, sheets, "Monthly Performance")

	// The trailing row carries the deductible total.
	label, err := f.GetCellValue("Tax Categories", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total Deductions", label)
}

func TestPDFExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter().Export(&buf, testReportData()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestPDFExportReportTypes(t *testing.T) {
	for _, typ := range []model.ReportType{
		model.ReportFinancial, model.ReportPerformance, model.ReportTax, model.ReportCustom,
	} {
		t.Run(string(typ), func(t *testing.T) {
			data := testReportData()
			data.Type = typ
			if typ == model.ReportTax {
				data.TaxCategories = []model.TaxCategory{
					{Name: "Utilities", Amount: 100, Deductible: true},
				}
				data.DeductibleTotal = 100
			}

			var buf bytes.Buffer
			require.NoError(t, NewPDFExporter().Export(&buf, data))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
		})
	}
}

func TestPDFExportChartsToggle(t *testing.T) {
	render := func(charts bool) []byte {
		data := testReportData()
		data.IncludeCharts = charts

		var buf bytes.Buffer
		require.NoError(t, NewPDFExporter().Export(&buf, data))
		return buf.Bytes()
	}

	withCharts := render(true)
	withoutCharts := render(false)

	// Chart geometry adds content, so disabling charts must shrink the
	// document.
	assert.Greater(t, len(withCharts), len(withoutCharts))
}

func TestPDFExportDegenerateCharts(t *testing.T) {
	// Zero totals and empty series must not panic or emit bad geometry.
	data := &model.ReportData{
		Title:         "Empty Report",
		Type:          model.ReportFinancial,
		Period:        "All Time",
		IncludeCharts: true,
		Monthly:       []model.MonthlyReport{{Month: "Jan 2024", Property: "Loft"}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter().Export(&buf, data))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFExportManyTransactionsPaginates(t *testing.T) {
	data := testReportData()
	for i := 0; i < 120; i++ {
		data.Transactions = append(data.Transactions, model.ReportTransaction{
			Date:     time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i%28),
			Property: "Downtown Loft",
			Type:     model.TransactionExpense,
			Category: "Cleaning",
			Amount:   45,
		})
	}

	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter().Export(&buf, data))
	// Multiple pages show up as multiple /Page objects.
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Page")), 1)
}
