package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// ExcelExporter writes a report as a multi-sheet XLSX workbook. The sheet
// set varies with report type and request flags.
type ExcelExporter struct{}

// NewExcelExporter creates an XLSX exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export renders the workbook to w.
func (e *ExcelExporter) Export(w io.Writer, data *model.ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, data); err != nil {
		return fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := e.writePropertiesSheet(f, data); err != nil {
		return fmt.Errorf("writing properties sheet: %w", err)
	}
	// Tax workbooks skip the monthly series in favor of the category sheet.
	if data.Type != model.ReportTax && len(data.Monthly) > 0 {
		if err := e.writeMonthlySheet(f, data); err != nil {
			return fmt.Errorf("writing monthly sheet: %w", err)
		}
	}
	if len(data.Transactions) > 0 {
		if err := e.writeTransactionsSheet(f, data); err != nil {
			return fmt.Errorf("writing transactions sheet: %w", err)
		}
	}
	if data.Type == model.ReportTax && len(data.TaxCategories) > 0 {
		if err := e.writeTaxSheet(f, data); err != nil {
			return fmt.Errorf("writing tax sheet: %w", err)
		}
	}
	if len(data.Comparison) > 0 {
		if err := e.writeComparisonSheet(f, data); err != nil {
			return fmt.Errorf("writing comparison sheet: %w", err)
		}
	}

	if err := e.applyNumberFormats(f, data); err != nil {
		return fmt.Errorf("applying number formats: %w", err)
	}

	// The default sheet excelize creates is replaced by the summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

const (
	summarySheet      = "Executive Summary"
	propertiesSheet   = "Properties"
	monthlySheet      = "Monthly Performance"
	transactionsSheet = "Transactions"
	taxSheet          = "Tax Categories"
	comparisonSheet   = "Period Comparison"
)

func (e *ExcelExporter) writeSummarySheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 18); err != nil {
		return err
	}

	rows := [][]interface{}{
		{data.Title},
		{"Period", data.Period},
		{},
		{"Total Income", data.Summary.TotalIncome},
		{"Total Expenses", data.Summary.TotalExpenses},
		{"Net Profit", data.Summary.NetProfit},
		{"Profit Margin (%)", data.Summary.ProfitMargin},
	}
	if data.Type == model.ReportTax {
		rows = append(rows, []interface{}{"Total Deductions", data.DeductibleTotal})
	}
	return writeRows(f, summarySheet, 1, rows)
}

func (e *ExcelExporter) writePropertiesSheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(propertiesSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(propertiesSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(propertiesSheet, "B", "H", 14); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Property", "Revenue", "Expenses", "Net Profit", "Margin (%)", "Occupancy (%)", "Rating", "Score"},
	}
	for _, p := range data.Properties {
		rows = append(rows, []interface{}{
			p.Name, p.Income, p.Expenses, p.Profit,
			p.Margin(), p.Occupancy, p.Rating, p.PerformanceScore(),
		})
	}
	return writeRows(f, propertiesSheet, 1, rows)
}

func (e *ExcelExporter) writeMonthlySheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return err
	}
	if err := f.SetColWidth(monthlySheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(monthlySheet, "C", "E", 14); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Month", "Property", "Income", "Expenses", "Profit"},
	}
	for _, m := range data.Monthly {
		rows = append(rows, []interface{}{m.Month, m.Property, m.Income, m.Expenses, m.Profit})
	}
	return writeRows(f, monthlySheet, 1, rows)
}

func (e *ExcelExporter) writeTransactionsSheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(transactionsSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(transactionsSheet, "B", "D", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(transactionsSheet, "E", "E", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(transactionsSheet, "F", "F", 40); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Date", "Property", "Type", "Category", "Amount", "Description"},
	}
	for _, txn := range data.Transactions {
		rows = append(rows, []interface{}{
			txn.Date.Format("2006-01-02"), txn.Property, string(txn.Type),
			txn.Category, txn.Amount, txn.Description,
		})
	}
	return writeRows(f, transactionsSheet, 1, rows)
}

func (e *ExcelExporter) writeTaxSheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(taxSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(taxSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(taxSheet, "B", "C", 14); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Category", "Amount", "Deductible"},
	}
	for _, c := range data.TaxCategories {
		deductible := "No"
		if c.Deductible {
			deductible = "Yes"
		}
		rows = append(rows, []interface{}{c.Name, c.Amount, deductible})
	}
	rows = append(rows, []interface{}{"Total Deductions", data.DeductibleTotal, ""})
	return writeRows(f, taxSheet, 1, rows)
}

func (e *ExcelExporter) writeComparisonSheet(f *excelize.File, data *model.ReportData) error {
	if _, err := f.NewSheet(comparisonSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(comparisonSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(comparisonSheet, "B", "D", 14); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Current", "Previous", "Change (%)"},
	}
	for _, row := range data.Comparison {
		rows = append(rows, []interface{}{row.Metric, row.Current, row.Previous, row.Change})
	}
	return writeRows(f, comparisonSheet, 1, rows)
}

// applyNumberFormats styles the money and percentage columns of every
// sheet that was written. Percentage cells already hold the scaled value
// (93.33 means 93.33%), so a literal suffix format is used rather than
// the spreadsheet percent type, which would multiply by 100 again.
func (e *ExcelExporter) applyNumberFormats(f *excelize.File, data *model.ReportData) error {
	currencyFmt := "$#,##0.00"
	percentFmt := `0.00"%"`

	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return err
	}
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(summarySheet, "B4", "B6", currency); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "B7", "B7", percent); err != nil {
		return err
	}
	if data.Type == model.ReportTax {
		if err := f.SetCellStyle(summarySheet, "B8", "B8", currency); err != nil {
			return err
		}
	}

	if n := len(data.Properties); n > 0 {
		if err := f.SetCellStyle(propertiesSheet, "B2", fmt.Sprintf("D%d", n+1), currency); err != nil {
			return err
		}
		if err := f.SetCellStyle(propertiesSheet, "E2", fmt.Sprintf("F%d", n+1), percent); err != nil {
			return err
		}
	}

	if n := len(data.Monthly); data.Type != model.ReportTax && n > 0 {
		if err := f.SetCellStyle(monthlySheet, "C2", fmt.Sprintf("E%d", n+1), currency); err != nil {
			return err
		}
	}

	if n := len(data.Transactions); n > 0 {
		if err := f.SetCellStyle(transactionsSheet, "E2", fmt.Sprintf("E%d", n+1), currency); err != nil {
			return err
		}
	}

	if n := len(data.TaxCategories); data.Type == model.ReportTax && n > 0 {
		if err := f.SetCellStyle(taxSheet, "B2", fmt.Sprintf("B%d", n+2), currency); err != nil {
			return err
		}
	}

	if n := len(data.Comparison); n > 0 {
		if err := f.SetCellStyle(comparisonSheet, "B2", fmt.Sprintf("C%d", n+1), currency); err != nil {
			return err
		}
		if err := f.SetCellStyle(comparisonSheet, "D2", fmt.Sprintf("D%d", n+1), percent); err != nil {
			return err
		}
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
