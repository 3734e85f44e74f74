package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// CSVExporter writes a report as section-delimited UTF-8 text: a header,
// an optional TRANSACTIONS block, then a PROPERTIES block.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export renders the report to w.
func (e *CSVExporter) Export(w io.Writer, data *model.ReportData) error {
	var b strings.Builder

	b.WriteString(data.Title)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Period,%s\n", data.Period)
	b.WriteByte('\n')

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Income,%s\n", amount(data.Summary.TotalIncome))
	fmt.Fprintf(&b, "Total Expenses,%s\n", amount(data.Summary.TotalExpenses))
	fmt.Fprintf(&b, "Net Profit,%s\n", amount(data.Summary.NetProfit))
	fmt.Fprintf(&b, "Profit Margin,%s%%\n", amount(data.Summary.ProfitMargin))
	b.WriteByte('\n')

	if len(data.Transactions) > 0 {
		b.WriteString("TRANSACTIONS\n")
		b.WriteString("Date,Property,Type,Category,Amount,Description\n")
		for _, txn := range data.Transactions {
			fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%q\n",
				txn.Date.Format("2006-01-02"),
				txn.Property,
				txn.Type,
				txn.Category,
				amount(txn.Amount),
				txn.Description)
		}
		b.WriteByte('\n')
	}

	b.WriteString("PROPERTIES\n")
	b.WriteString("Name,Revenue,Expenses,Net Profit,Occupancy,Rating,Reviews\n")
	for _, p := range data.Properties {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s%%,%s,%d\n",
			p.Name,
			amount(p.Income),
			amount(p.Expenses),
			amount(p.Profit),
			amount(p.Occupancy),
			amount(p.Rating),
			p.Reviews)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// amount formats a value without trailing zeros, so 1200 renders as
// "1200" and 93.33 as "93.33".
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
