// Package export renders aggregated report data to PDF, XLSX and CSV files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// Extension returns the file extension for a report format.
func Extension(format model.ReportFormat) string {
	switch format {
	case model.FormatPDF:
		return "pdf"
	case model.FormatExcel:
		return "xlsx"
	case model.FormatCSV:
		return "csv"
	}
	return "dat"
}

// Filename builds the output filename from the report title and the
// generation date: spaces become underscores, the date is ISO formatted.
func Filename(title string, format model.ReportFormat, generated time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if name == "" {
		name = "Report"
	}
	return fmt.Sprintf("%s_%s.%s", name, generated.Format("2006-01-02"), Extension(format))
}
