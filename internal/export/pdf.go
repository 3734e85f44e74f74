package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// Page geometry in millimeters for an A4 portrait page.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Brand palette.
var (
	brandColor   = rgb{41, 128, 185}
	incomeColor  = rgb{39, 174, 96}
	expenseColor = rgb{192, 57, 43}
	grayText     = rgb{100, 100, 100}
	lightFill    = rgb{236, 240, 241}
)

type rgb struct{ r, g, b int }

// PDFExporter writes a report as a paginated PDF. Layout flows top to
// bottom through a cursor; sections request space before drawing and a
// page break happens when the remaining space is too small.
type PDFExporter struct{}

// NewPDFExporter creates a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export renders the document to w.
func (e *PDFExporter) Export(w io.Writer, data *model.ReportData) error {
	doc := newPDFDoc()
	doc.header(data.Title, data.Period)
	doc.summaryCard(data.Summary)

	switch data.Type {
	case model.ReportPerformance:
		doc.performanceBody(data)
	case model.ReportTax:
		doc.taxBody(data)
	default:
		doc.financialBody(data)
	}

	if data.IncludeCharts && len(data.Monthly) > 0 {
		doc.monthlyCharts(data.Monthly)
	}
	if len(data.Comparison) > 0 {
		doc.comparisonTable(data.Comparison)
	}
	if len(data.Transactions) > 0 {
		doc.transactionList(data.Transactions)
	}

	if err := doc.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

type pdfDoc struct {
	pdf *gofpdf.Fpdf
	y   float64
}

func newPDFDoc() *pdfDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &pdfDoc{pdf: pdf, y: marginTop}
}

// ensure breaks to a new page when fewer than height millimeters remain.
func (d *pdfDoc) ensure(height float64) {
	if d.y+height > pageHeight-marginTop {
		d.pdf.AddPage()
		d.y = marginTop
	}
}

func (d *pdfDoc) setFill(c rgb)   { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *pdfDoc) setText(c rgb)   { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *pdfDoc) setDraw(c rgb)   { d.pdf.SetDrawColor(c.r, c.g, c.b) }
func (d *pdfDoc) resetTextColor() { d.pdf.SetTextColor(0, 0, 0) }

// header draws the branded title bar at the top of the first page.
func (d *pdfDoc) header(title, period string) {
	d.setFill(brandColor)
	d.pdf.Rect(0, 0, pageWidth, 28, "F")

	d.pdf.SetFont("Helvetica", "B", 18)
	d.setText(rgb{255, 255, 255})
	d.pdf.Text(marginLeft, 13, title)

	if period != "" {
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.Text(marginLeft, 21, period)
	}

	d.resetTextColor()
	d.y = 36
}

// summaryCard draws the headline totals as a two-column grid.
func (d *pdfDoc) summaryCard(s model.ReportSummary) {
	const cardHeight = 32.0
	d.ensure(cardHeight + 6)

	d.setFill(lightFill)
	d.pdf.Rect(marginLeft, d.y, contentWidth, cardHeight, "F")

	cells := []struct {
		label string
		value string
		color rgb
	}{
		{"Total Revenue", money(s.TotalIncome), incomeColor},
		{"Total Expenses", money(s.TotalExpenses), expenseColor},
		{"Net Profit", money(s.NetProfit), profitColor(s.NetProfit)},
		{"Profit Margin", fmt.Sprintf("%.1f%%", s.ProfitMargin), grayText},
	}

	cellW := contentWidth / 2
	for i, c := range cells {
		x := marginLeft + 6 + float64(i%2)*cellW
		y := d.y + 10 + float64(i/2)*14

		d.pdf.SetFont("Helvetica", "", 8)
		d.setText(grayText)
		d.pdf.Text(x, y, c.label)

		d.pdf.SetFont("Helvetica", "B", 12)
		d.setText(c.color)
		d.pdf.Text(x, y+6, c.value)
	}

	d.resetTextColor()
	d.y += cardHeight + 8
}

func (d *pdfDoc) sectionHeader(title string) {
	d.ensure(14)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.setText(brandColor)
	d.pdf.Text(marginLeft, d.y+5, title)
	d.setDraw(brandColor)
	d.pdf.Line(marginLeft, d.y+7, marginLeft+contentWidth, d.y+7)
	d.resetTextColor()
	d.y += 12
}

// financialBody draws the P&L style body with one card per property.
func (d *pdfDoc) financialBody(data *model.ReportData) {
	if len(data.Properties) == 0 {
		return
	}
	d.sectionHeader("Property Breakdown")
	for i := range data.Properties {
		d.propertyCard(&data.Properties[i])
	}
}

func (d *pdfDoc) propertyCard(p *model.PropertyReport) {
	const cardHeight = 22.0
	d.ensure(cardHeight + 4)

	d.setDraw(rgb{200, 200, 200})
	d.pdf.Rect(marginLeft, d.y, contentWidth, cardHeight, "D")

	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.Text(marginLeft+4, d.y+7, p.Name)

	d.pdf.SetFont("Helvetica", "", 9)
	d.setText(grayText)
	d.pdf.Text(marginLeft+4, d.y+16,
		fmt.Sprintf("Revenue %s    Expenses %s    Occupancy %.0f%%    Rating %.1f",
			money(p.Income), money(p.Expenses), p.Occupancy, p.Rating))

	d.pdf.SetFont("Helvetica", "B", 11)
	d.setText(profitColor(p.Profit))
	profit := money(p.Profit)
	w := d.pdf.GetStringWidth(profit)
	d.pdf.Text(marginLeft+contentWidth-4-w, d.y+12, profit)

	d.resetTextColor()
	d.y += cardHeight + 4
}

// performanceBody ranks properties by weighted score.
func (d *pdfDoc) performanceBody(data *model.ReportData) {
	if len(data.Properties) == 0 {
		return
	}
	d.sectionHeader("Property Rankings")

	rows := make([][]string, 0, len(data.Properties))
	for i := range data.Properties {
		p := &data.Properties[i]
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%.0f%%", p.Occupancy),
			fmt.Sprintf("%.1f", p.Rating),
			fmt.Sprintf("%.1f%%", p.Margin()),
			fmt.Sprintf("%.1f", p.PerformanceScore()),
		})
	}
	d.table([]string{"Property", "Occupancy", "Rating", "Margin", "Score"},
		[]float64{70, 27, 27, 28, 28}, rows, nil)
}

// taxBody draws the income summary and the deductible expense list.
func (d *pdfDoc) taxBody(data *model.ReportData) {
	d.sectionHeader("Deductible Expenses")

	rows := make([][]string, 0, len(data.TaxCategories)+1)
	for _, c := range data.TaxCategories {
		if !c.Deductible {
			continue
		}
		rows = append(rows, []string{c.Name, money(c.Amount)})
	}
	rows = append(rows, []string{"Total Deductions", money(data.DeductibleTotal)})
	d.table([]string{"Category", "Amount"}, []float64{120, 60}, rows, nil)
}

// monthlyCharts draws the bar, pie and line charts for the monthly series.
func (d *pdfDoc) monthlyCharts(monthly []model.MonthlyReport) {
	// Collapse property buckets to one point per month for charting.
	type point struct {
		label  string
		income float64
		profit float64
	}
	var points []point
	index := make(map[string]int)
	for _, m := range monthly {
		i, ok := index[m.Month]
		if !ok {
			i = len(points)
			index[m.Month] = i
			points = append(points, point{label: m.Month})
		}
		points[i].income += m.Income
		points[i].profit += m.Profit
	}

	labels := make([]string, len(points))
	incomes := make([]float64, len(points))
	profits := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.label
		incomes[i] = p.income
		profits[i] = p.profit
	}

	d.sectionHeader("Monthly Revenue")
	d.barChart(labels, incomes)

	d.sectionHeader("Revenue Share by Month")
	d.pieChart(labels, incomes)

	d.sectionHeader("Profit Trend")
	d.lineChart(labels, profits)
}

// comparisonTable draws the period-over-period table with colored deltas.
// An expense decrease counts as favorable.
func (d *pdfDoc) comparisonTable(rows []model.ComparisonRow) {
	d.sectionHeader("Period Comparison")

	body := make([][]string, 0, len(rows))
	colors := make([]rgb, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{
			row.Metric,
			money(row.Current),
			money(row.Previous),
			fmt.Sprintf("%+.1f%%", row.Change),
		})
		favorable := row.Change >= 0
		if row.Metric == "Expenses" {
			favorable = row.Change <= 0
		}
		if favorable {
			colors = append(colors, incomeColor)
		} else {
			colors = append(colors, expenseColor)
		}
	}
	d.table([]string{"Metric", "Current", "Previous", "Change"},
		[]float64{60, 40, 40, 40}, body, colors)
}

// transactionList draws the flat transaction table.
func (d *pdfDoc) transactionList(txns []model.ReportTransaction) {
	d.sectionHeader("Transactions")

	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		amount := money(txn.Amount)
		if txn.Type == model.TransactionExpense {
			amount = "-" + amount
		}
		rows = append(rows, []string{
			txn.Date.Format("2006-01-02"),
			txn.Property,
			txn.Category,
			amount,
		})
	}
	d.table([]string{"Date", "Property", "Category", "Amount"},
		[]float64{28, 62, 50, 40}, rows, nil)
}

// table draws a header row plus body rows, breaking pages between rows.
// lastColColors optionally colors the final cell of each row.
func (d *pdfDoc) table(headers []string, widths []float64, rows [][]string, lastColColors []rgb) {
	const rowHeight = 7.0

	drawHeader := func() {
		d.setFill(brandColor)
		d.setText(rgb{255, 255, 255})
		d.pdf.SetFont("Helvetica", "B", 9)
		x := marginLeft
		for i, h := range headers {
			d.pdf.Rect(x, d.y, widths[i], rowHeight, "F")
			d.pdf.Text(x+2, d.y+5, h)
			x += widths[i]
		}
		d.resetTextColor()
		d.y += rowHeight
	}

	d.ensure(rowHeight * 2)
	drawHeader()

	d.pdf.SetFont("Helvetica", "", 9)
	for rowIdx, row := range rows {
		if d.y+rowHeight > pageHeight-marginTop {
			d.pdf.AddPage()
			d.y = marginTop
			drawHeader()
			d.pdf.SetFont("Helvetica", "", 9)
		}
		if rowIdx%2 == 1 {
			d.setFill(lightFill)
			d.pdf.Rect(marginLeft, d.y, sum(widths), rowHeight, "F")
		}
		x := marginLeft
		for i, cell := range row {
			if i == len(row)-1 && lastColColors != nil {
				d.setText(lastColColors[rowIdx])
			}
			d.pdf.Text(x+2, d.y+5, cell)
			x += widths[i]
		}
		d.resetTextColor()
		d.y += rowHeight
	}
	d.y += 6
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func profitColor(v float64) rgb {
	if v < 0 {
		return expenseColor
	}
	return incomeColor
}

func sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}
