// Package dashboard builds the at-a-glance summary shown by the dashboard
// command. It reuses the report engine's rollups so the numbers here always
// match a generated report over the same rows.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/cli"
	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/report"
)

// Aggregates holds the computed dashboard numbers.
type Aggregates struct {
	Summary    model.ReportSummary
	Properties []model.PropertyReport
	Monthly    []model.MonthlyReport
}

// Compute derives the dashboard aggregates from raw rows through the same
// functions the report path uses.
func Compute(txns []model.Transaction, props []model.Property, bookings []model.Booking, from, to *time.Time) Aggregates {
	filtered := report.FilterByDateRange(txns, from, to)

	names := make(map[string]string, len(props))
	for _, p := range props {
		names[p.ID] = p.Name
	}

	return Aggregates{
		Summary:    report.Summarize(filtered),
		Properties: report.PropertyRollup(filtered, props, bookings, from, to),
		Monthly:    report.MonthlySeries(filtered, names),
	}
}

// Render formats the aggregates as a styled terminal box.
func Render(a Aggregates) string {
	var b strings.Builder

	b.WriteString(cli.BoldStyle.Render("Portfolio"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  Income    %s\n", cli.StyleSuccess(money(a.Summary.TotalIncome)))
	fmt.Fprintf(&b, "  Expenses  %s\n", cli.StyleError(money(a.Summary.TotalExpenses)))
	fmt.Fprintf(&b, "  Profit    %s\n", profitStyle(a.Summary.NetProfit))
	fmt.Fprintf(&b, "  Margin    %.1f%%\n", a.Summary.ProfitMargin)

	if len(a.Properties) > 0 {
		b.WriteByte('\n')
		b.WriteString(cli.BoldStyle.Render("Top Properties"))
		b.WriteByte('\n')
		top := a.Properties
		if len(top) > 5 {
			top = top[:5]
		}
		for _, p := range top {
			fmt.Fprintf(&b, "  %-28s %s  (%.0f%% occupied)\n",
				p.Name, profitStyle(p.Profit), p.Occupancy)
		}
	}

	if len(a.Monthly) > 0 {
		b.WriteByte('\n')
		b.WriteString(cli.BoldStyle.Render("Monthly Trend"))
		b.WriteByte('\n')
		for _, line := range trendLines(a.Monthly) {
			b.WriteString("  " + line + "\n")
		}
	}

	return cli.RenderBox(cli.HouseIcon+" BnbMargins", strings.TrimRight(b.String(), "\n"))
}

// trendLines collapses the property buckets into one bar per month.
func trendLines(monthly []model.MonthlyReport) []string {
	type monthTotal struct {
		label  string
		profit float64
	}
	var order []monthTotal
	index := make(map[string]int)
	for _, m := range monthly {
		i, ok := index[m.Month]
		if !ok {
			i = len(order)
			index[m.Month] = i
			order = append(order, monthTotal{label: m.Month})
		}
		order[i].profit += m.Profit
	}

	var max float64
	for _, m := range order {
		if m.profit > max {
			max = m.profit
		}
	}

	lines := make([]string, 0, len(order))
	for _, m := range order {
		bar := ""
		if max > 0 && m.profit > 0 {
			width := int(m.profit / max * 20)
			bar = strings.Repeat("█", width)
		}
		lines = append(lines, fmt.Sprintf("%-9s %-20s %s", m.label, bar, money(m.profit)))
	}
	return lines
}

func profitStyle(v float64) string {
	if v < 0 {
		return cli.StyleError(money(v))
	}
	return cli.StyleSuccess(money(v))
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
