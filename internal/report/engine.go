// Package report implements the aggregation engine that turns raw rows
// into the ephemeral report context consumed by the exporters.
package report

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/model"
)

// FallbackPolicy decides what the engine does when filtering yields no
// transactions, no properties, or no monthly buckets. Production behavior
// substitutes the demo dataset so a generated report is never visibly
// empty; callers that prefer honest empty output choose FallbackEmpty.
type FallbackPolicy int

const (
	// FallbackSample substitutes the fixed sample dataset on degenerate input.
	FallbackSample FallbackPolicy = iota
	// FallbackEmpty renders whatever the filters produced, even if empty.
	FallbackEmpty
)

// Placeholder metrics used when bookings are unavailable for a property.
const (
	defaultOccupancy = 75.0
	defaultRating    = 4.5
)

// Input carries the raw rows the engine aggregates. Bookings are optional;
// when present they drive real occupancy figures.
type Input struct {
	Transactions []model.Transaction
	Properties   []model.Property
	Bookings     []model.Booking
}

// Engine computes an aggregated report context from raw rows.
type Engine struct {
	fallback FallbackPolicy
}

// NewEngine creates an engine with the given degenerate-input policy.
func NewEngine(policy FallbackPolicy) *Engine {
	return &Engine{fallback: policy}
}

// Build aggregates the input into a ReportData for the request.
func (e *Engine) Build(req model.ReportRequest, in Input) (*model.ReportData, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	txns := FilterByDateRange(in.Transactions, req.StartDate, req.EndDate)
	props := FilterProperties(in.Properties, req.Properties)
	txns = filterByProperties(txns, props, req.Properties)

	if e.degenerate(txns, props) && e.fallback == FallbackSample {
		slog.Warn("report filters matched no data, substituting sample dataset",
			"type", req.Type, "period", req.Period())
		sample := SampleInput()
		txns = sample.Transactions
		props = sample.Properties
		in.Bookings = sample.Bookings
	}

	data := &model.ReportData{
		Title:         req.Title,
		Type:          req.Type,
		Period:        req.Period(),
		Summary:       Summarize(txns),
		IncludeCharts: req.IncludeCharts,
	}
	if data.Title == "" {
		data.Title = DefaultTitle(req.Type)
	}

	nameOf := propertyNames(props)
	data.Properties = PropertyRollup(txns, props, in.Bookings, req.StartDate, req.EndDate)
	data.Monthly = MonthlySeries(txns, nameOf)

	if req.Type == model.ReportTax {
		data.TaxCategories = TaxCategories()
		data.DeductibleTotal = DeductibleTotal(data.TaxCategories)
	}
	if req.IncludeComparisons {
		data.Comparison = Comparison(data.Monthly)
	}
	if req.IncludeTransactions {
		data.Transactions = reportTransactions(txns, nameOf)
	}

	return data, nil
}

func (e *Engine) degenerate(txns []model.Transaction, props []model.Property) bool {
	return len(txns) == 0 || len(props) == 0 || len(MonthlySeries(txns, propertyNames(props))) == 0
}

// DefaultTitle returns the display title for a report type.
func DefaultTitle(t model.ReportType) string {
	switch t {
	case model.ReportFinancial:
		return "Financial Report"
	case model.ReportPerformance:
		return "Performance Report"
	case model.ReportTax:
		return "Tax Report"
	case model.ReportCustom:
		return "Custom Report"
	}
	return "Report"
}

// FilterByDateRange keeps transactions whose date falls within the range.
// The end boundary is normalized forward by one day so the end date itself
// is inclusive. Rows with a zero date are dropped with a warning.
func FilterByDateRange(txns []model.Transaction, from, to *time.Time) []model.Transaction {
	if from == nil && to == nil {
		return txns
	}

	var end time.Time
	if to != nil {
		end = to.AddDate(0, 0, 1)
	}

	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Date.IsZero() {
			slog.Warn("dropping transaction with invalid date", "id", txn.ID)
			continue
		}
		if from != nil && txn.Date.Before(*from) {
			continue
		}
		if to != nil && !txn.Date.Before(end) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// FilterProperties keeps properties whose name is in the selection. An
// empty selection means all properties.
func FilterProperties(props []model.Property, names []string) []model.Property {
	if len(names) == 0 {
		return props
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		if wanted[p.Name] {
			out = append(out, p)
		}
	}
	return out
}

// filterByProperties restricts transactions to the selected properties.
// With no selection, the input is returned unchanged.
func filterByProperties(txns []model.Transaction, props []model.Property, names []string) []model.Transaction {
	if len(names) == 0 {
		return txns
	}

	keep := make(map[string]bool, len(props))
	for _, p := range props {
		keep[p.ID] = true
	}

	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if keep[txn.PropertyID] {
			out = append(out, txn)
		}
	}
	return out
}

// Summarize computes the headline totals for a set of transactions.
func Summarize(txns []model.Transaction) model.ReportSummary {
	var s model.ReportSummary
	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionIncome:
			s.TotalIncome += txn.Amount
		case model.TransactionExpense:
			s.TotalExpenses += txn.Amount
		}
	}
	s.NetProfit = s.TotalIncome - s.TotalExpenses
	if s.TotalIncome > 0 {
		s.ProfitMargin = round2(s.NetProfit / s.TotalIncome * 100)
	}
	return s
}

// PropertyRollup sums income and expenses per property. Occupancy is
// derived from bookings when both a closed date range and booking rows
// are available; otherwise the fixed placeholder is used.
func PropertyRollup(txns []model.Transaction, props []model.Property, bookings []model.Booking, from, to *time.Time) []model.PropertyReport {
	byID := make(map[string]*model.PropertyReport, len(props))
	order := make([]string, 0, len(props))
	for _, p := range props {
		byID[p.ID] = &model.PropertyReport{
			Name:      p.Name,
			Occupancy: defaultOccupancy,
			Rating:    defaultRating,
		}
		order = append(order, p.ID)
	}

	for _, txn := range txns {
		r, ok := byID[txn.PropertyID]
		if !ok {
			continue
		}
		switch txn.Type {
		case model.TransactionIncome:
			r.Income += txn.Amount
		case model.TransactionExpense:
			r.Expenses += txn.Amount
		}
	}

	if from != nil && to != nil && len(bookings) > 0 {
		applyOccupancy(byID, bookings, *from, *to)
	}

	out := make([]model.PropertyReport, 0, len(order))
	for _, id := range order {
		r := byID[id]
		r.Profit = r.Income - r.Expenses
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Income != out[j].Income {
			return out[i].Income > out[j].Income
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// applyOccupancy replaces placeholder occupancy with booked-nights over
// period-days, clamped to 100. Cancelled bookings do not count.
func applyOccupancy(byID map[string]*model.PropertyReport, bookings []model.Booking, from, to time.Time) {
	periodDays := to.AddDate(0, 0, 1).Sub(from).Hours() / 24
	if periodDays <= 0 {
		return
	}

	nights := make(map[string]float64)
	for _, b := range bookings {
		if b.Status == model.BookingCancelled {
			continue
		}
		start, end := b.CheckIn, b.CheckOut
		if start.Before(from) {
			start = from
		}
		if end.After(to.AddDate(0, 0, 1)) {
			end = to.AddDate(0, 0, 1)
		}
		if booked := end.Sub(start).Hours() / 24; booked > 0 {
			nights[b.PropertyID] += booked
		}
	}

	for id, booked := range nights {
		r, ok := byID[id]
		if !ok {
			continue
		}
		occupancy := booked / periodDays * 100
		if occupancy > 100 {
			occupancy = 100
		}
		r.Occupancy = round2(occupancy)
	}
}

// MonthlySeries groups transactions into (month label, property) buckets.
// Buckets are ordered chronologically, then by property name.
func MonthlySeries(txns []model.Transaction, nameOf map[string]string) []model.MonthlyReport {
	type key struct {
		ym       string
		property string
	}

	buckets := make(map[key]*model.MonthlyReport)
	for _, txn := range txns {
		if txn.Date.IsZero() {
			continue
		}
		name := nameOf[txn.PropertyID]
		if name == "" {
			name = txn.PropertyID
		}
		k := key{ym: txn.Date.Format("2006-01"), property: name}
		b, ok := buckets[k]
		if !ok {
			b = &model.MonthlyReport{
				Month:    txn.Date.Format("Jan 2006"),
				Property: name,
			}
			buckets[k] = b
		}
		switch txn.Type {
		case model.TransactionIncome:
			b.Income += txn.Amount
		case model.TransactionExpense:
			b.Expenses += txn.Amount
		}
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ym != keys[j].ym {
			return keys[i].ym < keys[j].ym
		}
		return keys[i].property < keys[j].property
	})

	out := make([]model.MonthlyReport, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		b.Profit = b.Income - b.Expenses
		out = append(out, *b)
	}
	return out
}

// Comparison partitions the monthly series into the last three months and
// the three before that, then compares income, expenses and profit.
// A zero previous value yields a 0 percent change, never infinity.
func Comparison(monthly []model.MonthlyReport) []model.ComparisonRow {
	// Collapse property buckets into one bucket per month, in order.
	type monthTotal struct {
		income   float64
		expenses float64
	}
	var order []string
	totals := make(map[string]*monthTotal)
	for _, m := range monthly {
		t, ok := totals[m.Month]
		if !ok {
			t = &monthTotal{}
			totals[m.Month] = t
			order = append(order, m.Month)
		}
		t.income += m.Income
		t.expenses += m.Expenses
	}

	sum := func(months []string) (income, expenses float64) {
		for _, m := range months {
			income += totals[m].income
			expenses += totals[m].expenses
		}
		return income, expenses
	}

	var current, previous []string
	if len(order) > 3 {
		current = order[len(order)-3:]
		start := len(order) - 6
		if start < 0 {
			start = 0
		}
		previous = order[start : len(order)-3]
	} else {
		current = order
	}

	curIncome, curExpenses := sum(current)
	prevIncome, prevExpenses := sum(previous)

	return []model.ComparisonRow{
		{
			Metric:   "Income",
			Current:  curIncome,
			Previous: prevIncome,
			Change:   percentChange(curIncome, prevIncome),
		},
		{
			Metric:   "Expenses",
			Current:  curExpenses,
			Previous: prevExpenses,
			Change:   percentChange(curExpenses, prevExpenses),
		},
		{
			Metric:   "Net Profit",
			Current:  curIncome - curExpenses,
			Previous: prevIncome - prevExpenses,
			Change:   percentChange(curIncome-curExpenses, prevIncome-prevExpenses),
		},
	}
}

// percentChange guards against a zero previous value.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func reportTransactions(txns []model.Transaction, nameOf map[string]string) []model.ReportTransaction {
	out := make([]model.ReportTransaction, 0, len(txns))
	for _, txn := range txns {
		name := nameOf[txn.PropertyID]
		if name == "" {
			name = txn.PropertyID
		}
		out = append(out, model.ReportTransaction{
			Date:        txn.Date,
			Property:    name,
			Type:        txn.Type,
			Category:    txn.Category,
			Description: txn.Description,
			Amount:      txn.Amount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func propertyNames(props []model.Property) map[string]string {
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.ID] = p.Name
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
