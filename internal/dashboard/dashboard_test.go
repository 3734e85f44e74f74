package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/report"
)

func TestComputeMatchesReportEngine(t *testing.T) {
	props := []model.Property{
		{ID: "p1", Name: "Downtown Loft"},
		{ID: "p2", Name: "Seaside Cottage"},
	}
	txns := []model.Transaction{
		{ID: "t1", PropertyID: "p1", Type: model.TransactionIncome, Amount: 1200, Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", PropertyID: "p1", Type: model.TransactionExpense, Amount: 80, Date: time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)},
		{ID: "t3", PropertyID: "p2", Type: model.TransactionIncome, Amount: 900, Date: time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)},
	}

	a := Compute(txns, props, nil, nil, nil)

	// The dashboard and the report engine agree on the same rows.
	assert.Equal(t, report.Summarize(txns), a.Summary)
	require.Len(t, a.Properties, 2)
	assert.Equal(t, "Downtown Loft", a.Properties[0].Name)
	require.Len(t, a.Monthly, 2)
	assert.InDelta(t, 2100, a.Summary.TotalIncome, 0.001)
}

func TestComputeWithDateRange(t *testing.T) {
	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		{ID: "t1", PropertyID: "p1", Type: model.TransactionIncome, Amount: 1200, Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", PropertyID: "p1", Type: model.TransactionIncome, Amount: 900, Date: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)},
	}

	a := Compute(txns, []model.Property{{ID: "p1", Name: "Downtown Loft"}}, nil, &from, &to)
	assert.InDelta(t, 900, a.Summary.TotalIncome, 0.001)
}

func TestRender(t *testing.T) {
	a := Compute(
		[]model.Transaction{
			{ID: "t1", PropertyID: "p1", Type: model.TransactionIncome, Amount: 1200, Date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		},
		[]model.Property{{ID: "p1", Name: "Downtown Loft"}},
		nil, nil, nil,
	)

	out := Render(a)
	assert.Contains(t, out, "BnbMargins")
	assert.Contains(t, out, "Downtown Loft")
	assert.Contains(t, out, "$1200.00")
}

func TestRenderEmpty(t *testing.T) {
	out := Render(Aggregates{})
	assert.Contains(t, out, "Portfolio")
	assert.NotContains(t, out, "Top Properties")
}
