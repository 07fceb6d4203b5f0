package viewmodel

import (
	"math"
	"testing"

	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryView(t *testing.T) {
	summary := model.MonthlySummary{
		TotalIncome:   1000,
		TotalExpenses: 400,
		Balance:       600,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Food", Total: 250},
			{Category: "Transportation", Total: 100},
			{Category: "Entertainment", Total: 50},
		},
	}

	view := NewSummaryView(summary)

	assert.InDelta(t, 1000.0, view.TotalIncome, 0.001)
	assert.InDelta(t, 400.0, view.TotalExpenses, 0.001)
	assert.InDelta(t, 600.0, view.Balance, 0.001)

	// Server order is preserved across labels, values and rows.
	assert.Equal(t, []string{"Food", "Transportation", "Entertainment"}, view.Series.Labels)
	assert.Equal(t, []float64{250, 100, 50}, view.Series.Values)

	require.Len(t, view.Rows, 3)
	assert.InDelta(t, 62.5, view.Rows[0].Percentage, 0.001)
	assert.InDelta(t, 25.0, view.Rows[1].Percentage, 0.001)
	assert.InDelta(t, 12.5, view.Rows[2].Percentage, 0.001)
}

// Colors are assigned by position, so the chart and the table must agree
// for a given fetch.
func TestNewSummaryView_ColorsArePositional(t *testing.T) {
	summary := model.MonthlySummary{
		TotalExpenses: 100,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Food", Total: 60},
			{Category: "Housing", Total: 40},
		},
	}

	view := NewSummaryView(summary)

	require.Len(t, view.Series.Colors, 2)
	assert.Equal(t, view.Series.Colors[0], view.Rows[0].Color)
	assert.Equal(t, view.Series.Colors[1], view.Rows[1].Color)
	assert.NotEqual(t, view.Series.Colors[0], view.Series.Colors[1])
}

func TestNewSummaryView_PaletteWrapsAround(t *testing.T) {
	breakdown := make([]model.CategoryTotal, len(chartPalette)+2)
	for i := range breakdown {
		breakdown[i] = model.CategoryTotal{Category: "c", Total: 1}
	}

	view := NewSummaryView(model.MonthlySummary{TotalExpenses: 1, CategoryBreakdown: breakdown})

	require.Len(t, view.Series.Colors, len(chartPalette)+2)
	assert.Equal(t, view.Series.Colors[0], view.Series.Colors[len(chartPalette)])
}

// A month with income but no expenses must never render NaN or Inf
// percentages.
func TestNewSummaryView_ZeroExpensesGuard(t *testing.T) {
	summary := model.MonthlySummary{
		TotalIncome:   500,
		TotalExpenses: 0,
		Balance:       500,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Food", Total: 0},
			{Category: "Other", Total: 0},
		},
	}

	view := NewSummaryView(summary)

	require.Len(t, view.Rows, 2)
	for _, row := range view.Rows {
		assert.False(t, math.IsNaN(row.Percentage), "percentage must not be NaN")
		assert.False(t, math.IsInf(row.Percentage, 0), "percentage must not be Inf")
		assert.Zero(t, row.Percentage)
	}
}

func TestSummaryView_HasData(t *testing.T) {
	assert.False(t, NewSummaryView(model.MonthlySummary{}).HasData())
	assert.True(t, NewSummaryView(model.MonthlySummary{
		CategoryBreakdown: []model.CategoryTotal{{Category: "Food", Total: 1}},
	}).HasData())
}

func TestSummaryView_MaxValue(t *testing.T) {
	view := NewSummaryView(model.MonthlySummary{
		TotalExpenses: 100,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Food", Total: 30},
			{Category: "Housing", Total: 70},
		},
	})
	assert.InDelta(t, 70.0, view.MaxValue(), 0.001)

	assert.Zero(t, NewSummaryView(model.MonthlySummary{}).MaxValue())
}
