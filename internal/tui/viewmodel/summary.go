package viewmodel

import (
	"math"

	"github.com/ledgerline/ledgerline/internal/model"
)

// chartPalette is the positional color cycle shared by the bar chart, the
// distribution panel and the breakdown table. Assignment is by breakdown
// index so all three stay in sync for a given fetch.
var chartPalette = []string{
	"#ff3d3d", // bright red
	"#00c6ff", // electric blue
	"#ffd700", // gold
	"#9370db", // medium purple
	"#ffa500", // bright orange
	"#00ff7f", // spring green
	"#ff1493", // deep pink
	"#00bfff", // deep sky blue
}

// ChartSeries is the chart-ready projection of a category breakdown.
// Labels, values and colors are parallel slices in server order.
type ChartSeries struct {
	Labels []string
	Colors []string
	Values []float64
}

// BreakdownRow is one line of the detailed breakdown table.
type BreakdownRow struct {
	Category   string
	Color      string
	Total      float64
	Percentage float64
}

// SummaryView is the full display projection of one MonthlySummary,
// recomputed from scratch on every fetch.
type SummaryView struct {
	Series        ChartSeries
	Rows          []BreakdownRow
	TotalIncome   float64
	TotalExpenses float64
	Balance       float64
}

// NewSummaryView projects a server summary into chart series and table
// rows. Category order and color assignment follow the order the server
// returned.
func NewSummaryView(summary model.MonthlySummary) SummaryView {
	view := SummaryView{
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		Balance:       summary.Balance,
	}

	for i, item := range summary.CategoryBreakdown {
		color := chartPalette[i%len(chartPalette)]
		view.Series.Labels = append(view.Series.Labels, item.Category)
		view.Series.Values = append(view.Series.Values, item.Total)
		view.Series.Colors = append(view.Series.Colors, color)
		view.Rows = append(view.Rows, BreakdownRow{
			Category:   item.Category,
			Total:      item.Total,
			Color:      color,
			Percentage: percentage(item.Total, summary.TotalExpenses),
		})
	}

	return view
}

// HasData reports whether there is anything to chart.
func (v SummaryView) HasData() bool {
	return len(v.Rows) > 0
}

// MaxValue returns the largest category total, used to scale bars.
func (v SummaryView) MaxValue() float64 {
	max := 0.0
	for _, value := range v.Series.Values {
		if value > max {
			max = value
		}
	}
	return max
}

// percentage computes a category's share of total expenses. A zero
// expense total yields 0, never NaN or Inf.
func percentage(total, totalExpenses float64) float64 {
	if totalExpenses == 0 {
		return 0
	}
	pct := total / totalExpenses * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}
