package model

// CategoryTotal is one row of a summary's category breakdown. Order is
// significant: charts and tables assign colors by position.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlySummary is the server-computed aggregate for one calendar month.
// The client never recomputes the totals; balance is trusted to equal
// income minus expenses as produced by the server.
type MonthlySummary struct {
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	TotalIncome       float64         `json:"totalIncome"`
	TotalExpenses     float64         `json:"totalExpenses"`
	Balance           float64         `json:"balance"`
}

// HasBreakdown reports whether any category rows were returned.
func (s MonthlySummary) HasBreakdown() bool {
	return len(s.CategoryBreakdown) > 0
}
