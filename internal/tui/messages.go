package tui

import (
	"github.com/ledgerline/ledgerline/internal/model"
)

// Data loading messages.
type expensesLoadedMsg struct {
	err          error
	month        string
	transactions []model.Transaction
}

type summaryLoadedMsg struct {
	err     error
	summary *model.MonthlySummary
	month   string
}

// Mutation results.
type expenseSavedMsg struct {
	err     error
	editing bool
}

type expenseDeletedMsg struct {
	err error
	id  string
}

type currencyUpdatedMsg struct {
	err  error
	code string
}

type profileUpdatedMsg struct {
	err error
}

type exportDoneMsg struct {
	err  error
	path string
}

// Session lifecycle.
type loggedInMsg struct {
	err error
}

type registeredMsg struct {
	err error
}

// sessionExpiredMsg is sent from the gateway's 401 listener; it can arrive
// in any state.
type sessionExpiredMsg struct{}

// monthDebouncedMsg fires when a scheduled month refetch settles. Stale
// sequence numbers are dropped, which is how a superseded or torn-down
// schedule is canceled.
type monthDebouncedMsg struct {
	month string
	seq   int
}

// statusExpiredMsg clears a transient status line.
type statusExpiredMsg struct {
	id int
}
