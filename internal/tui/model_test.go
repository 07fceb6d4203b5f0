package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/api"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/session"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/ledgerline/ledgerline/internal/tui/viewmodel"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sessions := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	st := store.New(api.New("http://127.0.0.1:1", sessions), sessions)
	return newModel(st)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModel_MonthPagingDebounces(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList
	m.month = "2024-03"

	m, _ = update(t, m, keyPress('['))
	m, _ = update(t, m, keyPress('['))

	assert.Equal(t, "2024-01", m.month)
	assert.Equal(t, 2, m.fetchSeq)

	// The superseded schedule must not trigger a fetch.
	_, cmd := update(t, m, monthDebouncedMsg{seq: 1, month: "2024-02"})
	assert.Nil(t, cmd)

	_, cmd = update(t, m, monthDebouncedMsg{seq: 2, month: "2024-01"})
	assert.NotNil(t, cmd)
}

func TestModel_StaleFetchResultDropped(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList
	m.month = "2024-03"
	m.transactions = []model.Transaction{{ID: "1", Description: "kept"}}

	m, _ = update(t, m, expensesLoadedMsg{
		month:        "2024-02",
		transactions: []model.Transaction{{ID: "9", Description: "stale"}},
	})

	require.Len(t, m.transactions, 1)
	assert.Equal(t, "1", m.transactions[0].ID)
}

func TestModel_FetchResultForCurrentMonthApplies(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList
	m.month = "2024-03"

	m, _ = update(t, m, expensesLoadedMsg{
		month:        "2024-03",
		transactions: []model.Transaction{{ID: "1"}, {ID: "2"}},
	})

	assert.Len(t, m.transactions, 2)
}

func TestModel_StatusExpiry(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSummary

	m, cmd := update(t, m, profileUpdatedMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, "Profile updated", m.statusText)
	id := m.statusID

	// An expiry for a superseded status is ignored.
	m, _ = update(t, m, currencyUpdatedMsg{code: "EUR"})
	m, _ = update(t, m, statusExpiredMsg{id: id})
	assert.Equal(t, "Currency set to EUR", m.statusText)

	m, _ = update(t, m, statusExpiredMsg{id: m.statusID})
	assert.Empty(t, m.statusText)
}

func TestModel_DeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList
	m.month = "2024-03"
	m.transactions = []model.Transaction{
		{ID: "1", Description: "Coffee", Date: time.Now(), Type: model.TypeExpense},
	}

	m, _ = update(t, m, keyPress('d'))
	require.Equal(t, StateConfirmDelete, m.state)
	require.NotNil(t, m.pendingDelete)
	assert.Equal(t, "1", m.pendingDelete.ID)

	// Cancel keeps the transaction and returns to the list.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)
	assert.Nil(t, m.pendingDelete)
	assert.Len(t, m.transactions, 1)
}

// drainCmd runs the immediate commands in a batch and returns whatever
// messages arrive before timer-backed commands would fire.
func drainCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	first := cmd()
	batch, ok := first.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{first}
	}

	results := make(chan tea.Msg, len(batch))
	for _, sub := range batch {
		go func(c tea.Cmd) { results <- c() }(sub)
	}

	var msgs []tea.Msg
	deadline := time.After(1 * time.Second)
	for range batch {
		select {
		case msg := <-results:
			msgs = append(msgs, msg)
		case <-deadline:
			return msgs
		}
	}
	return msgs
}

func TestModel_DeleteRefetchesMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/expenses/summary"):
			_ = json.NewEncoder(w).Encode(model.MonthlySummary{})
		case strings.HasSuffix(r.URL.Path, "/expenses"):
			_ = json.NewEncoder(w).Encode([]model.Transaction{{ID: "2", Description: "kept"}})
		}
	}))
	t.Cleanup(srv.Close)

	sessions := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, sessions.Save(&session.Session{Token: "tok", User: model.User{ID: "u1"}}))
	st := store.New(api.New(srv.URL, sessions), sessions)
	require.NoError(t, st.LoadSession())

	m := newModel(st)
	m.state = StateConfirmDelete
	m.prevState = StateList
	m.month = "2024-03"
	m.transactions = []model.Transaction{{ID: "1"}, {ID: "2"}}

	m, cmd := update(t, m, expenseDeletedMsg{id: "1"})
	require.NotNil(t, cmd)
	assert.Equal(t, StateList, m.state)

	// A confirmed delete must resynchronize the month from the server,
	// not just keep the locally pruned list.
	var refetched *expensesLoadedMsg
	for _, msg := range drainCmd(t, cmd) {
		if loaded, ok := msg.(expensesLoadedMsg); ok {
			refetched = &loaded
		}
	}
	require.NotNil(t, refetched, "delete must refetch the month's transactions")
	require.NoError(t, refetched.err)
	assert.Equal(t, "2024-03", refetched.month)
	require.Len(t, refetched.transactions, 1)
	assert.Equal(t, "2", refetched.transactions[0].ID)
}

func TestModel_TypeFilterCycles(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList

	m, _ = update(t, m, keyPress('t'))
	assert.Equal(t, viewmodel.TypeExpenses, m.listState.Filters.Type)
	m, _ = update(t, m, keyPress('t'))
	assert.Equal(t, viewmodel.TypeIncome, m.listState.Filters.Type)
	m, _ = update(t, m, keyPress('t'))
	assert.Equal(t, viewmodel.TypeAll, m.listState.Filters.Type)
}

func TestModel_SessionExpiredFallsBackToLogin(t *testing.T) {
	m := newTestModel(t)
	m.state = StateList
	m.transactions = []model.Transaction{{ID: "1"}}

	m, _ = update(t, m, sessionExpiredMsg{})

	assert.Equal(t, StateLogin, m.state)
	assert.Nil(t, m.transactions)
	assert.Nil(t, m.summary)
}

func TestModel_ViewSwitchKeys(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSummary

	m, _ = update(t, m, keyPress('2'))
	assert.Equal(t, StateList, m.state)
	m, _ = update(t, m, keyPress('1'))
	assert.Equal(t, StateSummary, m.state)
	m, _ = update(t, m, keyPress('3'))
	assert.Equal(t, StateSettings, m.state)
}
