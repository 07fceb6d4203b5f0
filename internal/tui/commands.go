package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/ledgerline/internal/model"
)

const (
	opTimeout     = 30 * time.Second
	debounceDelay = 500 * time.Millisecond
	statusTTL     = 3 * time.Second
)

// fetchExpenses loads the month's transactions into the store.
func (m Model) fetchExpenses(month string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := m.store.FetchExpenses(ctx, month); err != nil {
			return expensesLoadedMsg{month: month, err: err}
		}

		return expensesLoadedMsg{month: month, transactions: m.store.Expenses()}
	}
}

// fetchSummary loads the month's aggregate totals and breakdown.
func (m Model) fetchSummary(month string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		summary, err := m.store.MonthlySummary(ctx, month)
		return summaryLoadedMsg{month: month, summary: summary, err: err}
	}
}

// saveExpense creates a new transaction, or updates one when id is set.
func (m Model) saveExpense(id string, in model.TransactionInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		var err error
		if id == "" {
			_, err = m.store.AddExpense(ctx, in)
		} else {
			_, err = m.store.UpdateExpense(ctx, id, in)
		}

		return expenseSavedMsg{editing: id != "", err: err}
	}
}

// deleteExpense removes a transaction after the user confirmed.
func (m Model) deleteExpense(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := m.store.DeleteExpense(ctx, id)
		return expenseDeletedMsg{id: id, err: err}
	}
}

// signIn authenticates and primes the current month's data.
func (m Model) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return loggedInMsg{err: m.store.Login(ctx, email, password)}
	}
}

// signUp creates an account and signs in.
func (m Model) signUp(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return registeredMsg{err: m.store.Register(ctx, name, email, password)}
	}
}

// updateCurrency persists a new preferred display currency.
func (m Model) updateCurrency(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return currencyUpdatedMsg{code: code, err: m.store.UpdateCurrency(ctx, code)}
	}
}

// updateProfile persists a new display name.
func (m Model) updateProfile(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return profileUpdatedMsg{err: m.store.UpdateProfile(ctx, name)}
	}
}

// exportMonth downloads the month's CSV artifact into the working
// directory as expenses-<month>.csv.
func (m Model) exportMonth(month string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		body, _, err := m.store.ExportExpenses(ctx, month)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer func() { _ = body.Close() }()

		path := fmt.Sprintf("expenses-%s.csv", month)
		file, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to create export file: %w", err)}
		}

		if _, err := io.Copy(file, body); err != nil {
			_ = file.Close()
			_ = os.Remove(path)
			return exportDoneMsg{err: fmt.Errorf("failed to write export file: %w", err)}
		}
		if err := file.Close(); err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to write export file: %w", err)}
		}

		return exportDoneMsg{path: path}
	}
}

// scheduleMonthFetch arms the month-change debounce. Rapid month paging
// bumps the sequence number, so only the final schedule survives.
func (m Model) scheduleMonthFetch(seq int, month string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return monthDebouncedMsg{seq: seq, month: month}
	})
}

// expireStatus clears the status line after its time-to-live, unless a
// newer status has replaced it.
func (m Model) expireStatus(id int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}
