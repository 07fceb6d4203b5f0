// Package tui is the interactive terminal dashboard for managing
// transactions.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/ledgerline/internal/store"
)

// Run starts the dashboard and blocks until the user quits or the
// context is canceled. A persisted session is restored before the first
// frame; without one the dashboard opens on the login screen.
func Run(ctx context.Context, st *store.Store) error {
	if st == nil {
		return fmt.Errorf("store is required")
	}

	if err := st.LoadSession(); err != nil {
		return err
	}

	program := tea.NewProgram(newModel(st), tea.WithAltScreen(), tea.WithContext(ctx))

	// A 401 on any request tears the session down; the dashboard reacts
	// by falling back to the login screen.
	st.HandleUnauthenticated(func() {
		program.Send(sessionExpiredMsg{})
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}
