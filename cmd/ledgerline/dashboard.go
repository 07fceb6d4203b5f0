package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/tui"
)

// runDashboard opens the interactive terminal dashboard. It is the
// default when ledgerline runs with no subcommand.
func runDashboard(cmd *cobra.Command, _ []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), st)
}
