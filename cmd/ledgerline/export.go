package main

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the month's transactions as CSV",
		RunE:  runExport,
	}

	cmd.Flags().String("month", model.CurrentMonth(), "month to export (YYYY-MM)")
	cmd.Flags().String("output", "", "output path (default expenses-<month>.csv)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	month, err := monthFlag(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = fmt.Sprintf("expenses-%s.csv", month)
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	body, size, err := st.ExportExpenses(cmd.Context(), month)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(size, "downloading")
	if _, err := io.Copy(io.MultiWriter(file, bar), body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to download export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Exported %s to %s\n", model.MonthLabel(month), path)
	return nil
}
