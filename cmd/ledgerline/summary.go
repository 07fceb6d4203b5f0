package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/currency"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/tui/viewmodel"
)

const summaryBarWidth = 30

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month's totals and category breakdown",
		RunE:  runSummary,
	}

	cmd.Flags().String("month", model.CurrentMonth(), "month to summarize (YYYY-MM)")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	month, err := monthFlag(cmd)
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	summary, err := st.MonthlySummary(cmd.Context(), month)
	if err != nil {
		return err
	}

	code := st.Currency()
	view := viewmodel.NewSummaryView(*summary)

	fmt.Println(model.MonthLabel(month))
	fmt.Printf("  income:   %s\n", currency.Format(view.TotalIncome, code))
	fmt.Printf("  expenses: %s\n", currency.Format(view.TotalExpenses, code))
	fmt.Printf("  balance:  %s\n", currency.Format(view.Balance, code))

	if !view.HasData() {
		fmt.Println("\nNo expenses recorded.")
		return nil
	}

	fmt.Println()
	maxValue := view.MaxValue()
	for _, row := range view.Rows {
		width := 0
		if maxValue > 0 {
			width = int(row.Total / maxValue * summaryBarWidth)
		}
		if width < 1 {
			width = 1
		}
		fmt.Printf("  %-16s %12s %6.1f%% %s\n",
			row.Category, currency.Format(row.Total, code), row.Percentage,
			strings.Repeat("█", width))
	}

	return nil
}
