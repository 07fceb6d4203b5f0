package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/currency"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/tui/viewmodel"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List and manage transactions",
	}

	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesAddCmd())
	cmd.AddCommand(expensesEditCmd())
	cmd.AddCommand(expensesDeleteCmd())

	return cmd
}

func expensesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the month's transactions",
		RunE:  runExpensesList,
	}

	cmd.Flags().String("month", model.CurrentMonth(), "month to list (YYYY-MM)")
	cmd.Flags().String("type", "all", "filter by type (all, expense, income)")
	cmd.Flags().String("category", "all", "filter by category")
	cmd.Flags().String("search", "", "search description and category")
	cmd.Flags().String("sort", "date", "sort field (date, amount, category)")
	cmd.Flags().String("order", "desc", "sort order (asc, desc)")

	return cmd
}

func runExpensesList(cmd *cobra.Command, _ []string) error {
	month, err := monthFlag(cmd)
	if err != nil {
		return err
	}

	state, err := listStateFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	if err := st.FetchExpenses(cmd.Context(), month); err != nil {
		return err
	}

	all := st.Expenses()
	visible := state.Apply(all)
	if len(visible) == 0 {
		fmt.Printf("No transactions for %s.\n", model.MonthLabel(month))
		return nil
	}

	code := st.Currency()
	fmt.Printf("%-26s %-13s %-28s %-16s %12s\n", "ID", "Date", "Description", "Category", "Amount")
	for _, txn := range visible {
		sign := "-"
		if txn.IsIncome() {
			sign = "+"
		}
		fmt.Printf("%-26s %-13s %-28s %-16s %12s\n",
			txn.ID, txn.DisplayDate(), txn.Description, txn.Category,
			sign+currency.Format(txn.Amount, code))
	}
	fmt.Printf("\n%d of %d transactions\n", len(visible), len(all))

	return nil
}

func expensesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE:  runExpensesAdd,
	}

	cmd.Flags().String("description", "", "what the transaction was for")
	cmd.Flags().Float64("amount", 0, "transaction amount")
	cmd.Flags().String("category", "", "category name")
	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "transaction date (YYYY-MM-DD)")
	cmd.Flags().String("type", string(model.TypeExpense), "transaction type (expense, income)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runExpensesAdd(cmd *cobra.Command, _ []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	created, err := st.AddExpense(cmd.Context(), in)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s %s (%s)\n",
		created.Type, currency.Format(created.Amount, st.Currency()), created.ID)
	return nil
}

func expensesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an existing transaction",
		Long: `Update an existing transaction. Only the provided flags change;
everything else keeps its current value.`,
		Args: cobra.ExactArgs(1),
		RunE: runExpensesEdit,
	}

	cmd.Flags().String("month", model.CurrentMonth(), "month the transaction belongs to (YYYY-MM)")
	cmd.Flags().String("description", "", "what the transaction was for")
	cmd.Flags().Float64("amount", 0, "transaction amount")
	cmd.Flags().String("category", "", "category name")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().String("type", "", "transaction type (expense, income)")

	return cmd
}

func runExpensesEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	month, err := monthFlag(cmd)
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	if err := st.FetchExpenses(cmd.Context(), month); err != nil {
		return err
	}

	var existing *model.Transaction
	for _, txn := range st.Expenses() {
		if txn.ID == id {
			existing = &txn
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("transaction %s not found in %s", id, month)
	}

	in := model.TransactionInput{
		Description: existing.Description,
		Amount:      existing.Amount,
		Category:    existing.Category,
		Date:        existing.Date.Format("2006-01-02"),
		Type:        string(existing.Type),
	}

	if cmd.Flags().Changed("description") {
		in.Description, _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("amount") {
		in.Amount, _ = cmd.Flags().GetFloat64("amount")
	}
	if cmd.Flags().Changed("category") {
		in.Category, _ = cmd.Flags().GetString("category")
	}
	if cmd.Flags().Changed("date") {
		in.Date, _ = cmd.Flags().GetString("date")
	}
	if cmd.Flags().Changed("type") {
		in.Type, _ = cmd.Flags().GetString("type")
	}

	updated, err := st.UpdateExpense(cmd.Context(), id, in)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s: %s %s\n",
		updated.ID, updated.Description, currency.Format(updated.Amount, st.Currency()))
	return nil
}

func expensesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runExpensesDelete,
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	return cmd
}

func runExpensesDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		answer, err := promptLine(fmt.Sprintf("Delete transaction %s? [y/N] ", id))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Kept.")
			return nil
		}
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	if err := st.DeleteExpense(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted %s.\n", id)
	return nil
}

// inputFromFlags assembles a create payload from the add command's flags.
func inputFromFlags(cmd *cobra.Command) (model.TransactionInput, error) {
	description, _ := cmd.Flags().GetString("description")
	amount, _ := cmd.Flags().GetFloat64("amount")
	category, _ := cmd.Flags().GetString("category")
	date, _ := cmd.Flags().GetString("date")
	rawType, _ := cmd.Flags().GetString("type")

	return model.TransactionInput{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Type:        rawType,
	}, nil
}

// monthFlag reads and validates the --month flag.
func monthFlag(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("month")
	return model.ParseMonth(raw)
}

// listStateFromFlags maps the list command's flags onto a projection.
func listStateFromFlags(cmd *cobra.Command) (viewmodel.ListState, error) {
	state := viewmodel.NewListState()

	rawType, _ := cmd.Flags().GetString("type")
	switch rawType {
	case "all":
		state.Filters.Type = viewmodel.TypeAll
	case "expense":
		state.Filters.Type = viewmodel.TypeExpenses
	case "income":
		state.Filters.Type = viewmodel.TypeIncome
	default:
		return state, fmt.Errorf("invalid type %q (want all, expense or income)", rawType)
	}

	state.Filters.Category, _ = cmd.Flags().GetString("category")
	if state.Filters.Category == "" {
		state.Filters.Category = viewmodel.CategoryAll
	}
	state.Filters.Search, _ = cmd.Flags().GetString("search")

	rawSort, _ := cmd.Flags().GetString("sort")
	switch rawSort {
	case "date":
		state.SortField = viewmodel.SortByDate
	case "amount":
		state.SortField = viewmodel.SortByAmount
	case "category":
		state.SortField = viewmodel.SortByCategory
	default:
		return state, fmt.Errorf("invalid sort %q (want date, amount or category)", rawSort)
	}

	rawOrder, _ := cmd.Flags().GetString("order")
	switch rawOrder {
	case "asc":
		state.SortOrder = viewmodel.SortAscending
	case "desc":
		state.SortOrder = viewmodel.SortDescending
	default:
		return state, fmt.Errorf("invalid order %q (want asc or desc)", rawOrder)
	}

	return state, nil
}
