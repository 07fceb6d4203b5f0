package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/ledgerline/internal/currency"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/tui/viewmodel"
)

const maxBarWidth = 40

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLogin:
		return m.login.View()
	case StateForm:
		return m.renderChrome(m.form.View())
	case StateConfirmDelete:
		return m.renderChrome(m.renderConfirmDelete())
	case StateSettings:
		return m.renderChrome(m.renderSettings())
	case StateHelp:
		return m.renderChrome(m.renderHelp())
	case StateList:
		return m.renderChrome(m.renderList())
	default:
		return m.renderChrome(m.renderSummary())
	}
}

// renderChrome wraps a screen in the shared header, status line and
// footer.
func (m Model) renderChrome(content string) string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	name := ""
	if user := m.store.User(); user != nil {
		name = user.Name
	}

	left := m.theme.Title.Render("Ledgerline")
	month := m.theme.Header.Render(m.monthLabel())

	loading := ""
	if m.store.Loading() {
		loading = m.theme.StatusInfo.Render(" ⋯")
	}

	right := m.theme.Faint.Render(name)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", month, loading, "  ", right)
}

func (m Model) renderStatus() string {
	if m.statusText == "" {
		return ""
	}

	style := m.theme.StatusInfo
	switch m.statusKind {
	case statusSuccess:
		style = m.theme.StatusSuccess
	case statusError:
		style = m.theme.StatusError
	}
	return style.Render(m.statusText) + "\n"
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, binding := range m.keymap.ShortHelp() {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}
	return m.theme.Faint.Render(strings.Join(parts, " • "))
}

// renderSummary is the dashboard: totals cards, the category bar chart
// and the detailed breakdown table.
func (m Model) renderSummary() string {
	code := m.store.Currency()

	if m.summary == nil {
		return m.theme.Faint.Render("Loading summary...")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.CardIncome.Render(
			m.theme.Faint.Render("Income")+"\n"+
				m.theme.Income.Bold(true).Render(currency.Format(m.summary.TotalIncome, code))),
		" ",
		m.theme.CardExpense.Render(
			m.theme.Faint.Render("Expenses")+"\n"+
				m.theme.Expense.Bold(true).Render(currency.Format(m.summary.TotalExpenses, code))),
		" ",
		m.theme.CardBalance.Render(
			m.theme.Faint.Render("Balance")+"\n"+
				m.theme.Bold.Render(currency.Format(m.summary.Balance, code))),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")

	if !m.summary.HasData() {
		b.WriteString(m.theme.Faint.Render("No expenses recorded for " + m.monthLabel() + "."))
		return b.String()
	}

	b.WriteString(m.theme.Header.Render("Spending by Category"))
	b.WriteString("\n")
	b.WriteString(m.renderChart(*m.summary))
	b.WriteString("\n")
	b.WriteString(m.theme.Header.Render("Breakdown"))
	b.WriteString("\n")
	b.WriteString(m.renderBreakdown(*m.summary, code))

	return b.String()
}

// renderChart draws horizontal bars scaled against the largest category.
func (m Model) renderChart(view viewmodel.SummaryView) string {
	maxValue := view.MaxValue()
	labelWidth := 0
	for _, label := range view.Series.Labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	var b strings.Builder
	for i, label := range view.Series.Labels {
		width := 0
		if maxValue > 0 {
			width = int(view.Series.Values[i] / maxValue * maxBarWidth)
		}
		if width < 1 {
			width = 1
		}

		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(view.Series.Colors[i])).
			Render(strings.Repeat("█", width))

		b.WriteString(fmt.Sprintf("%-*s %s\n", labelWidth, label, bar))
	}
	return b.String()
}

func (m Model) renderBreakdown(view viewmodel.SummaryView, code string) string {
	var b strings.Builder
	for _, row := range view.Rows {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("●")
		b.WriteString(fmt.Sprintf("%s %-16s %12s %6.1f%%\n",
			dot, row.Category, currency.Format(row.Total, code), row.Percentage))
	}
	return b.String()
}

// renderList is the transaction table with filters, sort and search.
func (m Model) renderList() string {
	code := m.store.Currency()
	visible := m.visible()

	var b strings.Builder
	b.WriteString(m.renderListControls())
	b.WriteString("\n")

	if m.searching || m.listState.Filters.Search != "" {
		b.WriteString(m.theme.Header.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	if len(visible) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Faint.Render("No transactions for " + m.monthLabel() + "."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-13s %-28s %-16s %12s", "Date", "Description", "Category", "Amount")
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n")

	for i, txn := range visible {
		b.WriteString(m.renderListRow(txn, code, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Faint.Render(fmt.Sprintf("%d of %d transactions", len(visible), len(m.transactions))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderListRow(txn model.Transaction, code string, selected bool) string {
	amount := currency.Format(txn.Amount, code)
	amountStyle := m.theme.Expense
	sign := "-"
	if txn.IsIncome() {
		amountStyle = m.theme.Income
		sign = "+"
	}

	left := fmt.Sprintf("%-13s %-28s %-16s",
		txn.DisplayDate(), truncate(txn.Description, 28), truncate(txn.Category, 16))
	right := fmt.Sprintf("%12s", sign+amount)

	if selected {
		return m.theme.Selected.Render("▸ " + left + " " + right)
	}
	return "  " + m.theme.Normal.Render(left) + " " + amountStyle.Render(right)
}

func (m Model) renderListControls() string {
	sortName := "date"
	switch m.listState.SortField {
	case viewmodel.SortByAmount:
		sortName = "amount"
	case viewmodel.SortByCategory:
		sortName = "category"
	}
	direction := "↑"
	if m.listState.SortOrder == viewmodel.SortDescending {
		direction = "↓"
	}

	return m.theme.Faint.Render(fmt.Sprintf("type: %s • category: %s • sort: %s %s",
		m.listState.Filters.Type, m.listState.Filters.Category, sortName, direction))
}

func (m Model) renderConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}

	body := fmt.Sprintf("Delete %q (%s)?\n\n%s",
		m.pendingDelete.Description,
		currency.Format(m.pendingDelete.Amount, m.store.Currency()),
		m.theme.Faint.Render("Enter/y: delete • Esc/n: keep"))

	return m.theme.BorderedBox.Render(
		m.theme.StatusError.Render("Confirm Delete") + "\n\n" + body)
}

func (m Model) renderSettings() string {
	codes := currency.Codes()
	active := m.store.Currency()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Settings"))
	b.WriteString("\n")

	nameLabel := m.theme.Faint
	if m.settingsFocus == settingsFocusName {
		nameLabel = m.theme.Header
	}
	b.WriteString(nameLabel.Render("Display name:"))
	b.WriteString(" ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	currencyLabel := m.theme.Faint
	if m.settingsFocus == settingsFocusCurrency {
		currencyLabel = m.theme.Header
	}
	b.WriteString(currencyLabel.Render("Preferred currency:"))
	b.WriteString("\n")

	for i, codeName := range codes {
		line := fmt.Sprintf("%s %s", codeName, currency.Symbol(codeName))
		switch {
		case m.settingsFocus == settingsFocusCurrency && i == m.currencyCursor:
			line = m.theme.Selected.Render("▸ " + line)
		case codeName == active:
			line = m.theme.StatusSuccess.Render("✓ " + line)
		default:
			line = "  " + m.theme.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Faint.Render("Tab: switch section • Enter: save • x: export month"))
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				m.theme.Bold.Render(binding.Help().Key), binding.Help().Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Faint.Render("Press any key to go back"))
	return b.String()
}

func (m Model) monthLabel() string {
	return model.MonthLabel(m.month)
}

// truncate shortens to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
