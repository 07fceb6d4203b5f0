// Package components contains the interactive sub-models of the TUI.
package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/tui/themes"
)

// FormSubmitMsg carries a completed transaction form back to the host.
// An empty ID means create, otherwise update.
type FormSubmitMsg struct {
	ID    string
	Input model.TransactionInput
}

// FormCancelMsg is emitted when the user abandons the form.
type FormCancelMsg struct{}

const (
	fieldDescription = iota
	fieldAmount
	fieldDate
	fieldType
	fieldCategory
	fieldCount
)

// FormModel is the add/edit transaction form. Field values survive a
// failed submit so the user can correct them in place.
type FormModel struct {
	theme       themes.Theme
	id          string
	errText     string
	category    string
	txnType     model.TransactionType
	description textinput.Model
	amount      textinput.Model
	date        textinput.Model
	focus       int
	width       int
}

// NewFormModel creates an empty form.
func NewFormModel(theme themes.Theme) FormModel {
	description := textinput.New()
	description.Placeholder = "What was it for?"
	description.CharLimit = 120

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10

	return FormModel{
		theme:       theme,
		description: description,
		amount:      amount,
		date:        date,
		txnType:     model.TypeExpense,
		category:    model.DefaultCategories[0],
	}
}

// Reset prepares the form for a new transaction dated today.
func (f *FormModel) Reset() {
	f.id = ""
	f.errText = ""
	f.description.SetValue("")
	f.amount.SetValue("")
	f.date.SetValue(time.Now().Format("2006-01-02"))
	f.txnType = model.TypeExpense
	f.category = model.DefaultCategories[0]
	f.setFocus(fieldDescription)
}

// Load prepopulates the form from an existing transaction for editing.
func (f *FormModel) Load(txn model.Transaction) {
	f.id = txn.ID
	f.errText = ""
	f.description.SetValue(txn.Description)
	f.amount.SetValue(strconv.FormatFloat(txn.Amount, 'f', -1, 64))
	f.date.SetValue(txn.Date.Format("2006-01-02"))
	f.txnType = txn.Type
	f.category = txn.Category
	f.setFocus(fieldDescription)
}

// Editing reports whether the form targets an existing transaction.
func (f FormModel) Editing() bool {
	return f.id != ""
}

// SetError shows a submit failure above the fields.
func (f *FormModel) SetError(text string) {
	f.errText = text
}

// SetSize updates the rendering width.
func (f *FormModel) SetSize(width int) {
	f.width = width
}

// Update handles form key events.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return FormCancelMsg{} }

	case "enter":
		return f.submit()

	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil

	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil

	case "left", "right":
		switch f.focus {
		case fieldType:
			f.toggleType()
			return f, nil
		case fieldCategory:
			f.cycleCategory(keyMsg.String() == "right")
			return f, nil
		}

	case " ":
		if f.focus == fieldType {
			f.toggleType()
			return f, nil
		}
	}

	return f.updateInputs(msg)
}

// View renders the form.
func (f FormModel) View() string {
	var b strings.Builder

	title := "Add Transaction"
	if f.Editing() {
		title = "Edit Transaction"
	}
	b.WriteString(f.theme.Title.Render(title))
	b.WriteString("\n")

	if f.errText != "" {
		b.WriteString(f.theme.StatusError.Render(f.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(f.renderField(fieldDescription, "Description", f.description.View()))
	b.WriteString(f.renderField(fieldAmount, "Amount", f.amount.View()))
	b.WriteString(f.renderField(fieldDate, "Date", f.date.View()))
	b.WriteString(f.renderField(fieldType, "Type", f.renderType()))
	b.WriteString(f.renderField(fieldCategory, "Category", f.renderCategory()))

	b.WriteString("\n")
	b.WriteString(f.theme.Faint.Render("Tab: next field • ←/→: change value • Enter: save • Esc: cancel"))

	return f.theme.BorderedBox.Render(b.String())
}

func (f FormModel) renderField(field int, label, value string) string {
	marker := "  "
	labelStyle := f.theme.Faint
	if f.focus == field {
		marker = f.theme.Header.Render("> ")
		labelStyle = f.theme.Header
	}
	return fmt.Sprintf("%s%s %s\n", marker, labelStyle.Render(label+":"), value)
}

func (f FormModel) renderType() string {
	expense := "expense"
	income := "income"
	if f.txnType == model.TypeExpense {
		expense = f.theme.Expense.Bold(true).Render("[expense]")
		income = f.theme.Faint.Render(income)
	} else {
		income = f.theme.Income.Bold(true).Render("[income]")
		expense = f.theme.Faint.Render(expense)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, expense, " ", income)
}

func (f FormModel) renderCategory() string {
	if f.focus == fieldCategory {
		return f.theme.Selected.Render(" " + f.category + " ")
	}
	return f.theme.Normal.Render(f.category)
}

// submit parses the amount locally and hands the payload to the host.
// Parse failures never leave the form.
func (f FormModel) submit() (FormModel, tea.Cmd) {
	raw := strings.TrimSpace(f.amount.Value())
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.errText = "amount must be a number"
		f.setFocus(fieldAmount)
		return f, nil
	}

	msg := FormSubmitMsg{
		ID: f.id,
		Input: model.TransactionInput{
			Description: strings.TrimSpace(f.description.Value()),
			Amount:      amount,
			Category:    f.category,
			Date:        strings.TrimSpace(f.date.Value()),
			Type:        string(f.txnType),
		},
	}
	return f, func() tea.Msg { return msg }
}

func (f *FormModel) toggleType() {
	if f.txnType == model.TypeExpense {
		f.txnType = model.TypeIncome
	} else {
		f.txnType = model.TypeExpense
	}
}

func (f *FormModel) cycleCategory(forward bool) {
	idx := 0
	for i, c := range model.DefaultCategories {
		if c == f.category {
			idx = i
			break
		}
	}
	n := len(model.DefaultCategories)
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx + n - 1) % n
	}
	f.category = model.DefaultCategories[idx]
}

func (f *FormModel) setFocus(field int) {
	f.focus = field
	f.description.Blur()
	f.amount.Blur()
	f.date.Blur()

	switch field {
	case fieldDescription:
		f.description.Focus()
	case fieldAmount:
		f.amount.Focus()
	case fieldDate:
		f.date.Focus()
	}
}

func (f FormModel) updateInputs(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return f, cmd
}
