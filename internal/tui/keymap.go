package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Views
	Summary  key.Binding
	Expenses key.Binding
	Settings key.Binding

	// Month selection
	PrevMonth key.Binding
	NextMonth key.Binding

	// List actions
	Add            key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Search         key.Binding
	CycleType      key.Binding
	CycleCategory  key.Binding
	SortByDate     key.Binding
	SortByAmount   key.Binding
	SortByCategory key.Binding

	// Forms and dialogs
	Confirm key.Binding
	Cancel  key.Binding
	Next    key.Binding
	Prev    key.Binding

	// Application
	Export  key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),

		Summary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "summary"),
		),
		Expenses: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "expenses"),
		),
		Settings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),

		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add transaction"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit transaction"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete transaction"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "filter type"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "filter category"),
		),
		SortByDate: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by date"),
		),
		SortByAmount: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sort by amount"),
		),
		SortByCategory: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "sort by category"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("Enter/y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("Esc/n", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous field"),
		),

		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export month"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Summary, k.Expenses, k.Settings, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMonth, k.NextMonth},
		{k.Summary, k.Expenses, k.Settings},
		{k.Add, k.Edit, k.Delete, k.Search},
		{k.CycleType, k.CycleCategory, k.SortByDate, k.SortByAmount, k.SortByCategory},
		{k.Export, k.Refresh, k.Logout, k.Quit},
	}
}
