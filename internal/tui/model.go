package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/currency"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/ledgerline/ledgerline/internal/tui/components"
	"github.com/ledgerline/ledgerline/internal/tui/themes"
	"github.com/ledgerline/ledgerline/internal/tui/viewmodel"
)

// State identifies the active screen.
type State int

const (
	StateLogin State = iota
	StateSummary
	StateList
	StateForm
	StateConfirmDelete
	StateSettings
	StateHelp
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

const (
	settingsFocusName = iota
	settingsFocusCurrency
)

// Model holds the main TUI state.
type Model struct {
	store          *store.Store
	summary        *viewmodel.SummaryView
	pendingDelete  *model.Transaction
	statusText     string
	month          string
	transactions   []model.Transaction
	theme          themes.Theme
	keymap         KeyMap
	listState      viewmodel.ListState
	searchInput    textinput.Model
	nameInput      textinput.Model
	form           components.FormModel
	login          components.LoginModel
	state          State
	prevState      State
	statusID       int
	statusKind     statusKind
	cursor         int
	fetchSeq       int
	currencyCursor int
	settingsFocus  int
	width          int
	height         int
	searching      bool
	quitting       bool
}

// newModel creates the root model. A restored session skips the login
// screen.
func newModel(st *store.Store) Model {
	theme := themes.Default

	search := textinput.New()
	search.Placeholder = "search description or category"
	search.CharLimit = 80

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 80

	m := Model{
		store:       st,
		theme:       theme,
		keymap:      DefaultKeyMap(),
		month:       model.CurrentMonth(),
		listState:   viewmodel.NewListState(),
		searchInput: search,
		nameInput:   name,
		form:        components.NewFormModel(theme),
		login:       components.NewLoginModel(theme),
		state:       StateLogin,
	}

	if st.User() != nil {
		m.state = StateSummary
	}

	return m
}

// Init starts the program and primes the current month when a session is
// already present.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, textinput.Blink}
	if m.state != StateLogin {
		cmds = append(cmds, m.fetchExpenses(m.month), m.fetchSummary(m.month))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetSize(msg.Width)
		return m, nil

	case sessionExpiredMsg:
		return m.handleSessionExpired()

	case components.AuthSubmitMsg:
		if msg.Register {
			return m, m.signUp(msg.Name, msg.Email, msg.Password)
		}
		return m, m.signIn(msg.Email, msg.Password)

	case components.FormSubmitMsg:
		return m, m.saveExpense(msg.ID, msg.Input)

	case components.FormCancelMsg:
		m.state = m.prevState
		return m, nil

	case loggedInMsg:
		return m.handleLoggedIn(msg.err)

	case registeredMsg:
		return m.handleRegistered(msg.err)

	case expensesLoadedMsg:
		return m.handleExpensesLoaded(msg)

	case summaryLoadedMsg:
		return m.handleSummaryLoaded(msg)

	case expenseSavedMsg:
		return m.handleExpenseSaved(msg)

	case expenseDeletedMsg:
		return m.handleExpenseDeleted(msg)

	case currencyUpdatedMsg:
		if msg.err != nil {
			return m.setStatus(common.UserMessage(msg.err), statusError)
		}
		return m.setStatus("Currency set to "+msg.code, statusSuccess)

	case profileUpdatedMsg:
		if msg.err != nil {
			return m.setStatus(common.UserMessage(msg.err), statusError)
		}
		return m.setStatus("Profile updated", statusSuccess)

	case exportDoneMsg:
		if msg.err != nil {
			return m.setStatus(common.UserMessage(msg.err), statusError)
		}
		return m.setStatus("Exported to "+msg.path, statusSuccess)

	case monthDebouncedMsg:
		// A newer schedule supersedes this one.
		if msg.seq != m.fetchSeq || msg.month != m.month {
			return m, nil
		}
		return m, tea.Batch(m.fetchExpenses(m.month), m.fetchSummary(m.month))

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.statusText = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.delegate(msg)
}

// handleKey routes key events to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.delegate(msg)

	case StateForm:
		return m.delegate(msg)

	case StateConfirmDelete:
		return m.handleConfirmDeleteKey(msg)

	case StateHelp:
		m.state = m.prevState
		return m, nil
	}

	if m.searching && m.state == StateList {
		return m.handleSearchKey(msg)
	}

	// A focused text field owns the keyboard except for the hard quit.
	if m.state == StateSettings && m.settingsFocus == settingsFocusName {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleSettingsKey(msg)
	}

	if cmd, handled := m.handleGlobalKey(msg); handled {
		return m, cmd
	}

	switch m.state {
	case StateList:
		return m.handleListKey(msg)
	case StateSettings:
		return m.handleSettingsKey(msg)
	}

	return m, nil
}

// handleGlobalKey covers bindings shared by the summary, list and
// settings screens.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.prevState = m.state
		m.state = StateHelp
		return nil, true

	case key.Matches(msg, m.keymap.Summary):
		m.state = StateSummary
		return nil, true

	case key.Matches(msg, m.keymap.Expenses):
		m.state = StateList
		return nil, true

	case key.Matches(msg, m.keymap.Settings):
		m.enterSettings()
		return nil, true

	case key.Matches(msg, m.keymap.PrevMonth):
		return m.shiftMonth(-1), true

	case key.Matches(msg, m.keymap.NextMonth):
		return m.shiftMonth(1), true

	case key.Matches(msg, m.keymap.Refresh):
		return tea.Batch(m.fetchExpenses(m.month), m.fetchSummary(m.month)), true

	case key.Matches(msg, m.keymap.Export):
		return m.exportMonth(m.month), true

	case key.Matches(msg, m.keymap.Logout):
		m.store.Logout()
		m.resetToLogin("")
		return nil, true
	}

	return nil, false
}

// shiftMonth pages the selected month and arms the debounce so rapid
// paging produces a single fetch of the final month.
func (m *Model) shiftMonth(delta int) tea.Cmd {
	m.month = model.ShiftMonth(m.month, delta)
	m.fetchSeq++
	return m.scheduleMonthFetch(m.fetchSeq, m.month)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Add):
		m.form.Reset()
		m.prevState = m.state
		m.state = StateForm

	case key.Matches(msg, m.keymap.Edit):
		if m.cursor < len(visible) {
			m.form.Load(visible[m.cursor])
			m.prevState = m.state
			m.state = StateForm
		}

	case key.Matches(msg, m.keymap.Delete):
		if m.cursor < len(visible) {
			txn := visible[m.cursor]
			m.pendingDelete = &txn
			m.prevState = m.state
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.CycleType):
		m.cycleTypeFilter()
		m.cursor = 0

	case key.Matches(msg, m.keymap.CycleCategory):
		m.cycleCategoryFilter()
		m.cursor = 0

	case key.Matches(msg, m.keymap.SortByDate):
		m.listState.ToggleSort(viewmodel.SortByDate)

	case key.Matches(msg, m.keymap.SortByAmount):
		m.listState.ToggleSort(viewmodel.SortByAmount)

	case key.Matches(msg, m.keymap.SortByCategory):
		m.listState.ToggleSort(viewmodel.SortByCategory)
	}

	return m, nil
}

// handleSearchKey runs while the search input owns the keyboard.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.listState.Filters.Search = ""
		m.cursor = 0
		return m, nil

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.listState.Filters.Search = m.searchInput.Value()
	m.cursor = 0
	return m, cmd
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		if m.pendingDelete == nil {
			m.state = m.prevState
			return m, nil
		}
		id := m.pendingDelete.ID
		return m, m.deleteExpense(id)

	case key.Matches(msg, m.keymap.Cancel):
		m.pendingDelete = nil
		m.state = m.prevState
	}

	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	codes := currency.Codes()

	switch {
	case key.Matches(msg, m.keymap.Next), key.Matches(msg, m.keymap.Prev):
		if m.settingsFocus == settingsFocusName {
			m.settingsFocus = settingsFocusCurrency
			m.nameInput.Blur()
		} else {
			m.settingsFocus = settingsFocusName
			m.nameInput.Focus()
		}
		return m, nil
	}

	if m.settingsFocus == settingsFocusCurrency {
		switch {
		case key.Matches(msg, m.keymap.Up):
			if m.currencyCursor > 0 {
				m.currencyCursor--
			}
			return m, nil

		case key.Matches(msg, m.keymap.Down):
			if m.currencyCursor < len(codes)-1 {
				m.currencyCursor++
			}
			return m, nil

		case key.Matches(msg, m.keymap.Confirm):
			return m, m.updateCurrency(codes[m.currencyCursor])
		}
		return m, nil
	}

	if msg.String() == "enter" {
		name := m.nameInput.Value()
		if name == "" {
			return m.setStatus("name cannot be empty", statusError)
		}
		return m, m.updateProfile(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.resetToLogin("Session expired, please sign in again")
	return m, nil
}

func (m Model) handleLoggedIn(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.login.SetError(common.UserMessage(err))
		return m, nil
	}

	m.state = StateSummary
	m.month = model.CurrentMonth()
	m.transactions = m.store.Expenses()
	m.listState = viewmodel.NewListState()
	m.cursor = 0
	return m, m.fetchSummary(m.month)
}

func (m Model) handleRegistered(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.login.SetError(common.UserMessage(err))
		return m, nil
	}

	m.state = StateSummary
	m.month = model.CurrentMonth()
	m.listState = viewmodel.NewListState()
	m.cursor = 0
	return m, tea.Batch(m.fetchExpenses(m.month), m.fetchSummary(m.month))
}

func (m Model) handleExpensesLoaded(msg expensesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.setStatus(common.UserMessage(msg.err), statusError)
	}

	// A fetch for a month the user has already paged away from is stale.
	if msg.month != m.month {
		return m, nil
	}

	m.transactions = msg.transactions
	if max := len(m.visible()) - 1; m.cursor > max {
		m.cursor = 0
	}
	return m, nil
}

func (m Model) handleSummaryLoaded(msg summaryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.setStatus(common.UserMessage(msg.err), statusError)
	}
	if msg.month != m.month || msg.summary == nil {
		return m, nil
	}

	view := viewmodel.NewSummaryView(*msg.summary)
	m.summary = &view
	return m, nil
}

func (m Model) handleExpenseSaved(msg expenseSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Validation feedback belongs inside the form so the input
		// survives for correction.
		if m.state == StateForm {
			m.form.SetError(common.UserMessage(msg.err))
			return m, nil
		}
		return m.setStatus(common.UserMessage(msg.err), statusError)
	}

	m.state = m.prevState
	m.transactions = m.store.Expenses()

	text := "Transaction added"
	if msg.editing {
		text = "Transaction updated"
	}
	next, statusCmd := m.setStatus(text, statusSuccess)
	return next, tea.Batch(statusCmd, m.fetchSummary(m.month))
}

func (m Model) handleExpenseDeleted(msg expenseDeletedMsg) (tea.Model, tea.Cmd) {
	m.pendingDelete = nil
	m.state = m.prevState

	if msg.err != nil {
		return m.setStatus(common.UserMessage(msg.err), statusError)
	}

	m.transactions = m.store.Expenses()
	if max := len(m.visible()) - 1; m.cursor > max && m.cursor > 0 {
		m.cursor = max
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	// The prune above is provisional; the month is refetched so the list
	// resynchronizes with the server.
	next, statusCmd := m.setStatus("Transaction deleted", statusSuccess)
	return next, tea.Batch(statusCmd, m.fetchExpenses(m.month), m.fetchSummary(m.month))
}

// delegate forwards a message to the component that owns the active
// screen.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateLogin:
		m.login, cmd = m.login.Update(msg)
	case StateForm:
		m.form, cmd = m.form.Update(msg)
	default:
		if m.searching {
			m.searchInput, cmd = m.searchInput.Update(msg)
		}
	}
	return m, cmd
}

// setStatus replaces the transient status line and schedules its expiry.
func (m Model) setStatus(text string, kind statusKind) (Model, tea.Cmd) {
	m.statusID++
	m.statusText = text
	m.statusKind = kind
	return m, m.expireStatus(m.statusID)
}

func (m *Model) resetToLogin(errText string) {
	m.state = StateLogin
	m.login = components.NewLoginModel(m.theme)
	if errText != "" {
		m.login.SetError(errText)
	}
	m.transactions = nil
	m.summary = nil
	m.listState = viewmodel.NewListState()
	m.cursor = 0
	m.searching = false
	m.searchInput.SetValue("")
	m.statusText = ""
}

func (m *Model) enterSettings() {
	m.state = StateSettings
	m.settingsFocus = settingsFocusName
	if user := m.store.User(); user != nil {
		m.nameInput.SetValue(user.Name)
	}
	m.nameInput.Focus()

	m.currencyCursor = 0
	for i, code := range currency.Codes() {
		if code == m.store.Currency() {
			m.currencyCursor = i
			break
		}
	}
}

// visible is the filtered, sorted projection the list screen renders.
func (m Model) visible() []model.Transaction {
	return m.listState.Apply(m.transactions)
}

func (m *Model) cycleTypeFilter() {
	switch m.listState.Filters.Type {
	case viewmodel.TypeAll:
		m.listState.Filters.Type = viewmodel.TypeExpenses
	case viewmodel.TypeExpenses:
		m.listState.Filters.Type = viewmodel.TypeIncome
	default:
		m.listState.Filters.Type = viewmodel.TypeAll
	}
}

// cycleCategoryFilter steps through "all" plus the categories present in
// the current list.
func (m *Model) cycleCategoryFilter() {
	options := append([]string{viewmodel.CategoryAll}, viewmodel.CategoriesSeen(m.transactions)...)

	idx := 0
	for i, opt := range options {
		if opt == m.listState.Filters.Category {
			idx = i
			break
		}
	}
	m.listState.Filters.Category = options[(idx+1)%len(options)]
}
