package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/ledgerline/internal/tui/themes"
)

// AuthSubmitMsg carries login or registration credentials to the host.
type AuthSubmitMsg struct {
	Name     string
	Email    string
	Password string
	Register bool
}

const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
)

// LoginModel is the sign-in and sign-up screen. The name field only
// appears in register mode.
type LoginModel struct {
	theme    themes.Theme
	errText  string
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	register bool
	busy     bool
}

// NewLoginModel creates the login screen in sign-in mode.
func NewLoginModel(theme themes.Theme) LoginModel {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120

	return LoginModel{
		theme:    theme,
		name:     name,
		email:    email,
		password: password,
		focus:    authFieldEmail,
	}
}

// SetError shows an authentication failure above the fields and unlocks
// the form.
func (l *LoginModel) SetError(text string) {
	l.errText = text
	l.busy = false
}

// SetBusy locks the form while a request is in flight.
func (l *LoginModel) SetBusy(busy bool) {
	l.busy = busy
}

// Update handles login screen key events.
func (l LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	if l.busy {
		return l, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "enter":
		return l.submit()

	case "tab", "down":
		l.setFocus(l.nextField(1))
		return l, nil

	case "shift+tab", "up":
		l.setFocus(l.nextField(-1))
		return l, nil

	case "ctrl+r":
		l.register = !l.register
		l.errText = ""
		if l.register {
			l.setFocus(authFieldName)
		} else {
			l.setFocus(authFieldEmail)
		}
		return l, nil
	}

	return l.updateInputs(msg)
}

// View renders the login screen.
func (l LoginModel) View() string {
	var b strings.Builder

	title := "Sign In"
	toggle := "Ctrl+R: create an account"
	if l.register {
		title = "Create Account"
		toggle = "Ctrl+R: back to sign in"
	}
	b.WriteString(l.theme.Title.Render("Ledgerline"))
	b.WriteString("\n")
	b.WriteString(l.theme.Subtitle.Render(title))
	b.WriteString("\n")

	if l.errText != "" {
		b.WriteString(l.theme.StatusError.Render(l.errText))
		b.WriteString("\n\n")
	}

	if l.register {
		b.WriteString(l.renderField(authFieldName, "Name", l.name.View()))
	}
	b.WriteString(l.renderField(authFieldEmail, "Email", l.email.View()))
	b.WriteString(l.renderField(authFieldPassword, "Password", l.password.View()))

	b.WriteString("\n")
	if l.busy {
		b.WriteString(l.theme.StatusInfo.Render("Signing in..."))
	} else {
		b.WriteString(l.theme.Faint.Render("Enter: submit • " + toggle))
	}

	return l.theme.BorderedBox.Render(b.String())
}

func (l LoginModel) renderField(field int, label, value string) string {
	marker := "  "
	labelStyle := l.theme.Faint
	if l.focus == field {
		marker = l.theme.Header.Render("> ")
		labelStyle = l.theme.Header
	}
	return marker + labelStyle.Render(label+":") + " " + value + "\n"
}

func (l LoginModel) submit() (LoginModel, tea.Cmd) {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	name := strings.TrimSpace(l.name.Value())

	if l.register && name == "" {
		l.errText = "name is required"
		l.setFocus(authFieldName)
		return l, nil
	}
	if email == "" {
		l.errText = "email is required"
		l.setFocus(authFieldEmail)
		return l, nil
	}
	if password == "" {
		l.errText = "password is required"
		l.setFocus(authFieldPassword)
		return l, nil
	}

	l.errText = ""
	l.busy = true
	msg := AuthSubmitMsg{
		Register: l.register,
		Name:     name,
		Email:    email,
		Password: password,
	}
	return l, func() tea.Msg { return msg }
}

// nextField cycles focus, skipping the name field outside register mode.
func (l LoginModel) nextField(step int) int {
	field := l.focus
	for {
		field = (field + step + 3) % 3
		if field != authFieldName || l.register {
			return field
		}
	}
}

func (l *LoginModel) setFocus(field int) {
	l.focus = field
	l.name.Blur()
	l.email.Blur()
	l.password.Blur()

	switch field {
	case authFieldName:
		l.name.Focus()
	case authFieldEmail:
		l.email.Focus()
	case authFieldPassword:
		l.password.Focus()
	}
}

func (l LoginModel) updateInputs(msg tea.Msg) (LoginModel, tea.Cmd) {
	var cmd tea.Cmd
	switch l.focus {
	case authFieldName:
		l.name, cmd = l.name.Update(msg)
	case authFieldEmail:
		l.email, cmd = l.email.Update(msg)
	case authFieldPassword:
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}
