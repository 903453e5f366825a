package tui

import (
	"strings"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
	fieldName
)

// LoginModel is the pre-auth screen, covering both login and registration.
type LoginModel struct {
	services Services
	state    store.State
	styles   Styles

	email      textinput.Model
	password   textinput.Model
	name       textinput.Model
	focused    loginField
	registered bool // registration mode toggle
	localErr   string

	width  int
	height int
}

// NewLoginModel creates the login screen.
func NewLoginModel(svc Services) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 128
	name.Width = 40

	return LoginModel{
		services: svc,
		email:    email,
		password: password,
		name:     name,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyDown:
			m.cycleFocus(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.cycleFocus(-1)
			return m, nil
		case tea.KeyEnter:
			return m, m.submit()
		}
		if key.String() == "ctrl+t" {
			m.registered = !m.registered
			m.localErr = ""
			m.services.Store.Dispatch(store.AuthErrorCleared{})
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	if m.registered {
		m.name, cmd = m.name.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m LoginModel) View() string {
	st := m.styles

	title := "Sign in to BotDeck"
	action := "enter: sign in    ctrl+t: create an account    ctrl+c: quit"
	if m.registered {
		title = "Create your BotDeck account"
		action = "enter: register    ctrl+t: back to sign in    ctrl+c: quit"
	}

	var lines []string
	lines = append(lines, st.Header.Render(title), "")
	if m.registered {
		lines = append(lines, "  "+m.name.View())
	}
	lines = append(lines, "  "+m.email.View(), "  "+m.password.View(), "")

	if m.state.Auth.Loading {
		lines = append(lines, st.Subtext.Render("  Signing in..."))
	} else if m.localErr != "" {
		lines = append(lines, st.Error.Render("  "+m.localErr))
	} else if authErr := store.SelectAuthError(m.state); authErr != "" {
		lines = append(lines, st.Error.Render("  "+authErr))
	} else if m.state.Auth.RegistrationDone && !m.registered {
		lines = append(lines, st.Positive.Render("  Account created, sign in below."))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, "", st.Subtext.Render("  "+action))

	box := st.Border.Padding(1, 2).Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *LoginModel) SetState(st store.State) { m.state = st }
func (m *LoginModel) SetStyles(st Styles)     { m.styles = st }

func (m *LoginModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *LoginModel) cycleFocus(dir int) {
	fields := []loginField{fieldEmail, fieldPassword}
	if m.registered {
		fields = []loginField{fieldName, fieldEmail, fieldPassword}
	}
	idx := 0
	for i, f := range fields {
		if f == m.focused {
			idx = i
		}
	}
	idx = (idx + dir + len(fields)) % len(fields)
	m.focused = fields[idx]

	m.email.Blur()
	m.password.Blur()
	m.name.Blur()
	switch m.focused {
	case fieldEmail:
		m.email.Focus()
	case fieldPassword:
		m.password.Focus()
	case fieldName:
		m.name.Focus()
	}
}

func (m *LoginModel) submit() tea.Cmd {
	if m.state.Auth.Loading {
		return nil
	}

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()

	if m.registered {
		name := strings.TrimSpace(m.name.Value())
		if err := domain.ValidateRegistration(name, email, password); err != nil {
			m.localErr = err.Error()
			return nil
		}
		m.localErr = ""
		m.services.Store.Dispatch(store.RegisterRequested{Name: name, Email: email, Password: password})
		return nil
	}

	if err := domain.ValidateLogin(email, password); err != nil {
		m.localErr = err.Error()
		return nil
	}
	m.localErr = ""
	m.services.Store.Dispatch(store.LoginRequested{Email: email, Password: password})
	return nil
}
