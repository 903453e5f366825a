package tui

import (
	"strings"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SupportModel is the contact-form screen for filing a support ticket.
type SupportModel struct {
	services Services
	state    store.State
	styles   Styles

	inputs   []textinput.Model // name, email, subject, message
	focused  int
	localErr string

	width  int
	height int
}

var supportLabels = []string{"Name", "Email", "Subject", "Message"}

func NewSupportModel(svc Services) SupportModel {
	inputs := make([]textinput.Model, len(supportLabels))
	for i, label := range supportLabels {
		ti := textinput.New()
		ti.Placeholder = strings.ToLower(label)
		ti.CharLimit = 256
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[3].CharLimit = 2000
	inputs[0].Focus()

	return SupportModel{services: svc, inputs: inputs}
}

func (m SupportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SupportModel) Update(msg tea.Msg) (SupportModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		contact := store.SelectContact(m.state)

		switch keyMsg.Type {
		case tea.KeyEsc:
			if contact.Submitted || contact.Err != "" {
				m.services.Store.Dispatch(store.ContactStatusCleared{})
				if contact.Submitted {
					m.clearForm()
				}
			}
			return m, nil

		case tea.KeyDown:
			m.cycleFocus(1)
			return m, nil
		case tea.KeyUp:
			m.cycleFocus(-1)
			return m, nil

		case tea.KeyEnter:
			if contact.Submitting {
				return m, nil
			}
			form := domain.ContactForm{
				Name:    strings.TrimSpace(m.inputs[0].Value()),
				Email:   strings.TrimSpace(m.inputs[1].Value()),
				Subject: strings.TrimSpace(m.inputs[2].Value()),
				Message: strings.TrimSpace(m.inputs[3].Value()),
			}
			if err := form.Validate(); err != nil {
				m.localErr = err.Error()
				return m, nil
			}
			m.localErr = ""
			m.services.Store.Dispatch(store.ContactSubmitRequested{Form: form})
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m SupportModel) View() string {
	st := m.styles
	contact := store.SelectContact(m.state)

	var lines []string
	lines = append(lines, st.Header.Render("  Contact Support"), "")

	if contact.Submitted {
		lines = append(lines,
			st.Positive.Render("  Ticket submitted!"),
			"",
			"  Your ticket number is "+st.Header.Render(contact.TicketID),
			st.Subtext.Render("  We'll get back to you within 24 hours."),
			"",
			st.Subtext.Render("  esc: file another ticket"))
		return st.Border.Width(m.boxWidth()).Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	for i, label := range supportLabels {
		lines = append(lines, "  "+st.Subtext.Render(label), "  "+m.inputs[i].View())
	}
	lines = append(lines, "")

	switch {
	case contact.Submitting:
		lines = append(lines, st.Subtext.Render("  Submitting..."))
	case m.localErr != "":
		lines = append(lines, st.Error.Render("  "+m.localErr))
	case contact.Err != "":
		lines = append(lines, st.Error.Render("  "+contact.Err+" (esc to dismiss)"))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, "", st.Subtext.Render("  ↑/↓: move between fields   enter: submit"))

	return st.Border.Width(m.boxWidth()).Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m *SupportModel) SetState(st store.State) { m.state = st }
func (m *SupportModel) SetStyles(st Styles)     { m.styles = st }

func (m *SupportModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Focus gives focus to the first form field.
func (m *SupportModel) Focus() {
	m.inputs[m.focused].Focus()
}

// Blur removes focus from all fields.
func (m *SupportModel) Blur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m SupportModel) boxWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 60
	}
	return w
}

func (m *SupportModel) cycleFocus(dir int) {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + dir + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focused].Focus()
}

func (m *SupportModel) clearForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.inputs[m.focused].Blur()
	m.focused = 0
	m.inputs[0].Focus()
	m.localErr = ""
}
