package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"botdeck/internal/chat"
	"botdeck/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChatModel is the support-chat screen. The conversation itself lives in
// the chat package; this model renders snapshots and forwards sends and
// retries.
type ChatModel struct {
	services Services
	styles   Styles

	messages []domain.ChatMessage
	typing   bool
	sendErr  string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
}

func NewChatModel(svc Services) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Message support..."
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := ChatModel{
		services: svc,
		input:    ti,
		spinner:  sp,
	}
	m.refresh()
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case chatUpdateMsg:
		m.refresh()
		if m.ready {
			m.viewport.SetContent(m.renderMessages())
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.send(text, "")
				m.input.SetValue("")
			}
			return m, nil
		}
		if key.Matches(msg, DefaultKeyMap.Retry) {
			if failed, ok := m.services.Conversation.LastFailed(); ok {
				m.send("", failed.TempID)
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatModel) View() string {
	st := m.styles
	var sections []string

	sections = append(sections, st.Header.Render("  Support Chat"))
	sections = append(sections, st.Subtext.Render(strings.Repeat("─", max(m.width-2, 10))))

	if !m.ready {
		m.initViewport()
	}
	sections = append(sections, m.viewport.View())

	sections = append(sections, st.Subtext.Render(strings.Repeat("─", max(m.width-2, 10))))

	if m.typing {
		sections = append(sections, fmt.Sprintf("  %s Support is typing...", m.spinner.View()))
	}
	if m.sendErr != "" {
		sections = append(sections, st.Error.Render("  "+m.sendErr))
	}
	sections = append(sections, "  "+m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ChatModel) SetStyles(st Styles) { m.styles = st }

func (m *ChatModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 6
	m.ready = false // re-initialize viewport on next View
}

// Focus gives focus to the text input.
func (m *ChatModel) Focus() { m.input.Focus() }

// Blur removes focus from the text input.
func (m *ChatModel) Blur() { m.input.Blur() }

// MessageCount returns the number of rendered messages (for testing).
func (m ChatModel) MessageCount() int { return len(m.messages) }

func (m *ChatModel) refresh() {
	m.messages = m.services.Conversation.Snapshot()
	m.typing = m.services.Conversation.Typing()
}

func (m *ChatModel) send(content, tempID string) {
	_, err := m.services.Conversation.Send(context.Background(), content, tempID)
	switch {
	case err == nil:
		m.sendErr = ""
	case errors.Is(err, chat.ErrSendInFlight):
		m.sendErr = "Still sending, hang on..."
	default:
		m.sendErr = err.Error()
	}
	m.refresh()
	if m.ready {
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
	}
}

func (m *ChatModel) initViewport() {
	vpHeight := m.height - 7
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := m.width - 2
	if vpWidth < 10 {
		vpWidth = 10
	}
	m.viewport = viewport.New(vpWidth, vpHeight)
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
	m.ready = true
}

func (m ChatModel) renderMessages() string {
	var lines []string
	for _, msg := range m.messages {
		lines = append(lines, FormatChatMessage(m.styles, msg), "")
	}
	return strings.Join(lines, "\n")
}
