package tui

import (
	"fmt"
	"strings"

	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SignalsModel lists bot signals with an optional status filter.
type SignalsModel struct {
	services   Services
	state      store.State
	styles     Styles
	filterIdx  int
	scroll     int
	width      int
	height     int
}

var signalFilters = []struct {
	name   string
	status domain.SignalStatus
}{
	{"all", ""},
	{"pending", domain.SignalPending},
	{"executed", domain.SignalExecuted},
	{"expired", domain.SignalExpired},
	{"cancelled", domain.SignalCancelled},
}

func NewSignalsModel(svc Services) SignalsModel {
	return SignalsModel{services: svc}
}

func (m SignalsModel) Update(msg tea.Msg) (SignalsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Refresh):
			m.services.Store.Dispatch(store.SignalsRequested{})
		case keyMsg.String() == "f":
			m.filterIdx = (m.filterIdx + 1) % len(signalFilters)
			m.scroll = 0
		case key.Matches(keyMsg, DefaultKeyMap.Down):
			m.scroll++
		case key.Matches(keyMsg, DefaultKeyMap.Up):
			if m.scroll > 0 {
				m.scroll--
			}
		}
	}
	return m, nil
}

func (m SignalsModel) View() string {
	st := m.styles
	slice := store.SelectSignals(m.state)

	if slice.Loading && len(slice.Signals) == 0 {
		return st.Subtext.Render("  Loading signals...")
	}
	if slice.Err != "" && len(slice.Signals) == 0 {
		return st.Error.Render("  Error: " + slice.Err)
	}

	filtered := m.filtered(slice.Signals)

	var lines []string
	filter := signalFilters[m.filterIdx].name
	lines = append(lines, st.Header.Render(fmt.Sprintf("  Signals (%d, filter: %s)", len(filtered), filter)))
	lines = append(lines, st.Subtext.Render("  Asset    Dir  Conf  Entry      Status    Created"))
	lines = append(lines, st.Subtext.Render("  "+strings.Repeat("─", 60)))

	rows := m.visibleRows()
	start := m.clampScroll(len(filtered), rows)
	end := start + rows
	if end > len(filtered) {
		end = len(filtered)
	}
	for _, s := range filtered[start:end] {
		lines = append(lines, "  "+FormatSignal(st, s))
	}
	if len(filtered) == 0 {
		lines = append(lines, st.Subtext.Render("  No signals match"))
	}

	footer := "  f: cycle filter   R: refresh   ↑/↓: scroll"
	if slice.Loading {
		footer = "  Refreshing..."
	} else if slice.Err != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Border.Width(m.width-2).Render(strings.Join(lines, "\n")),
			st.Error.Render("  Refresh failed: "+slice.Err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Border.Width(m.width-2).Render(strings.Join(lines, "\n")),
		st.Subtext.Render(footer))
}

func (m *SignalsModel) SetState(st store.State) { m.state = st }
func (m *SignalsModel) SetStyles(st Styles)     { m.styles = st }

func (m *SignalsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m SignalsModel) filtered(signals []domain.Signal) []domain.Signal {
	want := signalFilters[m.filterIdx].status
	if want == "" {
		return signals
	}
	out := make([]domain.Signal, 0, len(signals))
	for _, s := range signals {
		if s.Status == want {
			out = append(out, s)
		}
	}
	return out
}

func (m SignalsModel) visibleRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m *SignalsModel) clampScroll(total, rows int) int {
	max := total - rows
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
	return m.scroll
}
