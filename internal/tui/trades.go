package tui

import (
	"fmt"
	"strings"

	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TradesModel lists executed trades, optionally only open positions.
type TradesModel struct {
	services Services
	state    store.State
	styles   Styles
	openOnly bool
	scroll   int
	width    int
	height   int
}

func NewTradesModel(svc Services) TradesModel {
	return TradesModel{services: svc}
}

func (m TradesModel) Update(msg tea.Msg) (TradesModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Refresh):
			m.services.Store.Dispatch(store.TradesRequested{})
		case keyMsg.String() == "o":
			m.openOnly = !m.openOnly
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

func (m TradesModel) View() string {
	st := m.styles
	slice := store.SelectTrades(m.state)

	if slice.Loading && len(slice.Trades) == 0 {
		return st.Subtext.Render("  Loading trades...")
	}
	if slice.Err != "" && len(slice.Trades) == 0 {
		return st.Error.Render("  Error: " + slice.Err)
	}

	trades := slice.Trades
	if m.openOnly {
		trades = store.SelectOpenTrades(m.state)
	}

	var pnl float64
	for _, t := range trades {
		pnl += t.PnL
	}

	var lines []string
	title := fmt.Sprintf("  Trades (%d, total P&L %s)", len(trades), signedUSD(pnl))
	if m.openOnly {
		title = fmt.Sprintf("  Open Trades (%d)", len(trades))
	}
	lines = append(lines, st.Header.Render(title))
	lines = append(lines, st.Subtext.Render("  Asset    Dir    Amount  Status          P&L  Opened"))
	lines = append(lines, st.Subtext.Render("  "+strings.Repeat("─", 62)))

	rows := m.visibleRows()
	start := m.clampScroll(len(trades), rows)
	end := start + rows
	if end > len(trades) {
		end = len(trades)
	}
	for _, t := range trades[start:end] {
		lines = append(lines, "  "+FormatTrade(st, t))
	}
	if len(trades) == 0 {
		lines = append(lines, st.Subtext.Render("  No trades"))
	}

	footer := st.Subtext.Render("  o: toggle open-only   R: refresh   ↑/↓: scroll")
	if slice.Loading {
		footer = st.Subtext.Render("  Refreshing...")
	} else if slice.Err != "" {
		footer = st.Error.Render("  Refresh failed: " + slice.Err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Border.Width(m.width-2).Render(strings.Join(lines, "\n")),
		footer)
}

func (m *TradesModel) SetState(st store.State) { m.state = st }
func (m *TradesModel) SetStyles(st Styles)     { m.styles = st }

func (m *TradesModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m TradesModel) visibleRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m *TradesModel) clampScroll(total, rows int) int {
	max := total - rows
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
	return m.scroll
}
