package tui

import (
	"fmt"
	"strings"

	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel renders the headline stats, bot status, and activity feed.
type DashboardModel struct {
	services Services
	state    store.State
	styles   Styles
	width    int
	height   int
}

func NewDashboardModel(svc Services) DashboardModel {
	return DashboardModel{services: svc}
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, DefaultKeyMap.Refresh) {
			m.services.Store.Dispatch(store.DashboardRequested{})
		}
	}
	return m, nil
}

func (m DashboardModel) View() string {
	st := m.styles
	slice := store.SelectDashboard(m.state)

	if slice.Loading && slice.Data == nil {
		return st.Subtext.Render("  Loading dashboard...")
	}
	if slice.Err != "" && slice.Data == nil {
		return st.Error.Render("  Error: " + slice.Err)
	}
	if slice.Data == nil {
		return st.Subtext.Render("  No dashboard data. Press R to refresh.")
	}

	data := slice.Data
	var sections []string

	statsBox := st.Border.Width(m.halfWidth()).Render(m.renderStats())
	botBox := st.Border.Width(m.halfWidth()).Render(m.renderBotStats())
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, statsBox, botBox))

	var feed []string
	feed = append(feed, st.Header.Render("  Recent Activity"))
	count := len(data.ActivityFeed)
	if count > 8 {
		count = 8
	}
	for _, item := range data.ActivityFeed[:count] {
		feed = append(feed, "  "+FormatActivity(st, item))
	}
	if count == 0 {
		feed = append(feed, st.Subtext.Render("  No recent activity"))
	}
	sections = append(sections, st.Border.Width(m.width-2).Render(strings.Join(feed, "\n")))

	var assets []string
	assets = append(assets, st.Header.Render("  Asset Performance"))
	for _, a := range data.AssetPerformance {
		pnl := signedUSD(a.PnL)
		if a.PnL >= 0 {
			pnl = st.Positive.Render(pnl)
		} else {
			pnl = st.Negative.Render(pnl)
		}
		assets = append(assets, fmt.Sprintf("  %-8s %4d trades  win %5.1f%%  %s",
			a.Asset, a.Trades, a.WinRate, pnl))
	}
	sections = append(sections, st.Border.Width(m.width-2).Render(strings.Join(assets, "\n")))

	footer := st.Subtext.Render("  R: refresh   T: theme   ctrl+l: logout   q: quit")
	if slice.Loading {
		footer = st.Subtext.Render("  Refreshing...")
	} else if slice.Err != "" {
		footer = st.Error.Render("  Refresh failed: " + slice.Err)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) SetState(st store.State) { m.state = st }
func (m *DashboardModel) SetStyles(st Styles)     { m.styles = st }

func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m DashboardModel) halfWidth() int {
	w := m.width/2 - 2
	if w < 30 {
		w = 30
	}
	return w
}

func (m DashboardModel) renderStats() string {
	st := m.styles
	stats := store.SelectDashboard(m.state).Data.Stats

	profit := signedUSD(stats.TotalProfit)
	if stats.TotalProfit >= 0 {
		profit = st.Positive.Render(profit)
	} else {
		profit = st.Negative.Render(profit)
	}

	lines := []string{
		st.Header.Render("  Overview"),
		fmt.Sprintf("  Total profit    %s", profit),
		fmt.Sprintf("  Win rate        %.1f%%", stats.WinRate),
		fmt.Sprintf("  Total trades    %d", stats.TotalTrades),
		fmt.Sprintf("  Open positions  %d", stats.OpenPositions),
		fmt.Sprintf("  Balance         %s", formatUSD(stats.AccountBalance)),
		fmt.Sprintf("  Today           %s", signedUSD(stats.TodayProfit)),
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderBotStats() string {
	st := m.styles
	bot := store.SelectDashboard(m.state).Data.BotStats

	running := st.Positive.Render("running")
	if !bot.IsRunning {
		running = st.Negative.Render("stopped")
	}

	lines := []string{
		st.Header.Render("  Bot"),
		fmt.Sprintf("  Status          %s", running),
		fmt.Sprintf("  Active signals  %d", bot.ActiveSignals),
		fmt.Sprintf("  Today trades    %d", bot.TodayTrades),
		fmt.Sprintf("  Today P&L       %s (%.1f%%)", signedUSD(bot.TodayPnL), bot.TodayPnLPercent),
		fmt.Sprintf("  Profit factor   %.2f", bot.ProfitFactor),
		fmt.Sprintf("  Max drawdown    %.1f%%", bot.MaxDrawdown),
	}
	return strings.Join(lines, "\n")
}
