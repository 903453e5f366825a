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

var timeRanges = []domain.TimeRange{
	domain.Range7D, domain.Range30D, domain.Range90D, domain.Range1Y,
}

// AnalyticsModel renders the performance analytics for a selected window.
// Switching the window dispatches a new request; a quick second switch
// supersedes the first and only the latest window's data lands.
type AnalyticsModel struct {
	services Services
	state    store.State
	styles   Styles
	width    int
	height   int
}

func NewAnalyticsModel(svc Services) AnalyticsModel {
	return AnalyticsModel{services: svc}
}

func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Refresh):
			m.services.Store.Dispatch(store.AnalyticsRequested{
				Range: store.SelectAnalytics(m.state).TimeRange,
			})
		case key.Matches(keyMsg, DefaultKeyMap.NextRange):
			m.services.Store.Dispatch(store.AnalyticsRequested{Range: m.shiftRange(1)})
		case key.Matches(keyMsg, DefaultKeyMap.PrevRange):
			m.services.Store.Dispatch(store.AnalyticsRequested{Range: m.shiftRange(-1)})
		}
	}
	return m, nil
}

func (m AnalyticsModel) View() string {
	st := m.styles
	slice := store.SelectAnalytics(m.state)

	var header []string
	for _, r := range timeRanges {
		label := " " + string(r) + " "
		if r == slice.TimeRange {
			header = append(header, st.ActiveTab.Render(label))
		} else {
			header = append(header, st.InactiveTab.Render(label))
		}
	}
	rangeBar := "  " + lipgloss.JoinHorizontal(lipgloss.Top, header...)

	if slice.Loading && slice.Data == nil {
		return lipgloss.JoinVertical(lipgloss.Left, rangeBar, st.Subtext.Render("  Loading analytics..."))
	}
	if slice.Err != "" && slice.Data == nil {
		return lipgloss.JoinVertical(lipgloss.Left, rangeBar, st.Error.Render("  Error: "+slice.Err))
	}
	if slice.Data == nil {
		return lipgloss.JoinVertical(lipgloss.Left, rangeBar,
			st.Subtext.Render("  No analytics yet. Press R to load."))
	}

	data := slice.Data
	metrics := data.Metrics

	var left []string
	left = append(left, st.Header.Render("  Metrics"))
	profit := signedUSD(metrics.TotalProfit)
	if metrics.TotalProfit >= 0 {
		profit = st.Positive.Render(profit)
	} else {
		profit = st.Negative.Render(profit)
	}
	left = append(left,
		fmt.Sprintf("  Total profit   %s (%.1f%%)", profit, metrics.TotalProfitPercent),
		fmt.Sprintf("  Win rate       %.1f%%", metrics.WinRate),
		fmt.Sprintf("  Trades         %d", metrics.TotalTrades),
		fmt.Sprintf("  Profit factor  %.2f", metrics.ProfitFactor),
		fmt.Sprintf("  Sharpe ratio   %.2f", metrics.SharpeRatio),
		fmt.Sprintf("  Max drawdown   %.1f%%", metrics.MaxDrawdown),
		fmt.Sprintf("  Best trade     %s", st.Positive.Render(signedUSD(metrics.BestTrade))),
		fmt.Sprintf("  Worst trade    %s", st.Negative.Render(signedUSD(metrics.WorstTrade))),
	)

	var right []string
	right = append(right, st.Header.Render("  By Asset"))
	for _, a := range data.AssetPerformance {
		p := signedUSD(a.Profit)
		if a.Profit >= 0 {
			p = st.Positive.Render(p)
		} else {
			p = st.Negative.Render(p)
		}
		right = append(right, fmt.Sprintf("  %-8s %4d trades  win %5.1f%%  %s", a.Asset, a.Trades, a.WinRate, p))
	}

	halfWidth := m.width/2 - 2
	if halfWidth < 30 {
		halfWidth = 30
	}
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Border.Width(halfWidth).Render(strings.Join(left, "\n")),
		st.Border.Width(halfWidth).Render(strings.Join(right, "\n")))

	var chart []string
	chart = append(chart, st.Header.Render("  Daily P&L"))
	scale := 1.0
	for _, d := range data.DailyPnL {
		if d.Profit > scale {
			scale = d.Profit
		}
		if -d.Loss > scale {
			scale = -d.Loss
		}
	}
	days := data.DailyPnL
	if len(days) > 14 {
		days = days[len(days)-14:]
	}
	for _, d := range days {
		chart = append(chart, "  "+RenderPnLBar(st, d, scale, 30))
	}

	footer := st.Subtext.Render("  ←/→: change range   R: refresh")
	if slice.Loading {
		footer = st.Subtext.Render("  Loading " + string(slice.TimeRange) + "...")
	} else if slice.Err != "" {
		footer = st.Error.Render("  Refresh failed: " + slice.Err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		rangeBar,
		topRow,
		st.Border.Width(m.width-2).Render(strings.Join(chart, "\n")),
		footer)
}

func (m *AnalyticsModel) SetState(st store.State) { m.state = st }
func (m *AnalyticsModel) SetStyles(st Styles)     { m.styles = st }

func (m *AnalyticsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m AnalyticsModel) shiftRange(dir int) domain.TimeRange {
	current := store.SelectAnalytics(m.state).TimeRange
	idx := 1
	for i, r := range timeRanges {
		if r == current {
			idx = i
		}
	}
	idx = (idx + dir + len(timeRanges)) % len(timeRanges)
	return timeRanges[idx]
}
