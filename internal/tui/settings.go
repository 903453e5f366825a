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

// settingsRow is one editable line on the settings screen.
type settingsRow struct {
	label  string
	value  func(domain.TradingSettings) string
	adjust func(domain.TradingSettings, int) domain.TradingSettings
}

// SettingsModel edits the bot's trading parameters. Rows are adjusted
// locally and saved as one update request.
type SettingsModel struct {
	services Services
	state    store.State
	styles   Styles

	draft   domain.TradingSettings
	dirty   bool
	cursor  int
	width   int
	height  int
}

var settingsRows = []settingsRow{
	{
		label: "Auto trading",
		value: func(s domain.TradingSettings) string { return onOff(s.AutoTrading) },
		adjust: func(s domain.TradingSettings, _ int) domain.TradingSettings {
			s.AutoTrading = !s.AutoTrading
			return s
		},
	},
	{
		label: "Default amount",
		value: func(s domain.TradingSettings) string { return formatUSD(s.DefaultAmount) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.DefaultAmount += float64(dir) * 5
			if s.DefaultAmount < 5 {
				s.DefaultAmount = 5
			}
			return s
		},
	},
	{
		label: "Max daily loss",
		value: func(s domain.TradingSettings) string { return formatUSD(s.MaxDailyLoss) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.MaxDailyLoss += float64(dir) * 25
			if s.MaxDailyLoss < 25 {
				s.MaxDailyLoss = 25
			}
			return s
		},
	},
	{
		label: "Max daily trades",
		value: func(s domain.TradingSettings) string { return fmt.Sprintf("%d", s.MaxDailyTrades) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.MaxDailyTrades += dir * 5
			if s.MaxDailyTrades < 5 {
				s.MaxDailyTrades = 5
			}
			return s
		},
	},
	{
		label: "Min confidence",
		value: func(s domain.TradingSettings) string { return fmt.Sprintf("%d%%", s.MinConfidence) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.MinConfidence += dir * 5
			if s.MinConfidence < 50 {
				s.MinConfidence = 50
			}
			if s.MinConfidence > 95 {
				s.MinConfidence = 95
			}
			return s
		},
	},
	{
		label: "Martingale",
		value: func(s domain.TradingSettings) string { return onOff(s.Martingale) },
		adjust: func(s domain.TradingSettings, _ int) domain.TradingSettings {
			s.Martingale = !s.Martingale
			return s
		},
	},
	{
		label: "Martingale multiplier",
		value: func(s domain.TradingSettings) string { return fmt.Sprintf("%.1fx", s.MartingaleMultiplier) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.MartingaleMultiplier += float64(dir) * 0.5
			if s.MartingaleMultiplier < 1 {
				s.MartingaleMultiplier = 1
			}
			return s
		},
	},
	{
		label: "Max martingale steps",
		value: func(s domain.TradingSettings) string { return fmt.Sprintf("%d", s.MaxMartingaleSteps) },
		adjust: func(s domain.TradingSettings, dir int) domain.TradingSettings {
			s.MaxMartingaleSteps += dir
			if s.MaxMartingaleSteps < 1 {
				s.MaxMartingaleSteps = 1
			}
			if s.MaxMartingaleSteps > 10 {
				s.MaxMartingaleSteps = 10
			}
			return s
		},
	},
}

func NewSettingsModel(svc Services) SettingsModel {
	return SettingsModel{services: svc}
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(settingsRows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.NextRange), keyMsg.String() == " ":
		m.draft = settingsRows[m.cursor].adjust(m.current(), 1)
		m.dirty = true
	case key.Matches(keyMsg, DefaultKeyMap.PrevRange):
		m.draft = settingsRows[m.cursor].adjust(m.current(), -1)
		m.dirty = true
	case keyMsg.Type == tea.KeyEnter:
		if m.dirty && !store.SelectSettings(m.state).Loading {
			m.services.Store.Dispatch(store.SettingsUpdateRequested{Settings: m.current()})
			m.dirty = false
		}
	case keyMsg.String() == "x":
		m.dirty = false
	}
	return m, nil
}

func (m SettingsModel) View() string {
	st := m.styles
	slice := store.SelectSettings(m.state)
	settings := m.current()

	var lines []string
	title := "  Trading Settings"
	if m.dirty {
		title += st.Warning.Render("  [unsaved]")
	}
	lines = append(lines, st.Header.Render(title), "")

	for i, row := range settingsRows {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("  %s %-24s %s", marker, row.label, st.Header.Render(row.value(settings))))
	}

	lines = append(lines, "",
		st.Subtext.Render(fmt.Sprintf("  Allowed assets: %s", strings.Join(settings.AllowedAssets, ", "))),
		st.Subtext.Render(fmt.Sprintf("  Trading hours: %s - %s", settings.TradingHoursStart, settings.TradingHoursEnd)))

	footer := st.Subtext.Render("  ↑/↓: select   ←/→: adjust   enter: save   x: discard")
	if slice.Loading {
		footer = st.Subtext.Render("  Saving...")
	} else if slice.Err != "" {
		footer = st.Error.Render("  Save failed: " + slice.Err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Border.Width(m.width-2).Render(strings.Join(lines, "\n")),
		footer)
}

func (m *SettingsModel) SetState(st store.State) { m.state = st }

func (m *SettingsModel) SetStyles(st Styles) { m.styles = st }

func (m *SettingsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// current returns the draft when edits are pending, otherwise the saved
// settings from the store.
func (m SettingsModel) current() domain.TradingSettings {
	if m.dirty {
		return m.draft
	}
	return store.SelectSettings(m.state).Settings
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
