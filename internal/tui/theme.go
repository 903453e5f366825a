package tui

import (
	"botdeck/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the themed style set shared by every screen. A fresh set is
// built whenever the theme mode changes.
type Styles struct {
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	Header  lipgloss.Style
	Subtext lipgloss.Style
	Border  lipgloss.Style
	Error   lipgloss.Style

	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style

	UserMsg    lipgloss.Style
	SupportMsg lipgloss.Style
	FailedMsg  lipgloss.Style

	SpinnerColor lipgloss.Color
}

// StylesFor builds the style set for a theme mode.
func StylesFor(mode domain.ThemeMode) Styles {
	tab := lipgloss.NewStyle().Padding(0, 2)

	fg := lipgloss.Color("#FAFAFA")
	sub := lipgloss.Color("#888888")
	accent := lipgloss.Color("#7D56F4")
	border := lipgloss.Color("#555555")
	if mode == domain.ThemeLight {
		fg = lipgloss.Color("#1A1A2E")
		sub = lipgloss.Color("#6B7280")
		accent = lipgloss.Color("#4F46E5")
		border = lipgloss.Color("#9CA3AF")
	}

	return Styles{
		Tab:         tab,
		ActiveTab:   tab.Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(accent),
		InactiveTab: tab.Foreground(sub),

		Header:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtext: lipgloss.NewStyle().Foreground(sub),
		Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),

		Positive: lipgloss.NewStyle().Foreground(lipgloss.Color("#00C853")),
		Negative: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD600")),

		UserMsg:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		SupportMsg: lipgloss.NewStyle().Foreground(fg),
		FailedMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252")).Strikethrough(false),

		SpinnerColor: accent,
	}
}
