// Package store holds the application state as independently-reduced slices
// and the dispatch pipeline that mutates them.
package store

import "botdeck/internal/domain"

// AuthState is the session slice.
type AuthState struct {
	Authenticated    bool
	User             *domain.User
	Token            string
	Loading          bool
	Err              string
	RegistrationDone bool
}

// DashboardState is the dashboard snapshot slice.
type DashboardState struct {
	Data    *domain.DashboardData
	Loading bool
	Err     string
}

type SignalsState struct {
	Signals []domain.Signal
	Loading bool
	Err     string
}

type TradesState struct {
	Trades  []domain.Trade
	Loading bool
	Err     string
}

type AccountsState struct {
	Accounts []domain.Account
	Loading  bool
	Err      string
}

type SettingsState struct {
	Settings domain.TradingSettings
	Loading  bool
	Err      string
}

type AnalyticsState struct {
	Data      *domain.AnalyticsData
	TimeRange domain.TimeRange
	Loading   bool
	Err       string
}

// ContactState is the support-ticket submission slice.
type ContactState struct {
	Submitting bool
	Submitted  bool
	TicketID   string
	Err        string
}

type ThemeState struct {
	Mode domain.ThemeMode
}

// State is the root application state. Slices treat their payloads as
// immutable: reducers replace them wholesale and never mutate in place.
type State struct {
	Auth      AuthState
	Dashboard DashboardState
	Signals   SignalsState
	Trades    TradesState
	Accounts  AccountsState
	Settings  SettingsState
	Analytics AnalyticsState
	Contact   ContactState
	Theme     ThemeState
}

// Seed is the persisted state read at construction time.
type Seed struct {
	Token string
	User  *domain.User
	Theme domain.ThemeMode
}

func initialState(seed Seed) State {
	theme := seed.Theme
	if !theme.IsValid() {
		theme = domain.ThemeLight
	}
	return State{
		Auth: AuthState{
			Authenticated: seed.Token != "",
			User:          seed.User,
			Token:         seed.Token,
		},
		Settings:  SettingsState{Settings: domain.DefaultSettings()},
		Analytics: AnalyticsState{TimeRange: domain.Range30D},
		Theme:     ThemeState{Mode: theme},
	}
}
