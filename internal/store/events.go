package store

import "botdeck/internal/domain"

// Event is the closed set of state transitions. Every request-lifecycle
// triple follows the same shape: a *Requested event starts a workflow, and
// exactly one *Loaded/*Failed outcome follows.
type Event interface{ isEvent() }

// Auth events.

type LoginRequested struct {
	Email    string
	Password string
}

type LoginSucceeded struct{ Session domain.Session }

type LoginFailed struct{ Message string }

type RegisterRequested struct {
	Name     string
	Email    string
	Password string
}

type RegisterSucceeded struct{ Session domain.Session }

type RegisterFailed struct{ Message string }

type LoggedOut struct{}

// ProfileUpdated is a local mutation of the session user record.
type ProfileUpdated struct {
	Name  string
	Email string
}

type AuthErrorCleared struct{}

// Dashboard events.

type DashboardRequested struct{}

type DashboardLoaded struct{ Data *domain.DashboardData }

type DashboardFailed struct{ Message string }

// Signals events.

type SignalsRequested struct{}

type SignalsLoaded struct{ Signals []domain.Signal }

type SignalsFailed struct{ Message string }

// Trades events.

type TradesRequested struct{}

type TradesLoaded struct{ Trades []domain.Trade }

type TradesFailed struct{ Message string }

// Accounts events.

type AccountsRequested struct{}

type AccountsLoaded struct{ Accounts []domain.Account }

type AccountsFailed struct{ Message string }

// Analytics events. The requested range is threaded through the workflow
// into the collaborator call unchanged.

type AnalyticsRequested struct{ Range domain.TimeRange }

type AnalyticsLoaded struct{ Data *domain.AnalyticsData }

type AnalyticsFailed struct{ Message string }

// Settings events.

type SettingsUpdateRequested struct{ Settings domain.TradingSettings }

type SettingsUpdated struct{ Settings domain.TradingSettings }

type SettingsUpdateFailed struct{ Message string }

// Contact events.

type ContactSubmitRequested struct{ Form domain.ContactForm }

type ContactSubmitted struct{ TicketID string }

type ContactSubmitFailed struct{ Message string }

type ContactStatusCleared struct{}

// Theme events.

type ThemeSet struct{ Mode domain.ThemeMode }

func (LoginRequested) isEvent()          {}
func (LoginSucceeded) isEvent()          {}
func (LoginFailed) isEvent()             {}
func (RegisterRequested) isEvent()       {}
func (RegisterSucceeded) isEvent()       {}
func (RegisterFailed) isEvent()          {}
func (LoggedOut) isEvent()               {}
func (ProfileUpdated) isEvent()          {}
func (AuthErrorCleared) isEvent()        {}
func (DashboardRequested) isEvent()      {}
func (DashboardLoaded) isEvent()         {}
func (DashboardFailed) isEvent()         {}
func (SignalsRequested) isEvent()        {}
func (SignalsLoaded) isEvent()           {}
func (SignalsFailed) isEvent()           {}
func (TradesRequested) isEvent()         {}
func (TradesLoaded) isEvent()            {}
func (TradesFailed) isEvent()            {}
func (AccountsRequested) isEvent()       {}
func (AccountsLoaded) isEvent()          {}
func (AccountsFailed) isEvent()          {}
func (AnalyticsRequested) isEvent()      {}
func (AnalyticsLoaded) isEvent()         {}
func (AnalyticsFailed) isEvent()         {}
func (SettingsUpdateRequested) isEvent() {}
func (SettingsUpdated) isEvent()         {}
func (SettingsUpdateFailed) isEvent()    {}
func (ContactSubmitRequested) isEvent()  {}
func (ContactSubmitted) isEvent()        {}
func (ContactSubmitFailed) isEvent()     {}
func (ContactStatusCleared) isEvent()    {}
func (ThemeSet) isEvent()                {}
