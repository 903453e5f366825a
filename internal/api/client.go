// Package api defines the data-access collaborator the state core talks to.
// The real bot backend is out of scope; MockClient stands in for it.
package api

import (
	"context"
	"errors"

	"botdeck/internal/domain"
)

// Sentinel errors surfaced to the user verbatim.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// Client is the backend contract. Every call either returns a well-formed
// payload or an error carrying a human-readable message.
type Client interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, name, email, password string) (*domain.Session, error)
	FetchDashboard(ctx context.Context) (*domain.DashboardData, error)
	FetchSignals(ctx context.Context) ([]domain.Signal, error)
	FetchTrades(ctx context.Context) ([]domain.Trade, error)
	FetchAccounts(ctx context.Context) ([]domain.Account, error)
	FetchAnalytics(ctx context.Context, timeRange domain.TimeRange) (*domain.AnalyticsData, error)
	UpdateSettings(ctx context.Context, settings domain.TradingSettings) (domain.TradingSettings, error)
	SubmitContactForm(ctx context.Context, form domain.ContactForm) (string, error)
}
