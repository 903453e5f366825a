package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"botdeck/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

func newTestClient() *MockClient {
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewMockClient(tracer, WithLatency(0), WithSeed(1))
}

func TestLoginWithSeededCredentials(t *testing.T) {
	c := newTestClient()

	sess, err := c.Login(context.Background(), "admin@dashboard.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.User.Email != "admin@dashboard.com" || sess.User.Role != "Administrator" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}
	if sess.Token == "" {
		t.Fatal("expected a session token")
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	c := newTestClient()
	if _, err := c.Login(context.Background(), "  Demo@Dashboard.com ", "demo123"); err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := newTestClient()

	if _, err := c.Login(context.Background(), "admin@dashboard.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := c.Login(context.Background(), "nobody@dashboard.com", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	c := newTestClient()

	sess, err := c.Register(context.Background(), "New Trader", "new@dashboard.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if sess.User.Name != "New Trader" || sess.User.Role != "Trader" {
		t.Fatalf("unexpected registered user: %+v", sess.User)
	}

	if _, err := c.Login(context.Background(), "new@dashboard.com", "secret1"); err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	c := newTestClient()
	if _, err := c.Register(context.Background(), "X", "admin@dashboard.com", "secret1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestFetchAccountsShape(t *testing.T) {
	c := newTestClient()

	accounts, err := c.FetchAccounts(context.Background())
	if err != nil {
		t.Fatalf("fetch accounts failed: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}

	byID := map[string]domain.Account{}
	for _, a := range accounts {
		byID[a.ID] = a
	}
	if !byID["acc-1"].IsDefault {
		t.Fatal("acc-1 should be the default account")
	}
	if byID["acc-3"].Status != domain.AccountDisconnected {
		t.Fatalf("acc-3 should start disconnected, got %s", byID["acc-3"].Status)
	}
}

func TestFetchSignalsShape(t *testing.T) {
	c := newTestClient()

	signals, err := c.FetchSignals(context.Background())
	if err != nil {
		t.Fatalf("fetch signals failed: %v", err)
	}
	if len(signals) != 50 {
		t.Fatalf("expected 50 signals, got %d", len(signals))
	}
	for _, s := range signals {
		if s.ID == "" || s.Asset == "" {
			t.Fatalf("malformed signal: %+v", s)
		}
		if s.Direction != domain.DirectionCall && s.Direction != domain.DirectionPut {
			t.Fatalf("invalid direction %q", s.Direction)
		}
		if s.Confidence < 0 || s.Confidence > 100 {
			t.Fatalf("confidence out of range: %d", s.Confidence)
		}
	}
}

func TestFetchAnalyticsValidatesRange(t *testing.T) {
	c := newTestClient()

	data, err := c.FetchAnalytics(context.Background(), domain.Range7D)
	if err != nil {
		t.Fatalf("fetch analytics failed: %v", err)
	}
	if len(data.DailyPnL) == 0 || len(data.AssetPerformance) == 0 {
		t.Fatal("expected populated analytics payload")
	}

	if _, err := c.FetchAnalytics(context.Background(), domain.TimeRange("2w")); err == nil {
		t.Fatal("expected error for unsupported time range")
	}
}

func TestUpdateSettingsEchoes(t *testing.T) {
	c := newTestClient()

	in := domain.DefaultSettings()
	in.AutoTrading = false
	in.MinConfidence = 85

	out, err := c.UpdateSettings(context.Background(), in)
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if out.AutoTrading || out.MinConfidence != 85 {
		t.Fatalf("settings not echoed: %+v", out)
	}
}

func TestSubmitContactFormValidatesAndTicketFormat(t *testing.T) {
	c := newTestClient()

	ticket, err := c.SubmitContactForm(context.Background(), domain.ContactForm{
		Name: "A", Email: "a@b.com", Subject: "s", Message: "m",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.HasPrefix(ticket, "TKT-") || len(ticket) != 12 {
		t.Fatalf("unexpected ticket id %q", ticket)
	}

	if _, err := c.SubmitContactForm(context.Background(), domain.ContactForm{Email: "not-an-email"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCancelledContextAborts(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	c := NewMockClient(tracer) // default latency on purpose

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FetchDashboard(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
