package store

import (
	"testing"

	"botdeck/internal/domain"
)

func TestRequestPreservesDataWhileLoading(t *testing.T) {
	st := initialState(Seed{})
	st.Signals = SignalsState{
		Signals: []domain.Signal{{ID: "sig-1", Asset: "EURUSD"}},
		Err:     "previous failure",
	}

	st = reduce(st, SignalsRequested{})

	if !st.Signals.Loading {
		t.Fatal("expected loading after request")
	}
	if st.Signals.Err != "" {
		t.Fatalf("expected error cleared, got %q", st.Signals.Err)
	}
	if len(st.Signals.Signals) != 1 || st.Signals.Signals[0].ID != "sig-1" {
		t.Fatal("expected prior signals preserved during refresh")
	}
}

func TestFailurePreservesData(t *testing.T) {
	st := initialState(Seed{})
	st.Trades = TradesState{
		Trades:  []domain.Trade{{ID: "trade-1", Asset: "GBPUSD", PnL: 12.5}},
		Loading: true,
	}

	st = reduce(st, TradesFailed{Message: "network down"})

	if st.Trades.Loading {
		t.Fatal("expected loading cleared after failure")
	}
	if st.Trades.Err != "network down" {
		t.Fatalf("expected failure message, got %q", st.Trades.Err)
	}
	if len(st.Trades.Trades) != 1 || st.Trades.Trades[0].ID != "trade-1" {
		t.Fatal("expected prior trades preserved after failure")
	}
}

func TestSuccessReplacesDataWholesale(t *testing.T) {
	st := initialState(Seed{})
	st.Accounts = AccountsState{
		Accounts: []domain.Account{{ID: "acc-old"}},
		Loading:  true,
		Err:      "stale",
	}

	fresh := []domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}
	st = reduce(st, AccountsLoaded{Accounts: fresh})

	if st.Accounts.Loading || st.Accounts.Err != "" {
		t.Fatalf("expected clean slice after load, got loading=%v err=%q",
			st.Accounts.Loading, st.Accounts.Err)
	}
	if len(st.Accounts.Accounts) != 2 || st.Accounts.Accounts[0].ID != "acc-1" {
		t.Fatal("expected accounts replaced by loaded payload")
	}
}

type unknownEvent struct{}

func (unknownEvent) isEvent() {}

func TestUnknownEventIsIdentity(t *testing.T) {
	st := initialState(Seed{Token: "tok", User: &domain.User{ID: "u1"}})
	st.Signals.Signals = []domain.Signal{{ID: "sig-1"}}
	st.Contact = ContactState{Submitted: true, TicketID: "TKT-1"}

	got := reduce(st, unknownEvent{})

	if got.Auth != st.Auth {
		t.Fatal("auth slice changed on unknown event")
	}
	if len(got.Signals.Signals) != 1 || got.Signals.Signals[0].ID != "sig-1" {
		t.Fatal("signals slice changed on unknown event")
	}
	if got.Contact != st.Contact {
		t.Fatal("contact slice changed on unknown event")
	}
}

func TestLoginLifecycle(t *testing.T) {
	st := initialState(Seed{})

	st = reduce(st, LoginRequested{Email: "admin@dashboard.com", Password: "admin123"})
	if !st.Auth.Loading {
		t.Fatal("expected loading during login")
	}

	sess := domain.Session{
		User:  domain.User{ID: "u1", Email: "admin@dashboard.com", Name: "Admin"},
		Token: "token-123",
	}
	st = reduce(st, LoginSucceeded{Session: sess})

	if !st.Auth.Authenticated {
		t.Fatal("expected authenticated after success")
	}
	if st.Auth.Token != "token-123" || st.Auth.User == nil || st.Auth.User.Email != "admin@dashboard.com" {
		t.Fatal("session not recorded")
	}
	if st.Auth.Loading || st.Auth.Err != "" {
		t.Fatal("expected clean auth slice after success")
	}
}

func TestLoginFailureKeepsUnauthenticated(t *testing.T) {
	st := initialState(Seed{})
	st = reduce(st, LoginRequested{Email: "x@y.com", Password: "nope"})
	st = reduce(st, LoginFailed{Message: "invalid email or password"})

	if st.Auth.Authenticated {
		t.Fatal("must not authenticate on failure")
	}
	if st.Auth.Err != "invalid email or password" {
		t.Fatalf("expected failure message, got %q", st.Auth.Err)
	}
}

func TestLogoutClearsAuthOnly(t *testing.T) {
	st := initialState(Seed{Token: "tok", User: &domain.User{ID: "u1"}})
	st.Dashboard.Data = &domain.DashboardData{}

	st = reduce(st, LoggedOut{})

	if st.Auth != (AuthState{}) {
		t.Fatalf("expected auth reset, got %+v", st.Auth)
	}
	if st.Dashboard.Data == nil {
		t.Fatal("logout must not touch other slices")
	}
}

func TestProfileUpdateMutatesCopy(t *testing.T) {
	original := &domain.User{ID: "u1", Name: "Old", Email: "old@x.com"}
	st := initialState(Seed{Token: "tok", User: original})

	st = reduce(st, ProfileUpdated{Name: "New"})

	if st.Auth.User.Name != "New" || st.Auth.User.Email != "old@x.com" {
		t.Fatalf("unexpected user after update: %+v", st.Auth.User)
	}
	if original.Name != "Old" {
		t.Fatal("reducer mutated the previous user pointer")
	}
}

func TestAnalyticsRequestTracksRange(t *testing.T) {
	st := initialState(Seed{})
	if st.Analytics.TimeRange != domain.Range30D {
		t.Fatalf("expected default range 30d, got %s", st.Analytics.TimeRange)
	}

	st = reduce(st, AnalyticsRequested{Range: domain.Range90D})
	if st.Analytics.TimeRange != domain.Range90D {
		t.Fatalf("expected range 90d, got %s", st.Analytics.TimeRange)
	}

	st = reduce(st, AnalyticsRequested{Range: domain.TimeRange("bogus")})
	if st.Analytics.TimeRange != domain.Range90D {
		t.Fatal("invalid range must not overwrite the selected one")
	}
}

func TestContactLifecycleAndClear(t *testing.T) {
	st := initialState(Seed{})

	st = reduce(st, ContactSubmitRequested{Form: domain.ContactForm{Subject: "help"}})
	if !st.Contact.Submitting {
		t.Fatal("expected submitting")
	}

	st = reduce(st, ContactSubmitted{TicketID: "TKT-ABC12345"})
	if !st.Contact.Submitted || st.Contact.TicketID != "TKT-ABC12345" {
		t.Fatalf("unexpected contact slice: %+v", st.Contact)
	}

	st = reduce(st, ContactStatusCleared{})
	if st.Contact != (ContactState{}) {
		t.Fatalf("expected cleared contact slice, got %+v", st.Contact)
	}
}

func TestThemeSetRejectsInvalidMode(t *testing.T) {
	st := initialState(Seed{})
	st = reduce(st, ThemeSet{Mode: domain.ThemeDark})
	if st.Theme.Mode != domain.ThemeDark {
		t.Fatalf("expected dark, got %s", st.Theme.Mode)
	}

	st = reduce(st, ThemeSet{Mode: domain.ThemeMode("neon")})
	if st.Theme.Mode != domain.ThemeDark {
		t.Fatal("invalid theme mode must be ignored")
	}
}

func TestRegisterSuccessMarksRegistration(t *testing.T) {
	st := initialState(Seed{})
	st = reduce(st, RegisterRequested{Name: "New User", Email: "n@x.com", Password: "secret1"})
	st = reduce(st, RegisterSucceeded{Session: domain.Session{
		User:  domain.User{ID: "u9", Email: "n@x.com"},
		Token: "tok-9",
	}})

	if !st.Auth.RegistrationDone {
		t.Fatal("expected RegistrationDone after register success")
	}
	if !st.Auth.Authenticated {
		t.Fatal("registration should authenticate")
	}
}
