package store

import "botdeck/internal/domain"

// Selectors are pure read-only projections over the root state. They never
// mutate their input and are safe to call on every render.

func SelectIsAuthenticated(st State) bool { return st.Auth.Authenticated }

func SelectCurrentUser(st State) *domain.User { return st.Auth.User }

func SelectAuthError(st State) string { return st.Auth.Err }

func SelectDashboard(st State) DashboardState { return st.Dashboard }

func SelectSignals(st State) SignalsState { return st.Signals }

func SelectTrades(st State) TradesState { return st.Trades }

func SelectAccounts(st State) AccountsState { return st.Accounts }

func SelectSettings(st State) SettingsState { return st.Settings }

func SelectAnalytics(st State) AnalyticsState { return st.Analytics }

func SelectContact(st State) ContactState { return st.Contact }

func SelectTheme(st State) domain.ThemeMode { return st.Theme.Mode }

// SelectPendingSignals returns only signals still awaiting execution.
func SelectPendingSignals(st State) []domain.Signal {
	var out []domain.Signal
	for _, s := range st.Signals.Signals {
		if s.Status == domain.SignalPending {
			out = append(out, s)
		}
	}
	return out
}

// SelectOpenTrades returns trades that have not settled.
func SelectOpenTrades(st State) []domain.Trade {
	var out []domain.Trade
	for _, t := range st.Trades.Trades {
		if t.Status == domain.TradeOpen {
			out = append(out, t)
		}
	}
	return out
}

// SelectDefaultAccount returns the account flagged as default, or nil.
func SelectDefaultAccount(st State) *domain.Account {
	for i := range st.Accounts.Accounts {
		if st.Accounts.Accounts[i].IsDefault {
			acc := st.Accounts.Accounts[i]
			return &acc
		}
	}
	return nil
}

// SelectTotalBalance sums balances across connected accounts.
func SelectTotalBalance(st State) float64 {
	var total float64
	for _, a := range st.Accounts.Accounts {
		if a.Status == domain.AccountConnected {
			total += a.Balance
		}
	}
	return total
}
