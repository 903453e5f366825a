package store

// Each slice reducer is pure and total: unknown events are an identity
// transform. Request events set loading and clear the previous error but
// keep existing data so a refresh never blanks the screen; failure events
// record the message and also keep prior data.

func reduce(st State, ev Event) State {
	st.Auth = reduceAuth(st.Auth, ev)
	st.Dashboard = reduceDashboard(st.Dashboard, ev)
	st.Signals = reduceSignals(st.Signals, ev)
	st.Trades = reduceTrades(st.Trades, ev)
	st.Accounts = reduceAccounts(st.Accounts, ev)
	st.Settings = reduceSettings(st.Settings, ev)
	st.Analytics = reduceAnalytics(st.Analytics, ev)
	st.Contact = reduceContact(st.Contact, ev)
	st.Theme = reduceTheme(st.Theme, ev)
	return st
}

func reduceAuth(s AuthState, ev Event) AuthState {
	switch ev := ev.(type) {
	case LoginRequested:
		s.Loading = true
		s.Err = ""
		s.RegistrationDone = false
	case LoginSucceeded:
		user := ev.Session.User
		s.Authenticated = true
		s.User = &user
		s.Token = ev.Session.Token
		s.Loading = false
		s.Err = ""
	case LoginFailed:
		s.Loading = false
		s.Err = ev.Message
	case RegisterRequested:
		s.Loading = true
		s.Err = ""
		s.RegistrationDone = false
	case RegisterSucceeded:
		user := ev.Session.User
		s.Authenticated = true
		s.User = &user
		s.Token = ev.Session.Token
		s.Loading = false
		s.Err = ""
		s.RegistrationDone = true
	case RegisterFailed:
		s.Loading = false
		s.Err = ev.Message
		s.RegistrationDone = false
	case ProfileUpdated:
		if s.User != nil {
			user := *s.User
			if ev.Name != "" {
				user.Name = ev.Name
			}
			if ev.Email != "" {
				user.Email = ev.Email
			}
			s.User = &user
		}
	case AuthErrorCleared:
		s.Err = ""
		s.RegistrationDone = false
	case LoggedOut:
		s = AuthState{}
	}
	return s
}

func reduceDashboard(s DashboardState, ev Event) DashboardState {
	switch ev := ev.(type) {
	case DashboardRequested:
		s.Loading = true
		s.Err = ""
	case DashboardLoaded:
		s.Data = ev.Data
		s.Loading = false
		s.Err = ""
	case DashboardFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceSignals(s SignalsState, ev Event) SignalsState {
	switch ev := ev.(type) {
	case SignalsRequested:
		s.Loading = true
		s.Err = ""
	case SignalsLoaded:
		s.Signals = ev.Signals
		s.Loading = false
		s.Err = ""
	case SignalsFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceTrades(s TradesState, ev Event) TradesState {
	switch ev := ev.(type) {
	case TradesRequested:
		s.Loading = true
		s.Err = ""
	case TradesLoaded:
		s.Trades = ev.Trades
		s.Loading = false
		s.Err = ""
	case TradesFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceAccounts(s AccountsState, ev Event) AccountsState {
	switch ev := ev.(type) {
	case AccountsRequested:
		s.Loading = true
		s.Err = ""
	case AccountsLoaded:
		s.Accounts = ev.Accounts
		s.Loading = false
		s.Err = ""
	case AccountsFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceSettings(s SettingsState, ev Event) SettingsState {
	switch ev := ev.(type) {
	case SettingsUpdateRequested:
		s.Loading = true
		s.Err = ""
	case SettingsUpdated:
		s.Settings = ev.Settings
		s.Loading = false
		s.Err = ""
	case SettingsUpdateFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceAnalytics(s AnalyticsState, ev Event) AnalyticsState {
	switch ev := ev.(type) {
	case AnalyticsRequested:
		s.Loading = true
		s.Err = ""
		if ev.Range.IsValid() {
			s.TimeRange = ev.Range
		}
	case AnalyticsLoaded:
		s.Data = ev.Data
		s.Loading = false
		s.Err = ""
	case AnalyticsFailed:
		s.Loading = false
		s.Err = ev.Message
	}
	return s
}

func reduceContact(s ContactState, ev Event) ContactState {
	switch ev := ev.(type) {
	case ContactSubmitRequested:
		s.Submitting = true
		s.Submitted = false
		s.Err = ""
	case ContactSubmitted:
		s.Submitting = false
		s.Submitted = true
		s.TicketID = ev.TicketID
		s.Err = ""
	case ContactSubmitFailed:
		s.Submitting = false
		s.Submitted = false
		s.Err = ev.Message
	case ContactStatusCleared:
		s = ContactState{}
	}
	return s
}

func reduceTheme(s ThemeState, ev Event) ThemeState {
	if ev, ok := ev.(ThemeSet); ok && ev.Mode.IsValid() {
		s.Mode = ev.Mode
	}
	return s
}
