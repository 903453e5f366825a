// Package tui is the terminal dashboard. Screens are thin views over the
// central store: they dispatch events and re-render from state snapshots
// delivered through the store subscription.
package tui

import (
	"botdeck/internal/domain"
	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents a screen tab in the TUI.
type Tab int

const (
	TabDashboard Tab = iota
	TabSignals
	TabTrades
	TabAccounts
	TabAnalytics
	TabSettings
	TabChat
	TabSupport
)

var tabNames = []string{
	"1:Dashboard", "2:Signals", "3:Trades", "4:Accounts",
	"5:Analytics", "6:Settings", "7:Chat", "8:Support",
}

// stateMsg carries one store snapshot into the Bubble Tea loop.
type stateMsg store.State

// chatUpdateMsg signals that the support conversation changed.
type chatUpdateMsg struct{}

// AppModel is the root Bubble Tea model: the login gate, the tab bar, and
// the store-subscription bridge.
type AppModel struct {
	services Services
	state    store.State
	styles   Styles

	updates <-chan store.State
	unsub   func()

	activeTab Tab
	login     LoginModel
	dashboard DashboardModel
	signals   SignalsModel
	trades    TradesModel
	accounts  AccountsModel
	analytics AnalyticsModel
	settings  SettingsModel
	chat      ChatModel
	support   SupportModel

	width    int
	height   int
	quitting bool
}

// NewAppModel creates the root application model with all child screens.
func NewAppModel(svc Services) AppModel {
	snap := svc.Store.State()
	styles := StylesFor(store.SelectTheme(snap))
	updates, unsub := svc.Store.Subscribe()

	m := AppModel{
		services:  svc,
		state:     snap,
		styles:    styles,
		updates:   updates,
		unsub:     unsub,
		activeTab: TabDashboard,
		login:     NewLoginModel(svc),
		dashboard: NewDashboardModel(svc),
		signals:   NewSignalsModel(svc),
		trades:    NewTradesModel(svc),
		accounts:  NewAccountsModel(svc),
		analytics: NewAnalyticsModel(svc),
		settings:  NewSettingsModel(svc),
		chat:      NewChatModel(svc),
		support:   NewSupportModel(svc),
	}
	m.propagateState()
	m.propagateStyles()
	return m
}

// Init starts the subscription bridges and child models.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.listenStateCmd(),
		m.listenChatCmd(),
		m.login.Init(),
		m.chat.Init(),
		m.support.Init(),
	}
	if store.SelectIsAuthenticated(m.state) {
		cmds = append(cmds, m.requestInitialData())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages, routing to the active tab.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case stateMsg:
		wasAuthed := store.SelectIsAuthenticated(m.state)
		prevTheme := store.SelectTheme(m.state)
		m.state = store.State(msg)
		if mode := store.SelectTheme(m.state); mode != prevTheme {
			m.styles = StylesFor(mode)
			m.propagateStyles()
		}
		m.propagateState()
		if !wasAuthed && store.SelectIsAuthenticated(m.state) {
			return m, tea.Batch(m.listenStateCmd(), m.requestInitialData())
		}
		return m, m.listenStateCmd()

	case chatUpdateMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, tea.Batch(cmd, m.listenChatCmd())

	case tea.KeyMsg:
		if m.quitting {
			return m, tea.Quit
		}
		if !store.SelectIsAuthenticated(m.state) {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				m.unsub()
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.login, cmd = m.login.Update(msg)
			return m, cmd
		}

		// Global bindings apply except where a focused text input owns
		// the keyboard.
		if !m.inputFocused() || msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab ||
			msg.String() == "ctrl+c" || msg.String() == "ctrl+l" {

			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				if m.inputFocused() && msg.String() == "q" {
					break
				}
				m.quitting = true
				m.unsub()
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Logout):
				m.services.Store.Dispatch(store.LoggedOut{})
				return m, nil

			case key.Matches(msg, DefaultKeyMap.Theme):
				if !m.inputFocused() {
					m.toggleTheme()
					return m, nil
				}

			case key.Matches(msg, DefaultKeyMap.Tab):
				m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
				return m, nil

			case key.Matches(msg, DefaultKeyMap.ShiftTab):
				next := int(m.activeTab) - 1
				if next < 0 {
					next = len(tabNames) - 1
				}
				m.switchTab(Tab(next))
				return m, nil
			}

			if !m.inputFocused() && len(msg.String()) == 1 {
				if n := int(msg.String()[0] - '1'); n >= 0 && n < len(tabNames) {
					m.switchTab(Tab(n))
					return m, nil
				}
			}
		}
	}

	return m.routeToActive(msg)
}

// View renders the login gate or the tab bar plus the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !store.SelectIsAuthenticated(m.state) {
		return m.login.View()
	}

	tabBar := m.renderTabBar()

	var content string
	switch m.activeTab {
	case TabDashboard:
		content = m.dashboard.View()
	case TabSignals:
		content = m.signals.View()
	case TabTrades:
		content = m.trades.View()
	case TabAccounts:
		content = m.accounts.View()
	case TabAnalytics:
		content = m.analytics.View()
	case TabSettings:
		content = m.settings.View()
	case TabChat:
		content = m.chat.View()
	case TabSupport:
		content = m.support.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content)
}

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

func (m AppModel) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !store.SelectIsAuthenticated(m.state) {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case TabSignals:
		m.signals, cmd = m.signals.Update(msg)
	case TabTrades:
		m.trades, cmd = m.trades.Update(msg)
	case TabAccounts:
		m.accounts, cmd = m.accounts.Update(msg)
	case TabAnalytics:
		m.analytics, cmd = m.analytics.Update(msg)
	case TabSettings:
		m.settings, cmd = m.settings.Update(msg)
	case TabChat:
		m.chat, cmd = m.chat.Update(msg)
	case TabSupport:
		m.support, cmd = m.support.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) switchTab(tab Tab) {
	if tab == TabChat && m.activeTab != TabChat {
		m.chat.Focus()
	} else if m.activeTab == TabChat && tab != TabChat {
		m.chat.Blur()
	}
	if tab == TabSupport && m.activeTab != TabSupport {
		m.support.Focus()
	} else if m.activeTab == TabSupport && tab != TabSupport {
		m.support.Blur()
	}
	m.activeTab = tab
}

func (m AppModel) inputFocused() bool {
	return m.activeTab == TabChat || m.activeTab == TabSupport
}

func (m *AppModel) toggleTheme() {
	mode := domain.ThemeDark
	if store.SelectTheme(m.state) == domain.ThemeDark {
		mode = domain.ThemeLight
	}
	m.services.Store.Dispatch(store.ThemeSet{Mode: mode})
}

// requestInitialData kicks off the fetches every screen needs on login.
func (m AppModel) requestInitialData() tea.Cmd {
	return func() tea.Msg {
		m.services.Store.Dispatch(store.DashboardRequested{})
		m.services.Store.Dispatch(store.SignalsRequested{})
		m.services.Store.Dispatch(store.TradesRequested{})
		m.services.Store.Dispatch(store.AccountsRequested{})
		return nil
	}
}

func (m AppModel) listenStateCmd() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.updates
		if !ok {
			return nil
		}
		return stateMsg(snap)
	}
}

func (m AppModel) listenChatCmd() tea.Cmd {
	return func() tea.Msg {
		<-m.services.Conversation.Updates()
		return chatUpdateMsg{}
	}
}

func (m *AppModel) propagateState() {
	m.login.SetState(m.state)
	m.dashboard.SetState(m.state)
	m.signals.SetState(m.state)
	m.trades.SetState(m.state)
	m.accounts.SetState(m.state)
	m.analytics.SetState(m.state)
	m.settings.SetState(m.state)
	m.support.SetState(m.state)
}

func (m *AppModel) propagateStyles() {
	m.login.SetStyles(m.styles)
	m.dashboard.SetStyles(m.styles)
	m.signals.SetStyles(m.styles)
	m.trades.SetStyles(m.styles)
	m.accounts.SetStyles(m.styles)
	m.analytics.SetStyles(m.styles)
	m.settings.SetStyles(m.styles)
	m.chat.SetStyles(m.styles)
	m.support.SetStyles(m.styles)
}

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // account for tab bar
	m.login.SetSize(m.width, m.height)
	m.dashboard.SetSize(m.width, contentHeight)
	m.signals.SetSize(m.width, contentHeight)
	m.trades.SetSize(m.width, contentHeight)
	m.accounts.SetSize(m.width, contentHeight)
	m.analytics.SetSize(m.width, contentHeight)
	m.settings.SetSize(m.width, contentHeight)
	m.chat.SetSize(m.width, contentHeight)
	m.support.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
