package tui

import (
	"fmt"
	"strings"
	"time"

	"botdeck/internal/domain"
	"botdeck/internal/overlay"
	"botdeck/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// AccountsModel lists broker accounts. Edits made here are local until the
// next confirmed refetch: they live in an overlay on top of the store slice
// and survive background refreshes untouched.
type AccountsModel struct {
	services Services
	state    store.State
	styles   Styles

	local  *overlay.Overlay[domain.Account, domain.AccountPatch]
	cursor int
	width  int
	height int
}

func NewAccountsModel(svc Services) AccountsModel {
	return AccountsModel{
		services: svc,
		local: overlay.New(
			func(a domain.Account) string { return a.ID },
			func(a domain.Account, p domain.AccountPatch) domain.Account { return p.Apply(a) },
			domain.AccountPatch.Merge,
		),
	}
}

func (m AccountsModel) Update(msg tea.Msg) (AccountsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	accounts := m.merged()

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(accounts)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, DefaultKeyMap.Refresh):
		m.services.Store.Dispatch(store.AccountsRequested{})

	case key.Matches(keyMsg, DefaultKeyMap.ToggleConnect):
		if m.cursor < len(accounts) {
			m.toggleConnection(accounts[m.cursor])
		}

	case key.Matches(keyMsg, DefaultKeyMap.SetDefault):
		if m.cursor < len(accounts) {
			m.setDefault(accounts, accounts[m.cursor].ID)
		}

	case key.Matches(keyMsg, DefaultKeyMap.AddAccount):
		m.local.Add(domain.Account{
			ID:        "local-" + uuid.NewString(),
			Name:      fmt.Sprintf("New Account %d", len(m.local.Added())+1),
			Type:      domain.AccountDemo,
			Broker:    "Quotex",
			Balance:   10000,
			Equity:    10000,
			Currency:  "USD",
			Status:    domain.AccountConnecting,
			CreatedAt: time.Now(),
		})

	case key.Matches(keyMsg, DefaultKeyMap.DeleteAccount):
		if m.cursor < len(accounts) {
			m.local.Remove(accounts[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(keyMsg, DefaultKeyMap.ResetLocal):
		m.local.Reset()
		m.cursor = 0
	}

	return m, nil
}

func (m AccountsModel) View() string {
	st := m.styles
	slice := store.SelectAccounts(m.state)

	if slice.Loading && len(slice.Accounts) == 0 && m.local.Empty() {
		return st.Subtext.Render("  Loading accounts...")
	}
	if slice.Err != "" && len(slice.Accounts) == 0 && m.local.Empty() {
		return st.Error.Render("  Error: " + slice.Err)
	}

	accounts := m.merged()

	var lines []string
	title := fmt.Sprintf("  Broker Accounts (%d)", len(accounts))
	if !m.local.Empty() {
		title += st.Warning.Render("  [unsaved local changes]")
	}
	lines = append(lines, st.Header.Render(title))
	lines = append(lines, st.Subtext.Render("      Name                   Type Broker          Balance  Status"))
	lines = append(lines, st.Subtext.Render("  "+strings.Repeat("─", 72)))

	for i, a := range accounts {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		line := FormatAccount(st, a, marker)
		if m.local.IsAdded(a.ID) {
			line += st.Warning.Render(" (local)")
		}
		lines = append(lines, "  "+line)
	}
	if len(accounts) == 0 {
		lines = append(lines, st.Subtext.Render("  No accounts. Press a to add one."))
	}

	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	lines = append(lines, "", fmt.Sprintf("  Combined balance: %s", st.Header.Render(formatUSD(total))))

	footer := st.Subtext.Render("  c: connect/disconnect   a: add   d: delete   *: default   x: discard local   R: refetch")
	if slice.Loading {
		footer = st.Subtext.Render("  Refreshing...")
	} else if slice.Err != "" {
		footer = st.Error.Render("  Refresh failed: " + slice.Err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Border.Width(m.width-2).Render(strings.Join(lines, "\n")),
		footer)
}

func (m *AccountsModel) SetState(st store.State) { m.state = st }
func (m *AccountsModel) SetStyles(st Styles)     { m.styles = st }

func (m *AccountsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Merged returns the accounts as the screen shows them (for testing).
func (m AccountsModel) Merged() []domain.Account { return m.merged() }

// DiscardLocal drops all local edits (for testing).
func (m *AccountsModel) DiscardLocal() { m.local.Reset() }

func (m AccountsModel) merged() []domain.Account {
	return m.local.View(store.SelectAccounts(m.state).Accounts)
}

func (m *AccountsModel) toggleConnection(a domain.Account) {
	next := domain.AccountConnected
	if a.Status == domain.AccountConnected {
		next = domain.AccountDisconnected
	}
	now := time.Now()

	// A locally added account is not in the canonical list, so a patch for
	// it would never apply. Replace it wholesale instead.
	if m.local.IsAdded(a.ID) {
		a.Status = next
		a.LastSync = now
		m.local.Remove(a.ID)
		m.local.Add(a)
		return
	}

	m.local.Modify(a.ID, domain.AccountPatch{Status: &next, LastSync: &now})
}

func (m *AccountsModel) setDefault(accounts []domain.Account, id string) {
	tr, fa := true, false
	for _, a := range accounts {
		if m.local.IsAdded(a.ID) {
			a.IsDefault = a.ID == id
			m.local.Remove(a.ID)
			m.local.Add(a)
			continue
		}
		if a.ID == id {
			m.local.Modify(a.ID, domain.AccountPatch{IsDefault: &tr})
		} else if a.IsDefault {
			m.local.Modify(a.ID, domain.AccountPatch{IsDefault: &fa})
		}
	}
}
