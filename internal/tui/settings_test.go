package tui

import (
	"testing"

	"botdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newSettingsFixture(t *testing.T) (SettingsModel, *store.Store) {
	t.Helper()
	svc := testServices(authedSeed())
	m := NewSettingsModel(svc)
	m.SetState(svc.Store.State())
	m.SetStyles(StylesFor("dark"))
	m.SetSize(100, 30)
	return m, svc.Store
}

func updateSettings(m SettingsModel, msg tea.Msg) SettingsModel {
	next, _ := m.Update(msg)
	return next
}

func TestAdjustCreatesDraftWithoutDispatching(t *testing.T) {
	m, st := newSettingsFixture(t)
	before := store.SelectSettings(st.State()).Settings

	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRight}) // toggle auto trading
	if !m.dirty {
		t.Fatal("adjust should mark the draft dirty")
	}
	if m.current().AutoTrading == before.AutoTrading {
		t.Fatal("adjust did not change the draft")
	}
	if store.SelectSettings(st.State()).Settings.AutoTrading != before.AutoTrading {
		t.Fatal("draft edit leaked into the store")
	}
}

func TestEnterSavesDraftAsOneRequest(t *testing.T) {
	m, st := newSettingsFixture(t)

	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRight})
	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.dirty {
		t.Fatal("save should clear the dirty flag")
	}
	if !store.SelectSettings(st.State()).Loading {
		t.Fatal("enter should dispatch a settings update request")
	}
}

func TestEnterWithoutEditsIsNoOp(t *testing.T) {
	m, st := newSettingsFixture(t)
	_ = updateSettings(m, tea.KeyMsg{Type: tea.KeyEnter})
	if store.SelectSettings(st.State()).Loading {
		t.Fatal("enter without edits must not dispatch")
	}
}

func TestDiscardDropsDraft(t *testing.T) {
	m, st := newSettingsFixture(t)
	saved := store.SelectSettings(st.State()).Settings

	m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRight})
	m = updateSettings(m, keyRune('x'))

	if m.dirty {
		t.Fatal("x should discard the draft")
	}
	if m.current().AutoTrading != saved.AutoTrading {
		t.Fatal("discard should fall back to the saved settings")
	}
}

func TestAdjustClampsAtBounds(t *testing.T) {
	m, _ := newSettingsFixture(t)

	// Min confidence row clamps to [50, 95].
	for i := 0; i < 4; i++ {
		m = updateSettings(m, keyRune('j'))
	}
	for i := 0; i < 30; i++ {
		m = updateSettings(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if got := m.current().MinConfidence; got != 95 {
		t.Fatalf("expected confidence clamped at 95, got %d", got)
	}
	for i := 0; i < 30; i++ {
		m = updateSettings(m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if got := m.current().MinConfidence; got != 50 {
		t.Fatalf("expected confidence clamped at 50, got %d", got)
	}
}
