package overlay

import (
	"testing"

	"botdeck/internal/domain"
)

func newAccountOverlay() *Overlay[domain.Account, domain.AccountPatch] {
	return New(
		func(a domain.Account) string { return a.ID },
		func(a domain.Account, p domain.AccountPatch) domain.Account { return p.Apply(a) },
		domain.AccountPatch.Merge,
	)
}

func strPtr(s string) *string                            { return &s }
func statusPtr(s domain.AccountStatus) *domain.AccountStatus { return &s }
func boolPtr(b bool) *bool                               { return &b }

func canonical() []domain.Account {
	return []domain.Account{
		{ID: "acc-1", Name: "Main Demo", Status: domain.AccountConnected, Balance: 10000},
		{ID: "acc-2", Name: "Live", Status: domain.AccountConnected, Balance: 5000},
		{ID: "acc-3", Name: "IQ Option Live", Status: domain.AccountDisconnected, Balance: 2500},
	}
}

func TestViewWithoutLocalStateEqualsCanonical(t *testing.T) {
	o := newAccountOverlay()
	got := o.View(canonical())
	if len(got) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(got))
	}
	if !o.Empty() {
		t.Fatal("fresh overlay should be empty")
	}
}

func TestModifyPatchesCanonicalEntity(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-3", domain.AccountPatch{Status: statusPtr(domain.AccountConnected)})

	got := o.View(canonical())
	if got[2].Status != domain.AccountConnected {
		t.Fatalf("expected acc-3 connected, got %s", got[2].Status)
	}
	if got[2].Name != "IQ Option Live" {
		t.Fatal("patch must not touch unset fields")
	}
	if got[0].Status != domain.AccountConnected || got[1].Status != domain.AccountConnected {
		t.Fatal("patch leaked to other entities")
	}
}

func TestModifyIsIdempotent(t *testing.T) {
	o := newAccountOverlay()
	patch := domain.AccountPatch{Status: statusPtr(domain.AccountDisconnected)}
	o.Modify("acc-1", patch)
	once := o.View(canonical())
	o.Modify("acc-1", patch)
	twice := o.View(canonical())

	if once[0].Status != twice[0].Status || once[0].Name != twice[0].Name {
		t.Fatalf("repeated identical patch changed the view: %+v vs %+v", once[0], twice[0])
	}
}

func TestModifyMergesLaterWins(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-1", domain.AccountPatch{
		Status: statusPtr(domain.AccountDisconnected),
		Name:   strPtr("Renamed"),
	})
	o.Modify("acc-1", domain.AccountPatch{Status: statusPtr(domain.AccountConnected)})

	got := o.View(canonical())
	if got[0].Status != domain.AccountConnected {
		t.Fatal("later status should win")
	}
	if got[0].Name != "Renamed" {
		t.Fatal("earlier name field should survive the merge")
	}
}

func TestSurvivesCanonicalRefresh(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-3", domain.AccountPatch{Status: statusPtr(domain.AccountConnected)})

	// A background refresh delivers a fresh canonical list; the local
	// modification re-applies to it unchanged.
	refreshed := canonical()
	refreshed[0].Balance = 10500

	got := o.View(refreshed)
	if got[2].Status != domain.AccountConnected {
		t.Fatal("local modification lost across refresh")
	}
	if got[0].Balance != 10500 {
		t.Fatal("refreshed canonical data missing")
	}
}

func TestAddAppendsLocalEntity(t *testing.T) {
	o := newAccountOverlay()
	o.Add(domain.Account{ID: "local-1", Name: "Scratch"})

	got := o.View(canonical())
	if len(got) != 4 || got[3].ID != "local-1" {
		t.Fatalf("expected local account appended, got %+v", got)
	}
	if !o.IsAdded("local-1") || o.IsAdded("acc-1") {
		t.Fatal("IsAdded misreports")
	}
}

func TestRemoveCanonicalSuppresses(t *testing.T) {
	o := newAccountOverlay()
	o.Remove("acc-2")

	got := o.View(canonical())
	if len(got) != 2 {
		t.Fatalf("expected 2 accounts after suppression, got %d", len(got))
	}
	for _, a := range got {
		if a.ID == "acc-2" {
			t.Fatal("suppressed account still visible")
		}
	}
}

func TestRemoveAddedDeletesOutright(t *testing.T) {
	o := newAccountOverlay()
	o.Add(domain.Account{ID: "local-1"})
	o.Remove("local-1")

	if len(o.Added()) != 0 {
		t.Fatal("locally added entity should vanish entirely")
	}
	got := o.View(canonical())
	if len(got) != 3 {
		t.Fatalf("expected canonical list untouched, got %d", len(got))
	}
	if !o.Empty() {
		t.Fatal("removing an added entity should leave no trace")
	}
}

func TestDeletionWinsOverModification(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-1", domain.AccountPatch{Name: strPtr("Patched")})
	o.Remove("acc-1")

	got := o.View(canonical())
	for _, a := range got {
		if a.ID == "acc-1" {
			t.Fatal("deleted entity visible despite modification")
		}
	}

	// Same outcome with the operations reversed.
	o2 := newAccountOverlay()
	o2.Remove("acc-1")
	o2.Modify("acc-1", domain.AccountPatch{Name: strPtr("Patched")})
	for _, a := range o2.View(canonical()) {
		if a.ID == "acc-1" {
			t.Fatal("deletion must win regardless of operation order")
		}
	}
}

func TestViewNeverMutatesCanonical(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-1", domain.AccountPatch{Name: strPtr("Patched")})
	o.Remove("acc-2")

	base := canonical()
	_ = o.View(base)

	if base[0].Name != "Main Demo" {
		t.Fatal("canonical entity mutated by View")
	}
	if len(base) != 3 {
		t.Fatal("canonical slice resized by View")
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	o := newAccountOverlay()
	o.Modify("acc-1", domain.AccountPatch{IsDefault: boolPtr(true)})
	o.Add(domain.Account{ID: "local-1"})
	o.Remove("acc-3")

	o.Reset()

	if !o.Empty() {
		t.Fatal("expected empty overlay after reset")
	}
	got := o.View(canonical())
	if len(got) != 3 || got[0].IsDefault {
		t.Fatalf("reset did not restore the canonical view: %+v", got)
	}
}

func TestOverlayStateIsIndependentPerInstance(t *testing.T) {
	a := newAccountOverlay()
	b := newAccountOverlay()
	a.Remove("acc-1")

	if len(b.View(canonical())) != 3 {
		t.Fatal("overlay state leaked across instances")
	}
}
