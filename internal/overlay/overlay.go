// Package overlay layers local, unconfirmed mutations over a canonical list
// without touching the canonical source. Each overlay belongs to exactly one
// view and is discarded with it; it is never shared across views and never
// reconciled automatically when canonical data refreshes.
package overlay

// Overlay tracks three independent mutation sources over entities of type E
// patched by partial values of type P: per-entity modifications, locally
// added entities, and suppressed ids. The merged view is recomputed from the
// canonical list on every read.
//
// Not safe for concurrent use; the owning view drives it from one goroutine.
type Overlay[E any, P any] struct {
	id    func(E) string
	apply func(E, P) E
	merge func(P, P) P

	mods    map[string]P
	added   []E
	deleted map[string]struct{}
}

// New creates an empty overlay. id extracts an entity's identity, apply
// produces a patched copy, and merge combines two patches (later wins).
func New[E any, P any](id func(E) string, apply func(E, P) E, merge func(P, P) P) *Overlay[E, P] {
	return &Overlay[E, P]{
		id:      id,
		apply:   apply,
		merge:   merge,
		mods:    make(map[string]P),
		deleted: make(map[string]struct{}),
	}
}

// Modify merge-sets a partial patch for id. The id is not checked against
// any canonical list; a patch for an id that never appears is a no-op.
func (o *Overlay[E, P]) Modify(id string, patch P) {
	if prev, ok := o.mods[id]; ok {
		patch = o.merge(prev, patch)
	}
	o.mods[id] = patch
}

// Add appends a locally created entity. The caller guarantees its id is
// distinct from every canonical id, typically by generating a fresh one.
func (o *Overlay[E, P]) Add(entity E) {
	o.added = append(o.added, entity)
}

// Remove deletes id from the merged view. A locally added entity is removed
// outright, leaving no trace; a canonical id is suppressed. Deletion wins
// over any modification recorded for the same id.
func (o *Overlay[E, P]) Remove(id string) {
	for i, e := range o.added {
		if o.id(e) == id {
			o.added = append(o.added[:i], o.added[i+1:]...)
			return
		}
	}
	o.deleted[id] = struct{}{}
}

// View merges the overlay with the canonical list: suppressed entities are
// filtered out, modified entities are patched, and local additions are
// appended. The canonical slice is never mutated and a fresh slice is
// returned on every call.
func (o *Overlay[E, P]) View(canonical []E) []E {
	out := make([]E, 0, len(canonical)+len(o.added))
	for _, e := range canonical {
		id := o.id(e)
		if _, gone := o.deleted[id]; gone {
			continue
		}
		if patch, ok := o.mods[id]; ok {
			e = o.apply(e, patch)
		}
		out = append(out, e)
	}
	out = append(out, o.added...)
	return out
}

// Reset discards all local state. Clearing after a confirmed refresh is the
// owning view's decision; the overlay never does it on its own.
func (o *Overlay[E, P]) Reset() {
	o.mods = make(map[string]P)
	o.added = nil
	o.deleted = make(map[string]struct{})
}

// Empty reports whether the overlay holds no local state.
func (o *Overlay[E, P]) Empty() bool {
	return len(o.mods) == 0 && len(o.added) == 0 && len(o.deleted) == 0
}

// Added returns the locally added entities, newest last.
func (o *Overlay[E, P]) Added() []E {
	out := make([]E, len(o.added))
	copy(out, o.added)
	return out
}

// IsAdded reports whether id belongs to a locally added entity.
func (o *Overlay[E, P]) IsAdded(id string) bool {
	for _, e := range o.added {
		if o.id(e) == id {
			return true
		}
	}
	return false
}
