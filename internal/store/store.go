package store

import "sync"

// Hook observes every dispatched event after reducers have run. Hooks are
// registered once at composition time, before the first dispatch.
type Hook func(Event)

// Store is the single mutable state container. It is constructed once by the
// composition root and passed by reference; there is no package-level
// instance. All writes go through Dispatch.
type Store struct {
	mu    sync.RWMutex
	state State
	hooks []Hook

	subMu   sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// New creates a store seeded from persisted session state.
func New(seed Seed) *Store {
	return &Store{
		state: initialState(seed),
		subs:  make(map[int]chan State),
	}
}

// AddHook registers an event observer. Must not be called concurrently with
// Dispatch; the composition root wires all hooks up front.
func (s *Store) AddHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Dispatch reduces the event into the state, then notifies subscribers and
// hooks. Reducers run synchronously under the state lock, so events are
// applied in dispatch order; hooks run outside the lock and may dispatch
// further events.
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	s.state = reduce(s.state, ev)
	snap := s.state
	s.mu.Unlock()

	s.publish(snap)
	for _, h := range s.hooks {
		h(ev)
	}
}

// State returns a snapshot of the current root state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a coalescing snapshot channel: if the subscriber lags,
// intermediate snapshots are dropped and only the latest is retained.
// The returned cancel func closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) publish(snap State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot, keep the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
