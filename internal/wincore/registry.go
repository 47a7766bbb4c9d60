package wincore

import "sync"

// registry is the association side table mapping native window identifiers to
// window state. Modeling the association as an explicit table, rather than a
// pointer smuggled through native object storage, keeps lookup O(1) without
// aliasing hazards: once an entry is cleared, no callback can reach the state
// again.
//
// The mutex covers the map only. Binding happens on the opening goroutine,
// lookups on the pump goroutine; critical sections are a map access each.
type registry struct {
	mu      sync.Mutex
	windows map[uint64]*State
}

var windows = &registry{windows: make(map[uint64]*State)}

func (r *registry) bind(id uint64, s *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[id] = s
}

func (r *registry) lookup(id uint64) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.windows[id]
	return s, ok
}

func (r *registry) clear(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.windows, id)
}

// Lookup recovers the window state bound to a native window identifier.
// Adapters call this from native callbacks; a false return means the window
// is already torn down (or never existed) and the callback must not proceed.
func Lookup(id uint64) (*State, bool) {
	return windows.lookup(id)
}
