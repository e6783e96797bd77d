package unit

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Registry maps unit names to their lifecycle state.
// Entries are created on the first Load of a name and never evicted.
// A Registry is safe for concurrent use; each Loader should own one.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Unit
	sf      singleflight.Group
	now     func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Unit),
		now:     time.Now,
	}
}

// settled returns the recorded outcome for name if it reached a terminal state.
func (r *Registry) settled(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.entries[name]
	if !ok || !u.State.Terminal() {
		return false, nil
	}
	if u.State == Failed {
		return true, u.Err
	}
	return true, nil
}

// begin moves name into Loading and counts the fetch about to be issued.
func (r *Registry) begin(name, locator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &Unit{
		Name:        name,
		Locator:     locator,
		State:       Loading,
		Fetches:     1,
		RequestedAt: r.now(),
	}
}

// settle records the terminal outcome of the fetch for name.
func (r *Registry) settle(name string, failure *LoadFailedError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.entries[name]
	u.SettledAt = r.now()
	if failure != nil {
		u.State = Failed
		u.Err = failure
		return
	}
	u.State = Loaded
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.entries[name]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// State returns the state of name, NotRequested if it was never loaded.
func (r *Registry) State(name string) State {
	u, ok := r.Get(name)
	if !ok {
		return NotRequested
	}
	return u.State
}

// List returns copies of all entries sorted by name.
func (r *Registry) List() []Unit {
	r.mu.RLock()
	units := make([]Unit, 0, len(r.entries))
	for _, u := range r.entries {
		units = append(units, *u)
	}
	r.mu.RUnlock()

	sort.Slice(units, func(i, j int) bool {
		return units[i].Name < units[j].Name
	})
	return units
}

// Len returns the number of units ever requested.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
