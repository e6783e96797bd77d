package unit

import "time"

// State is the lifecycle state of a unit.
type State int

const (
	NotRequested State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case NotRequested:
		return "not_requested"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == Loaded || s == Failed
}

// Unit is a point-in-time view of a registry entry.
type Unit struct {
	// Name is the logical unit name.
	Name string
	// Locator is the resource locator derived from Name.
	Locator string
	// State is the current lifecycle state.
	State State
	// Fetches counts fetch operations issued for this unit. Never above 1.
	Fetches int
	// Err holds the failure when State is Failed.
	Err *LoadFailedError
	// RequestedAt is when the first Load for this unit started.
	RequestedAt time.Time
	// SettledAt is when the unit reached a terminal state.
	SettledAt time.Time
}
