package unit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when Load is called without a unit name.
	ErrEmptyName = errors.New("unit name is empty")
	// ErrNotFound marks a resource locator that did not resolve.
	ErrNotFound = errors.New("resource not found")
	// ErrTransport marks a network or storage failure while fetching.
	ErrTransport = errors.New("transport error")
	// ErrExecution marks fetched code that failed during evaluation.
	ErrExecution = errors.New("execution error")
)

// Kind classifies the cause of a failed load for diagnostics.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindTransport
	KindExecution
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport_error"
	case KindExecution:
		return "execution_error"
	default:
		return "unknown"
	}
}

// LoadFailedError is the single failure outcome of Load.
// Every caller waiting on the same unit receives the same value.
type LoadFailedError struct {
	Name  string
	Cause error
}

func (e *LoadFailedError) Error() string {
	return fmt.Sprintf("unit %q failed to load: %v", e.Name, e.Cause)
}

func (e *LoadFailedError) Unwrap() error {
	return e.Cause
}

// Kind reports which class of failure caused the load to fail.
func (e *LoadFailedError) Kind() Kind {
	switch {
	case errors.Is(e.Cause, ErrExecution):
		return KindExecution
	case errors.Is(e.Cause, ErrNotFound):
		return KindNotFound
	case errors.Is(e.Cause, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// KindOf returns the Kind of the first *LoadFailedError in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var failed *LoadFailedError
	if errors.As(err, &failed) {
		return failed.Kind()
	}
	return KindUnknown
}
