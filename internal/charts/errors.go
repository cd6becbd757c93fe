package charts

import (
	"errors"
	"fmt"
)

// Kind classifies a failure in the fetch/post cycle.
type Kind int

const (
	KindUnknown  Kind = iota
	AuthFailure       // token exchange failed
	FetchFailure      // chart playlist could not be read
	PostFailure       // a post in the thread could not be created
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case AuthFailure:
		return "auth failure"
	case FetchFailure:
		return "fetch failure"
	case PostFailure:
		return "post failure"
	default:
		return "unknown failure"
	}
}

// Error is the typed failure returned by the network-calling steps of a cycle.
type Error struct {
	Kind Kind
	Op   string // what was being attempted, e.g. "fetch playlist 37i9dQZEVXbMDoHDwVN2tF"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
