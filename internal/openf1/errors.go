package openf1

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; every error returned by this
// package wraps exactly one of them.
var (
	// ErrNetwork is a transport failure or a non-2xx response.
	ErrNetwork = errors.New("network error")
	// ErrParse is a malformed or unexpectedly shaped response.
	ErrParse = errors.New("parse error")
	// ErrInvalidInput is a request rejected before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyResult is a well-formed request that matched no rows.
	ErrEmptyResult = errors.New("empty result")
)

// Error carries the failing operation alongside its kind.
type Error struct {
	Kind error  // one of the Err* sentinels
	Op   string // e.g. "list sessions"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the sentinel kind wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrEmptyResult, ErrParse, ErrNetwork} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
