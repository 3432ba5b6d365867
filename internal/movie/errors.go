package movie

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the console can render them uniformly.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindIO
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// ErrNotFound is returned when no row matches a title lookup.
var ErrNotFound = errors.New("movie not found")

// Error carries a Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E builds an *Error. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the outermost *Error in err's chain.
// ErrNotFound without a wrapper is reported as KindNotFound.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindUnknown
}
