package failure

import (
	"errors"
	"fmt"
)

// Kind classifies where in the run a failure happened.
type Kind int

const (
	Network Kind = iota + 1
	Auth
	Parse
	Extraction
	Write
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "network"
	case Auth:
		return "auth"
	case Parse:
		return "parse"
	case Extraction:
		return "extraction"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every stage of the scraper.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "fetch" or "locate price"
	URL  string // optional
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error: " + e.Op
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an *Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted cause.
func Newf(kind Kind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// WithURL attaches the URL being processed when the error happened. It is a
// no-op for errors that are not *Error or already carry a URL.
func WithURL(err error, url string) error {
	var fe *Error
	if errors.As(err, &fe) && fe.URL == "" {
		cp := *fe
		cp.URL = url
		return &cp
	}
	return err
}

// Is reports whether any error in err's chain is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}
