// Package errs defines the error taxonomy shared by lmtt packages.
//
// Every error that crosses a package boundary is an *Error carrying a Kind,
// the operation that failed and the underlying cause. Callers classify errors
// with IsKind or errors.Is(err, ErrNotFound).
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error
type Kind int

const (
	KindConfig     Kind = iota // bad or missing settings, unreadable paths
	KindGeneration             // a colour source failed
	KindModule                 // a module apply/injection failed
	KindIO                     // filesystem failure
	KindTimeout                // an external call exceeded its deadline
	KindNotFound               // a file or module does not exist
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindGeneration:
		return "generation"
	case KindModule:
		return "module"
	case KindIO:
		return "io"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// ErrNotFound matches every error of kind KindNotFound via errors.Is
var ErrNotFound = errors.New("not found")

// Error is a classified error
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports NotFound errors as ErrNotFound
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// New builds a classified error. A nil err is replaced by a generic message
// so the result is never an *Error wrapping nil.
func New(kind Kind, op string, err error) *Error {
	if err == nil {
		err = errors.New(kind.String())
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a classified error from a format string
func Newf(kind Kind, op, format string, args ...any) *Error {
	return New(kind, op, fmt.Errorf(format, args...))
}

func Config(op string, err error) *Error     { return New(KindConfig, op, err) }
func Generation(op string, err error) *Error { return New(KindGeneration, op, err) }
func Module(op string, err error) *Error     { return New(KindModule, op, err) }
func IO(op string, err error) *Error         { return New(KindIO, op, err) }
func Timeout(op string, err error) *Error    { return New(KindTimeout, op, err) }
func NotFound(op string, err error) *Error   { return New(KindNotFound, op, err) }

// IsKind reports whether any error in err's chain is an *Error of kind k
func IsKind(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == k {
			return true
		}
		err = e.Err
	}
	return false
}
