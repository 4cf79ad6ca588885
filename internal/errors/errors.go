// Package errors defines the engine's error taxonomy and its mapping onto
// gRPC status codes.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers malformed ids, out-of-range enums, self-targeting
	// and swipes across a block relation. Never retried.
	KindValidation
	// KindPolicy is a cross-cohort (minor/adult) attempt.
	KindPolicy
	KindNotFound
	// KindTransient is a store failure; the whole operation may be retried.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPolicy:
		return "policy_violation"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is a classified error. Msg is safe to show to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Policy(msg string) error { return &Error{Kind: KindPolicy, Msg: msg} }

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// Transient wraps a store failure raised while performing op.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{Kind: KindTransient, Msg: op + " failed", Err: err}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsPolicy(err error) bool     { return KindOf(err) == KindPolicy }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsTransient(err error) bool  { return KindOf(err) == KindTransient }
