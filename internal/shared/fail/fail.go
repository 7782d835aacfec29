// Package fail carries domain error kinds across layers so HTTP handlers
// can map an error to a status code without string matching.
package fail

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal is the fallback for unexpected faults (store unreachable,
	// bugs). Fatal to the current request, never retried here.
	KindInternal Kind = iota
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindForbidden means the actor lacks the owner-or-collaborator grant.
	KindForbidden
	// KindConflict means a uniqueness or idempotency violation.
	KindConflict
	// KindUnavailable marks transient cache faults. Callers absorb these
	// with a fallback to the durable store; they never reach the client.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a kind-tagged error. The kind is stable contract, the message is
// for humans.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unavailable(message string, err error) error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
// Plain errors report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool    { return err != nil && KindOf(err) == KindNotFound }
func IsForbidden(err error) bool   { return err != nil && KindOf(err) == KindForbidden }
func IsConflict(err error) bool    { return err != nil && KindOf(err) == KindConflict }
func IsUnavailable(err error) bool { return err != nil && KindOf(err) == KindUnavailable }
