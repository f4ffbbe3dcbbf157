package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a persistence failure. Driver error surfaces differ per
// backend, so the raw error is translated into a Kind exactly once, here at
// the store boundary; call sites never re-match on error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermissionDenied
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// PersistenceError wraps a driver error with its classification and the
// operation that failed.
type PersistenceError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a PersistenceError of kind not-found.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool { return kindOf(err) == KindTransient }

func kindOf(err error) Kind {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// wrapErr translates a raw driver error into a PersistenceError. nil passes
// through untouched.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "does not exist"):
		return KindNotFound
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "readonly database"),
		strings.Contains(msg, "access denied"):
		return KindPermissionDenied
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "busy"),
		strings.Contains(msg, "connection"), strings.Contains(msg, "i/o error"):
		return KindTransient
	default:
		return KindUnknown
	}
}
