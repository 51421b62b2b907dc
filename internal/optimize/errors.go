package optimize

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

// Failure kinds.
const (
	KindEmptySpending    Kind = "EmptySpending"
	KindEmptyGoals       Kind = "EmptyGoals"
	KindInvocationFailed Kind = "InvocationFailed"
	KindSchemaMismatch   Kind = "SchemaMismatch"
)

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrEmptySpending    = &Error{Kind: KindEmptySpending}
	ErrEmptyGoals       = &Error{Kind: KindEmptyGoals}
	ErrInvocationFailed = &Error{Kind: KindInvocationFailed}
	ErrSchemaMismatch   = &Error{Kind: KindSchemaMismatch}
)

// Error is a typed pipeline failure.
type Error struct {
	// Err is the underlying cause, set for InvocationFailed and for
	// SchemaMismatch when the payload could not be decoded at all.
	Err error
	// Key and Fragment name the offending entry of a SchemaMismatch.
	Key      string
	Fragment string
	Kind     Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptySpending:
		return "no spending data: record some expenses or enter spending manually"
	case KindEmptyGoals:
		return "financial goals are required"
	case KindInvocationFailed:
		if e.Err != nil {
			return fmt.Sprintf("budget suggestion request failed: %v", e.Err)
		}
		return "budget suggestion request failed"
	case KindSchemaMismatch:
		switch {
		case e.Key != "" && e.Err != nil:
			return fmt.Sprintf("model response does not match schema: category %q: %v", e.Key, e.Err)
		case e.Key != "":
			return fmt.Sprintf("model response does not match schema: category %q has value %s, want a non-negative number", e.Key, e.Fragment)
		case e.Err != nil:
			return fmt.Sprintf("model response does not match schema: %v: %s", e.Err, e.Fragment)
		default:
			return fmt.Sprintf("model response does not match schema: want a JSON object, got %s", e.Fragment)
		}
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var optErr *Error
	if errors.As(err, &optErr) {
		return optErr.Kind
	}
	return ""
}
