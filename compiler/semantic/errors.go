package semantic

import (
	"errors"
	"fmt"
)

// nullMessage is the diagnostic for the deprecated NULL keyword.
const nullMessage = "Use of NULL values in SeRQL queries has been deprecated, use BOUND(...) instead"

// MalformedQueryError reports a query that cannot be compiled because of
// something the user wrote.  Err, when set, is the underlying cause.
type MalformedQueryError struct {
	Msg string
	Err error
}

func (m *MalformedQueryError) Error() string {
	return m.Msg
}

func (m *MalformedQueryError) Unwrap() error {
	return m.Err
}

// InvariantError reports a syntax tree whose shape the analyzer does not
// expect.  It indicates a disagreement between the parser and the
// analyzer and is never converted into a MalformedQueryError.
type InvariantError struct {
	Msg string
}

func (i *InvariantError) Error() string {
	return "compiler invariant violated: " + i.Msg
}

func invariant(format string, args ...interface{}) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// wrap converts a failure from anywhere in the traversal into the error
// returned by Analyze.
func wrap(err error) error {
	var inv *InvariantError
	if errors.As(err, &inv) {
		return inv
	}
	var m *MalformedQueryError
	if errors.As(err, &m) {
		return m
	}
	return &MalformedQueryError{Msg: err.Error(), Err: err}
}

// IsMalformed reports whether err is or wraps a MalformedQueryError.
func IsMalformed(err error) bool {
	var m *MalformedQueryError
	return errors.As(err, &m)
}

// IsInvariant reports whether err is or wraps an InvariantError.
func IsInvariant(err error) bool {
	var inv *InvariantError
	return errors.As(err, &inv)
}
