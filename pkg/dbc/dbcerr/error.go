// Package dbcerr defines the error taxonomy returned by the dbc parser and
// binder: every failure surfaced by dbc.ParseText is one of the Kind
// values below, fatal at the parse-call boundary.
package dbcerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies why a parse or bind failed.
type Kind int

const (
	// SyntaxError means the grammar rejected the input.
	SyntaxError Kind = iota
	// DuplicateEntity means a node/message/value-table/attribute-schema/
	// signal/attribute-value was declared twice with a conflicting key.
	DuplicateEntity
	// UnresolvedReference means a cross-referencing statement named an
	// entity that was never declared.
	UnresolvedReference
	// UnexpectedToken means a closed-set token decoder received an
	// unrecognized value.
	UnexpectedToken
	// TypeMismatch means an attribute value's decoded type disagreed
	// with its schema.
	TypeMismatch
	// IoError is returned only by the file-loading convenience wrapper.
	IoError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case DuplicateEntity:
		return "DuplicateEntity"
	case UnresolvedReference:
		return "UnresolvedReference"
	case UnexpectedToken:
		return "UnexpectedToken"
	case TypeMismatch:
		return "TypeMismatch"
	case IoError:
		return "IoError"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type carried through the parser and binder.
// Line and Column are 1-based and zero when not applicable (e.g. IoError).
type Error struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a Kind-tagged error with a stack trace attached, in the style
// the teacher repo attaches stacks to every parse failure.
func New(kind Kind, line, col int, format string, args ...any) error {
	return errors.WithStack(&Error{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	})
}

// As reports whether err (or one of its wrapped causes) is a *Error of the
// given kind, returning it for inspection.
func As(err error, kind Kind) (*Error, bool) {
	var target *Error
	if !errors.As(err, &target) {
		return nil, false
	}
	return target, target.Kind == kind
}
