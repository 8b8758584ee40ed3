package spec

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	ErrUnknownMarker = errors.New("unknown relation marker")
	ErrBadSyntax     = errors.New("malformed statement")
	ErrBadMacro      = errors.New("invalid macro definition")
)

// ParseError reports a malformed statement with its location in the
// specification text.
type ParseError struct {
	Source  string // input source label (e.g. a file name)
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string
	Cause   error // sentinel classifying the failure
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.Source, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Unwrap returns the sentinel classifying this error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ErrorList aggregates the parse errors of a best-effort batch pass.
// Parsing attempts every statement so all errors can be reported at once.
type ErrorList []*ParseError

// Error implements the error interface by joining the individual messages.
func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Is reports whether any error in the list matches target.
func (l ErrorList) Is(target error) bool {
	for _, e := range l {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}
