package query

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrArity           = errors.New("wrong number of arguments")
	ErrArgKind         = errors.New("wrong argument kind")
	ErrSyntax          = errors.New("malformed expression")
)

// QueryError reports a failure while parsing or evaluating a query or
// transform expression. It is fatal to the invocation: no staged transform
// side effects are committed once a QueryError occurs.
type QueryError struct {
	Expression string // the offending expression text, if known
	Function   string // the function being called, if known
	Pos        int    // 0-based offset into the expression
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("query error in %s(): %s", e.Function, e.Message)
	}
	if e.Expression != "" {
		return fmt.Sprintf("query error at offset %d of %q: %s", e.Pos, e.Expression, e.Message)
	}
	return "query error: " + e.Message
}

// Unwrap returns the sentinel classifying this error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}
