package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUndeclaredVertex = errors.New("vertex used before declaration")
	ErrDuplicateType    = errors.New("vertex re-declared under a different type")
	ErrEmptyRelation    = errors.New("relation side is empty")
	ErrUnknownVertex    = errors.New("unknown vertex")
	ErrDependencyCycle  = errors.New("dependency cycle")
)

// BuildError reports a statement that could not be applied to the graph,
// identified by its line in the specification text.
type BuildError struct {
	Source  string // input source label
	Line    int    // line of the offending statement (0 if not positional)
	Vertex  string // offending vertex name, if any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	where := ""
	if e.Line > 0 {
		where = fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: build error%s: %s", e.Source, where, e.Message)
	}
	return fmt.Sprintf("build error%s: %s", where, e.Message)
}

// Unwrap returns the sentinel classifying this error.
func (e *BuildError) Unwrap() error {
	return e.Cause
}
