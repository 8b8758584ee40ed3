package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agraph-dev/agraph/pkg/logging"
	"github.com/agraph-dev/agraph/pkg/spec"
)

// Builder assembles an immutable Graph from a parsed statement sequence.
// Statements are applied strictly in order: a relation or attribute may only
// reference vertices that an earlier type declaration introduced, even if a
// later statement would declare them.
type Builder struct {
	source string
	logger logging.Logger

	graph        *Graph
	groupCounter map[string]int // per-sink incoming group counter
	uniqueGroups int
}

// NewBuilder creates a builder for the named input source.
func NewBuilder(source string, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{
		source:       source,
		logger:       logger.With(logging.Component("builder"), logging.Source(source)),
		graph:        newGraph(),
		groupCounter: make(map[string]int),
	}
}

// Build applies every statement and returns the finished graph. The first
// failing statement aborts the build; the parser has already guaranteed the
// statements are syntactically sound, so every error here is semantic.
func (b *Builder) Build(statements []spec.Statement) (*Graph, error) {
	for _, stmt := range statements {
		var err error
		switch stmt.Kind {
		case spec.StatementTypeDecl:
			err = b.applyTypeDecl(stmt)
		case spec.StatementRelation:
			err = b.applyRelation(stmt)
		case spec.StatementAttribute:
			err = b.applyAttribute(stmt)
		case spec.StatementMacro:
			// Macros were consumed by the parser's macro table.
		default:
			err = &BuildError{
				Source: b.source, Line: stmt.Line,
				Message: fmt.Sprintf("unsupported statement kind %v", stmt.Kind),
			}
		}
		if err != nil {
			return nil, err
		}
	}

	b.logger.Debug("graph built",
		logging.Int("vertices", b.graph.VertexCount()),
		logging.Int("edges", b.graph.EdgeCount()))

	return b.graph, nil
}

// applyTypeDecl declares each listed vertex under the statement's type tag.
// Re-declaring a vertex under the same type is tolerated; a different type
// is an error.
func (b *Builder) applyTypeDecl(stmt spec.Statement) error {
	for _, name := range stmt.Vertices {
		if existing := b.graph.Vertex(name); existing != nil {
			if existing.Type != stmt.TypeName {
				return &BuildError{
					Source: b.source, Line: stmt.Line, Vertex: name,
					Message: fmt.Sprintf("vertex %q already declared with type %q, re-declared as %q",
						name, existing.Type, stmt.TypeName),
					Cause: ErrDuplicateType,
				}
			}
			continue
		}
		b.graph.addVertex(name, stmt.TypeName)
	}
	return nil
}

// applyRelation turns a relation statement into a single Edge record.
func (b *Builder) applyRelation(stmt spec.Statement) error {
	if len(stmt.LHS) == 0 || len(stmt.RHS) == 0 {
		return &BuildError{
			Source: b.source, Line: stmt.Line,
			Message: "relation requires at least one vertex on each side",
			Cause:   ErrEmptyRelation,
		}
	}

	for _, name := range stmt.LHS {
		if err := b.requireDeclared(name, stmt.Line); err != nil {
			return err
		}
	}
	for _, name := range stmt.RHS {
		if err := b.requireDeclared(name, stmt.Line); err != nil {
			return err
		}
	}

	edge := &Edge{
		ID:            uuid.New(),
		LHS:           append([]string(nil), stmt.LHS...),
		RHS:           append([]string(nil), stmt.RHS...),
		Label:         stmt.Label,
		GroupIDs:      make(map[string]int, len(stmt.RHS)),
		UniqueGroupID: b.uniqueGroups,
		Line:          stmt.Line,
	}
	b.uniqueGroups++

	for _, sink := range stmt.RHS {
		edge.GroupIDs[sink] = b.groupCounter[sink]
		b.groupCounter[sink]++
	}

	// A relation description applies to every target vertex.
	if stmt.Description != "" {
		for _, sink := range stmt.RHS {
			b.graph.Vertex(sink).Attributes["description"] = stmt.Description
		}
	}

	b.graph.addEdge(edge)
	return nil
}

// applyAttribute sets a style attribute on each listed vertex.
func (b *Builder) applyAttribute(stmt spec.Statement) error {
	for _, name := range stmt.Vertices {
		if err := b.requireDeclared(name, stmt.Line); err != nil {
			return err
		}
		b.graph.Vertex(name).Attributes[stmt.Key] = stmt.Value
	}
	return nil
}

func (b *Builder) requireDeclared(name string, line int) error {
	if b.graph.HasVertex(name) {
		return nil
	}
	return &BuildError{
		Source: b.source, Line: line, Vertex: name,
		Message: fmt.Sprintf("%q used before declaration", name),
		Cause:   ErrUndeclaredVertex,
	}
}
