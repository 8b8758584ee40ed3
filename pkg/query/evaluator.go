package query

import (
	"fmt"

	"github.com/agraph-dev/agraph/pkg/graph"
	"github.com/agraph-dev/agraph/pkg/logging"
)

// Context carries one invocation's evaluation state: the graph under query
// and the staged attribute writes of transform expressions. Writes are only
// applied to the graph by Commit, which the pipeline calls after every
// expression of the invocation has evaluated successfully. A failing
// expression therefore leaves the graph untouched.
type Context struct {
	Graph  *graph.Graph
	staged []stagedWrite
}

type stagedWrite struct {
	vertex string
	key    string
	value  string
	remove bool
}

// NewContext creates an evaluation context over the given graph.
func NewContext(g *graph.Graph) *Context {
	return &Context{Graph: g}
}

// StageSet stages "key = value" on the named vertex.
func (c *Context) StageSet(vertex, key, value string) {
	c.staged = append(c.staged, stagedWrite{vertex: vertex, key: key, value: value})
}

// StageRemove stages removal of key from the named vertex.
func (c *Context) StageRemove(vertex, key string) {
	c.staged = append(c.staged, stagedWrite{vertex: vertex, key: key, remove: true})
}

// StagedWrites returns the number of staged attribute writes.
func (c *Context) StagedWrites() int {
	return len(c.staged)
}

// Commit applies the staged writes to the graph in staging order, so a later
// transform wins over an earlier one for the same vertex and key.
func (c *Context) Commit() {
	for _, w := range c.staged {
		v := c.Graph.Vertex(w.vertex)
		if v == nil {
			continue
		}
		if w.remove {
			delete(v.Attributes, w.key)
		} else {
			v.Attributes[w.key] = w.value
		}
	}
	c.staged = nil
}

// Evaluator evaluates parsed expressions bottom-up against a registry.
type Evaluator struct {
	registry *Registry
	logger   logging.Logger
}

// NewEvaluator creates an evaluator over the given function registry.
func NewEvaluator(registry *Registry, logger logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Evaluator{
		registry: registry,
		logger:   logger.With(logging.Component("query")),
	}
}

// EvaluateString parses and evaluates an expression string.
func (e *Evaluator) EvaluateString(ctx *Context, input string) (Value, error) {
	call, err := ParseExpression(input)
	if err != nil {
		return Value{}, err
	}
	return e.evaluateCall(ctx, call)
}

// Evaluate evaluates a parsed expression tree.
func (e *Evaluator) Evaluate(ctx *Context, expr Expr) (Value, error) {
	switch n := expr.(type) {
	case *Literal:
		return StringValue(n.Text), nil
	case *Call:
		return e.evaluateCall(ctx, n)
	default:
		return Value{}, &QueryError{
			Message: fmt.Sprintf("unsupported expression node %T", expr),
			Cause:   ErrSyntax,
		}
	}
}

func (e *Evaluator) evaluateCall(ctx *Context, call *Call) (Value, error) {
	fn, err := e.registry.Lookup(call.Name)
	if err != nil {
		return Value{}, err
	}

	if len(call.Args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(call.Args) > fn.MaxArgs) {
		return Value{}, &QueryError{
			Function: fn.Name,
			Message: fmt.Sprintf("got %d arguments, want %s",
				len(call.Args), arityBounds(fn)),
			Cause: ErrArity,
		}
	}

	args := make([]Value, len(call.Args))
	for i, argExpr := range call.Args {
		value, err := e.Evaluate(ctx, argExpr)
		if err != nil {
			return Value{}, err
		}
		checked, err := e.checkArg(ctx, fn, i, argExpr, value)
		if err != nil {
			return Value{}, err
		}
		args[i] = checked
	}

	e.logger.Debug("evaluating call", logging.Expression(call.String()))
	return fn.Handler(ctx, args)
}

// checkArg validates an evaluated argument against the signature kind and
// coerces vertex-name literals into singleton sets for selector positions.
func (e *Evaluator) checkArg(ctx *Context, fn *Function, i int, expr Expr, value Value) (Value, error) {
	kind := fn.argKindAt(i)
	switch kind {
	case ArgLiteral:
		if value.Kind != ValueString {
			return Value{}, e.kindError(fn, i, kind, value)
		}
		return value, nil

	case ArgVertex:
		if value.Kind != ValueString {
			return Value{}, e.kindError(fn, i, kind, value)
		}
		if !ctx.Graph.HasVertex(value.Str) {
			return Value{}, &QueryError{
				Function: fn.Name,
				Message:  fmt.Sprintf("argument %d: %q is not a declared vertex", i+1, value.Str),
				Cause:    ErrArgKind,
			}
		}
		return value, nil

	case ArgSelector:
		switch value.Kind {
		case ValueVertexSet:
			return value, nil
		case ValueString:
			if !ctx.Graph.HasVertex(value.Str) {
				return Value{}, &QueryError{
					Function: fn.Name,
					Message:  fmt.Sprintf("argument %d: %q is not a declared vertex", i+1, value.Str),
					Cause:    ErrArgKind,
				}
			}
			return VertexSetValue([]string{value.Str}), nil
		default:
			return Value{}, e.kindError(fn, i, kind, value)
		}

	default:
		return Value{}, e.kindError(fn, i, kind, value)
	}
}

func (e *Evaluator) kindError(fn *Function, i int, want ArgKind, got Value) *QueryError {
	return &QueryError{
		Function: fn.Name,
		Message:  fmt.Sprintf("argument %d: expected a %s, got a %s", i+1, want, got.Kind),
		Cause:    ErrArgKind,
	}
}

func arityBounds(fn *Function) string {
	if fn.MaxArgs < 0 {
		return fmt.Sprintf("at least %d", fn.MinArgs)
	}
	if fn.MinArgs == fn.MaxArgs {
		return fmt.Sprintf("exactly %d", fn.MinArgs)
	}
	return fmt.Sprintf("between %d and %d", fn.MinArgs, fn.MaxArgs)
}
