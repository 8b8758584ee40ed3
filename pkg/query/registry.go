package query

import (
	"fmt"
	"sync"
)

// ValueKind discriminates evaluation results.
type ValueKind int

const (
	// ValueString is a literal: a vertex name, key, color or other word.
	ValueString ValueKind = iota
	// ValueVertexSet is an ordered set of vertex names.
	ValueVertexSet
	// ValueVertexSets is a list of vertex sets (alternative access paths).
	ValueVertexSets
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "literal"
	case ValueVertexSet:
		return "vertex set"
	case ValueVertexSets:
		return "vertex set list"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating an expression node.
type Value struct {
	Kind     ValueKind
	Str      string
	Vertices []string
	Sets     [][]string
}

// StringValue wraps a literal.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// VertexSetValue wraps an ordered vertex set.
func VertexSetValue(names []string) Value {
	return Value{Kind: ValueVertexSet, Vertices: names}
}

// VertexSetsValue wraps a list of vertex sets.
func VertexSetsValue(sets [][]string) Value {
	return Value{Kind: ValueVertexSets, Sets: sets}
}

// ArgKind constrains what an argument position accepts.
type ArgKind int

const (
	// ArgLiteral accepts only a literal (key, value, color, string).
	ArgLiteral ArgKind = iota
	// ArgVertex accepts a literal naming a declared vertex.
	ArgVertex
	// ArgSelector accepts a vertex-set-returning call or a vertex name.
	ArgSelector
)

// String returns a human-readable name for the argument kind.
func (k ArgKind) String() string {
	switch k {
	case ArgLiteral:
		return "literal"
	case ArgVertex:
		return "vertex name"
	case ArgSelector:
		return "vertex selector"
	default:
		return "unknown"
	}
}

// Handler implements a query or transform function against the graph held by
// the evaluation context. Arguments arrive already evaluated and kind-checked
// against the function's signature.
type Handler func(ctx *Context, args []Value) (Value, error)

// Function describes a callable registered with the engine.
type Function struct {
	// Name is the identifier used in expressions.
	Name string
	// MinArgs/MaxArgs bound the arity; MaxArgs of -1 means variadic.
	MinArgs int
	MaxArgs int
	// Args gives the expected kind per position; when an expression
	// supplies more arguments than entries, the last entry repeats.
	Args []ArgKind
	// Transform marks functions with attribute side effects; their writes
	// are staged on the context and only committed if the whole
	// invocation succeeds.
	Transform bool
	// Handler is the implementation.
	Handler Handler
}

// argKindAt returns the expected kind of argument i.
func (f *Function) argKindAt(i int) ArgKind {
	if len(f.Args) == 0 {
		return ArgLiteral
	}
	if i >= len(f.Args) {
		return f.Args[len(f.Args)-1]
	}
	return f.Args[i]
}

// Registry is the open function table of the query/transform engine. It is
// seeded with the built-ins and populated further through the plugin
// boundary.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*Function
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]*Function)}
}

// Register adds a named function to the registry. Re-registering a name
// replaces the previous implementation.
func (r *Registry) Register(fn *Function) error {
	if fn == nil || fn.Name == "" || fn.Handler == nil {
		return fmt.Errorf("register: function must have a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[fn.Name] = fn
	return nil
}

// Lookup retrieves a registered function by name (case-sensitive).
func (r *Registry) Lookup(name string) (*Function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.functions[name]; ok {
		return fn, nil
	}
	return nil, &QueryError{
		Function: name,
		Message:  fmt.Sprintf("%q is not a registered function", name),
		Cause:    ErrUnknownFunction,
	}
}

// Names returns the registered function names, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	return names
}
