package query

import (
	"github.com/agraph-dev/agraph/pkg/analysis"
)

// NoneValue removes an attribute key instead of setting it when passed as
// the value argument of akv.
const NoneValue = "none"

// RegisterBuiltins installs the built-in query and transform functions.
func RegisterBuiltins(r *Registry) error {
	builtins := []*Function{
		{
			Name:    "vertices",
			MinArgs: 0,
			MaxArgs: 0,
			Handler: evalVertices,
		},
		{
			Name:    "gives_access_to",
			MinArgs: 1,
			MaxArgs: -1,
			Args:    []ArgKind{ArgSelector},
			Handler: evalGivesAccessTo,
		},
		{
			Name:    "access_base",
			MinArgs: 1,
			MaxArgs: 1,
			Args:    []ArgKind{ArgVertex},
			Handler: evalAccessBase,
		},
		{
			Name:    "access_base_sets",
			MinArgs: 1,
			MaxArgs: 1,
			Args:    []ArgKind{ArgVertex},
			Handler: evalAccessBaseSets,
		},
		{
			Name:      "akv",
			MinArgs:   3,
			MaxArgs:   3,
			Args:      []ArgKind{ArgLiteral, ArgLiteral, ArgSelector},
			Transform: true,
			Handler:   evalAKV,
		},
	}

	for _, fn := range builtins {
		if err := r.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

// evalVertices returns every declared vertex in declaration order.
func evalVertices(ctx *Context, _ []Value) (Value, error) {
	vertices := ctx.Graph.Vertices()
	names := make([]string, 0, len(vertices))
	for _, v := range vertices {
		names = append(names, v.Name)
	}
	return VertexSetValue(names), nil
}

// evalGivesAccessTo computes the reachability closure of the union of its
// selector arguments.
func evalGivesAccessTo(ctx *Context, args []Value) (Value, error) {
	var seeds []string
	seen := make(map[string]struct{})
	for _, arg := range args {
		for _, name := range arg.Vertices {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			seeds = append(seeds, name)
		}
	}

	closure, err := analysis.GivesAccessTo(ctx.Graph, seeds)
	if err != nil {
		return Value{}, err
	}
	return VertexSetValue(closure), nil
}

// evalAccessBase computes the flattened minimal primitive base of a vertex.
func evalAccessBase(ctx *Context, args []Value) (Value, error) {
	base, err := analysis.AccessBase(ctx.Graph, args[0].Str)
	if err != nil {
		return Value{}, err
	}
	return VertexSetValue(base), nil
}

// evalAccessBaseSets computes the per-path primitive sets of a vertex.
func evalAccessBaseSets(ctx *Context, args []Value) (Value, error) {
	sets, err := analysis.AccessBaseSets(ctx.Graph, args[0].Str)
	if err != nil {
		return Value{}, err
	}
	return VertexSetsValue(sets), nil
}

// evalAKV stages "key = value" on every vertex the selector evaluates to.
// The special value "none" stages removal of the key instead.
func evalAKV(ctx *Context, args []Value) (Value, error) {
	key, value, selection := args[0].Str, args[1].Str, args[2]

	for _, name := range selection.Vertices {
		if value == NoneValue {
			ctx.StageRemove(name, key)
		} else {
			ctx.StageSet(name, key, value)
		}
	}
	return selection, nil
}
