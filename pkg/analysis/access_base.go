package analysis

import (
	"fmt"

	"github.com/agraph-dev/agraph/pkg/graph"
)

// Visitation states for the access-base recursion. An explicit state table
// turns unbounded recursion on a cyclic graph into a deterministic failure.
const (
	white = iota // unvisited
	gray         // in progress, on the current dependency chain
	black        // done, memoized
)

type baseSolver struct {
	graph *graph.Graph
	state map[string]int
	memo  map[string]map[string]struct{}
}

// AccessBase computes the minimal set of primitive vertices sufficient to
// reach the target: a primitive (no incoming edges) is its own base; for any
// other vertex the base is the union, over every incoming edge, of the bases
// of that edge's entire conjunction. Alternative access paths are flattened
// into a single primitive set. The result is in declaration order.
//
// A vertex that depends on itself through its conjunctions has no base;
// such a cycle is reported as an error rather than recursed into.
func AccessBase(g *graph.Graph, target string) ([]string, error) {
	s := &baseSolver{
		graph: g,
		state: make(map[string]int),
		memo:  make(map[string]map[string]struct{}),
	}
	base, err := s.solve(target)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(base))
	for name := range base {
		out = append(out, name)
	}
	g.SortByDeclaration(out)
	return out, nil
}

// AccessBaseSets computes the per-path form of the access base: one primitive
// set per incoming edge of the target, each the flattened base of that edge's
// conjunction. For a primitive target the result is a single set holding the
// target itself. Sets follow edge declaration order; members follow vertex
// declaration order.
func AccessBaseSets(g *graph.Graph, target string) ([][]string, error) {
	if !g.HasVertex(target) {
		return nil, fmt.Errorf("access_base: %w: %q", graph.ErrUnknownVertex, target)
	}

	incoming := g.Incoming(target)
	if len(incoming) == 0 {
		return [][]string{{target}}, nil
	}

	sets := make([][]string, 0, len(incoming))
	for _, edge := range incoming {
		s := &baseSolver{
			graph: g,
			state: map[string]int{target: gray},
			memo:  make(map[string]map[string]struct{}),
		}
		combined := make(map[string]struct{})
		for _, dep := range edge.LHS {
			base, err := s.solve(dep)
			if err != nil {
				return nil, err
			}
			for name := range base {
				combined[name] = struct{}{}
			}
		}
		set := make([]string, 0, len(combined))
		for name := range combined {
			set = append(set, name)
		}
		g.SortByDeclaration(set)
		sets = append(sets, set)
	}
	return sets, nil
}

func (s *baseSolver) solve(name string) (map[string]struct{}, error) {
	if !s.graph.HasVertex(name) {
		return nil, fmt.Errorf("access_base: %w: %q", graph.ErrUnknownVertex, name)
	}

	switch s.state[name] {
	case gray:
		return nil, &graph.BuildError{
			Vertex:  name,
			Message: fmt.Sprintf("access base of %q depends on itself", name),
			Cause:   graph.ErrDependencyCycle,
		}
	case black:
		return s.memo[name], nil
	}

	incoming := s.graph.Incoming(name)
	if len(incoming) == 0 {
		base := map[string]struct{}{name: {}}
		s.state[name] = black
		s.memo[name] = base
		return base, nil
	}

	s.state[name] = gray
	base := make(map[string]struct{})
	for _, edge := range incoming {
		for _, dep := range edge.LHS {
			depBase, err := s.solve(dep)
			if err != nil {
				return nil, err
			}
			for primitive := range depBase {
				base[primitive] = struct{}{}
			}
		}
	}
	s.state[name] = black
	s.memo[name] = base
	return base, nil
}
