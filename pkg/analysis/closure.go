package analysis

import (
	"fmt"

	"github.com/agraph-dev/agraph/pkg/graph"
)

// GivesAccessTo computes the forward AND/OR reachability closure of the seed
// vertices: starting from everything in seeds, an edge fires as soon as its
// entire conjunction (LHS) is reachable, making each of its RHS vertices
// reachable in turn. The result contains the seeds themselves and is returned
// in declaration order without duplicates.
//
// The computation is incremental rather than a per-pass rescan: every edge
// tracks how many of its distinct LHS vertices are still missing, and a
// worklist of newly reached vertices decrements those counters. An edge fires
// exactly once, when its counter reaches zero. Reachability is monotone and
// the vertex set is finite, so the worklist drains after at most one entry
// per vertex.
func GivesAccessTo(g *graph.Graph, seeds []string) ([]string, error) {
	for _, name := range seeds {
		if !g.HasVertex(name) {
			return nil, fmt.Errorf("gives_access_to: %w: %q", graph.ErrUnknownVertex, name)
		}
	}

	type edgeState struct {
		edge    *graph.Edge
		missing int
		fired   bool
	}

	// Index edges by the LHS vertices they are still waiting on.
	states := make([]*edgeState, 0, len(g.Edges()))
	waiting := make(map[string][]*edgeState)
	for _, e := range g.Edges() {
		st := &edgeState{edge: e}
		distinct := make(map[string]struct{}, len(e.LHS))
		for _, name := range e.LHS {
			distinct[name] = struct{}{}
		}
		st.missing = len(distinct)
		for name := range distinct {
			waiting[name] = append(waiting[name], st)
		}
		states = append(states, st)
	}

	reached := make(map[string]struct{}, len(seeds))
	queue := make([]string, 0, len(seeds))

	add := func(name string) {
		if _, ok := reached[name]; ok {
			return
		}
		reached[name] = struct{}{}
		queue = append(queue, name)
	}

	for _, name := range seeds {
		add(name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		for _, st := range waiting[name] {
			st.missing--
			if st.missing > 0 || st.fired {
				continue
			}
			st.fired = true
			for _, sink := range st.edge.RHS {
				add(sink)
			}
		}
	}

	out := make([]string, 0, len(reached))
	for name := range reached {
		out = append(out, name)
	}
	g.SortByDeclaration(out)
	return out, nil
}
