// Package export flattens a finished access graph into a renderer-neutral
// description, and serializes that description to Graphviz DOT text for the
// external rendering collaborator. No analysis happens here; ordering always
// follows declaration order.
package export

import (
	"strings"

	"github.com/agraph-dev/agraph/pkg/graph"
)

// Options controls display-layer conventions applied while flattening.
type Options struct {
	// HumanReadable rewrites underscores in vertex names to spaces for
	// display. The underlying names are untouched; underscores are a
	// display-layer convention only.
	HumanReadable bool
}

// Node is the flattened record of one vertex.
type Node struct {
	Name       string            // unique vertex name as authored
	Display    string            // display name after Options are applied
	Type       string            // user-declared type tag
	Locked     bool              // rendering hint derived from the name
	Attributes map[string]string // style attributes after transforms
}

// Edge is the flattened record of one access relation.
type Edge struct {
	From          []string       // conjunction, authored order
	To            []string       // targets, authored order
	Label         string         // canonical edge label ("" for standard)
	Recovery      bool           // labelled as a recovery method
	Hidden        bool           // labelled as hidden for rendering
	GroupIDs      map[string]int // per-target access-method index
	UniqueGroupID int            // graph-unique conjunction number
}

// Description is the renderer-neutral flattening of a graph.
type Description struct {
	Nodes []Node
	Edges []Edge
}

// DisplayName applies the human-readable option to a vertex name.
func DisplayName(name string, human bool) string {
	if !human {
		return name
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Flatten walks the final graph and produces its description. Vertices and
// edges keep declaration order so rendering is stable across runs.
func Flatten(g *graph.Graph, opts Options) *Description {
	desc := &Description{
		Nodes: make([]Node, 0, g.VertexCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for _, v := range g.Vertices() {
		attrs := make(map[string]string, len(v.Attributes))
		for k, val := range v.Attributes {
			attrs[k] = val
		}
		desc.Nodes = append(desc.Nodes, Node{
			Name:       v.Name,
			Display:    DisplayName(v.Name, opts.HumanReadable),
			Type:       v.Type,
			Locked:     v.Locked(),
			Attributes: attrs,
		})
	}

	for _, e := range g.Edges() {
		groups := make(map[string]int, len(e.GroupIDs))
		for sink, id := range e.GroupIDs {
			groups[sink] = id
		}
		desc.Edges = append(desc.Edges, Edge{
			From:          append([]string(nil), e.LHS...),
			To:            append([]string(nil), e.RHS...),
			Label:         e.Label,
			Recovery:      e.Recovery(),
			Hidden:        e.Hidden(),
			GroupIDs:      groups,
			UniqueGroupID: e.UniqueGroupID,
		})
	}

	return desc
}
