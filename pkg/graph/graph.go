package graph

import "sort"

// Graph owns the declared vertices and the authored access relations of one
// invocation. It is structurally immutable once built; only per-vertex style
// attributes change afterwards, and only through transform expressions.
type Graph struct {
	vertices map[string]*Vertex
	order    []string // vertex names in declaration order
	edges    []*Edge  // declaration order
	incoming map[string][]*Edge
}

// newGraph creates an empty graph. Graphs are only constructed through the
// Builder so that the declare-before-use invariants hold.
func newGraph() *Graph {
	return &Graph{
		vertices: make(map[string]*Vertex),
		incoming: make(map[string][]*Edge),
	}
}

// Vertex returns the named vertex, or nil if it was never declared.
func (g *Graph) Vertex(name string) *Vertex {
	return g.vertices[name]
}

// HasVertex reports whether the named vertex was declared.
func (g *Graph) HasVertex(name string) bool {
	_, ok := g.vertices[name]
	return ok
}

// Vertices returns every declared vertex in declaration order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.vertices[name])
	}
	return out
}

// VertexCount returns the number of declared vertices.
func (g *Graph) VertexCount() int {
	return len(g.order)
}

// Edges returns every access relation in declaration order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// EdgeCount returns the number of access relations.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Incoming returns the edges whose RHS contains the named vertex, in
// declaration order. A vertex with no incoming edges is a primitive.
func (g *Graph) Incoming(name string) []*Edge {
	return g.incoming[name]
}

// SortByDeclaration orders vertex names in place by declaration order.
// Names not present in the graph sort last, alphabetically.
func (g *Graph) SortByDeclaration(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		vi, vj := g.vertices[names[i]], g.vertices[names[j]]
		switch {
		case vi == nil && vj == nil:
			return names[i] < names[j]
		case vi == nil:
			return false
		case vj == nil:
			return true
		default:
			return vi.order < vj.order
		}
	})
}

// addVertex registers a vertex under the next declaration position.
func (g *Graph) addVertex(name, vertexType string) *Vertex {
	v := &Vertex{
		Name:       name,
		Type:       vertexType,
		Attributes: make(map[string]string),
		order:      len(g.order),
	}
	g.vertices[name] = v
	g.order = append(g.order, name)
	return v
}

// addEdge appends an edge and indexes it against its RHS vertices.
func (g *Graph) addEdge(e *Edge) {
	g.edges = append(g.edges, e)
	for _, sink := range e.RHS {
		g.incoming[sink] = append(g.incoming[sink], e)
	}
}

// sortedKeys returns the keys of an attribute map in stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
