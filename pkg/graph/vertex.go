package graph

import "strings"

// lockedKeyword marks a vertex as a locked variant of another credential or
// device. It is matched as a substring of the vertex name and only influences
// rendering hints, never access semantics.
const lockedKeyword = "locked"

// Vertex is a credential, device or account in the access graph. A vertex is
// immutable once declared except for its style attribute map, which transform
// expressions mutate after the graph is built.
type Vertex struct {
	// Name uniquely identifies the vertex. Names are case-sensitive.
	Name string
	// Type is the user-declared type tag assigned at first declaration
	// (e.g. "password", "device").
	Type string
	// Attributes holds string-keyed style attributes for rendering.
	Attributes map[string]string

	order int // declaration position, 0-based
}

// Locked reports whether the vertex name marks it as a locked variant.
// Rendering hint only; it carries no access semantics.
func (v *Vertex) Locked() bool {
	return strings.Contains(strings.ToLower(v.Name), lockedKeyword)
}

// Order returns the declaration position of the vertex.
func (v *Vertex) Order() int {
	return v.order
}

// String returns a compact human-readable form of the vertex.
func (v *Vertex) String() string {
	if len(v.Attributes) == 0 {
		return v.Name + ": " + v.Type
	}
	var sb strings.Builder
	sb.WriteString(v.Name)
	sb.WriteString(": ")
	sb.WriteString(v.Type)
	sb.WriteString(" (")
	first := true
	for _, key := range sortedKeys(v.Attributes) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(v.Attributes[key])
	}
	sb.WriteString(")")
	return sb.String()
}
