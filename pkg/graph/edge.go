package graph

import (
	"strings"

	"github.com/google/uuid"
)

// Edge label conventions carried over from the specification text format.
const (
	// RecoveryLabel marks an edge as a recovery method.
	RecoveryLabel = "rec"
	// HiddenLabel marks an edge that should not be rendered.
	HiddenLabel = "invis"
)

// Edge is a single access relation: possessing every vertex in LHS grants
// access to each vertex in RHS independently. Every authored relation line
// becomes its own Edge; identical relations are never deduplicated, so the
// ID preserves multiplicity for rendering and predecessor counting.
type Edge struct {
	// ID uniquely identifies this authored relation.
	ID uuid.UUID
	// LHS is the ordered, non-empty conjunction of required vertices.
	LHS []string
	// RHS is the non-empty set of vertices unlocked by the conjunction.
	RHS []string
	// Label identifies the kind of relation: "" for standard access,
	// "rec" for recovery, or a macro-defined label. Compound labels are
	// comma-separated.
	Label string
	// GroupIDs assigns, per RHS vertex, the index of this edge among that
	// vertex's incoming access methods.
	GroupIDs map[string]int
	// UniqueGroupID numbers the conjunction uniquely across the graph.
	UniqueGroupID int
	// Line is the statement's line in the specification text.
	Line int
}

// Conjunction reports whether the edge requires more than one source vertex.
func (e *Edge) Conjunction() bool {
	return len(e.LHS) > 1
}

// Recovery reports whether the edge is labelled as a recovery method.
func (e *Edge) Recovery() bool {
	return hasLabelPart(e.Label, RecoveryLabel)
}

// Hidden reports whether the edge is labelled as hidden for rendering.
func (e *Edge) Hidden() bool {
	return hasLabelPart(e.Label, HiddenLabel)
}

// hasLabelPart reports whether part occurs in a comma-separated label.
func hasLabelPart(label, part string) bool {
	if label == "" {
		return false
	}
	for _, p := range strings.Split(label, ",") {
		if p == part {
			return true
		}
	}
	return false
}

// String returns a compact human-readable form of the edge.
func (e *Edge) String() string {
	arrow := " -> "
	if e.Recovery() {
		arrow = " => "
	}
	return strings.Join(e.LHS, ", ") + arrow + strings.Join(e.RHS, ", ")
}
