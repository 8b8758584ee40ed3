package graph

import (
	"errors"
	"testing"

	"github.com/agraph-dev/agraph/pkg/spec"
)

// build parses and builds a graph, failing the test on any error.
func build(t *testing.T, input string) *Graph {
	t.Helper()
	statements, err := spec.NewParser("test", nil).Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	g, err := NewBuilder("test", nil).Build(statements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

// buildErr parses and builds expecting a build error.
func buildErr(t *testing.T, input string) error {
	t.Helper()
	statements, err := spec.NewParser("test", nil).Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, err = NewBuilder("test", nil).Build(statements)
	if err == nil {
		t.Fatal("Expected a build error")
	}
	return err
}

func TestBuildDeclaresVertices(t *testing.T) {
	g := build(t, "password: Pwd_mail\nservice: Mail, Backup")

	if g.VertexCount() != 3 {
		t.Fatalf("Expected 3 vertices, got %d", g.VertexCount())
	}

	vertices := g.Vertices()
	names := []string{"Pwd_mail", "Mail", "Backup"}
	types := []string{"password", "service", "service"}
	for i, v := range vertices {
		if v.Name != names[i] {
			t.Errorf("Vertex %d: expected %q, got %q", i, names[i], v.Name)
		}
		if v.Type != types[i] {
			t.Errorf("Vertex %q: expected type %q, got %q", v.Name, types[i], v.Type)
		}
	}
}

func TestBuildDeclareBeforeUse(t *testing.T) {
	// B is declared after the relation that references it. Statement order
	// is strict, so this must fail even though B appears later.
	err := buildErr(t, "a: A\nA -> B\nb: B")

	if !errors.Is(err, ErrUndeclaredVertex) {
		t.Fatalf("Expected ErrUndeclaredVertex, got %v", err)
	}

	var berr *BuildError
	if !errors.As(err, &berr) {
		t.Fatalf("Expected a BuildError, got %T", err)
	}
	if berr.Line != 2 || berr.Vertex != "B" {
		t.Errorf("Unexpected error location: line %d, vertex %q", berr.Line, berr.Vertex)
	}
}

func TestBuildTypeRedeclaration(t *testing.T) {
	// Same type again is tolerated.
	g := build(t, "a: A\na: A")
	if g.VertexCount() != 1 {
		t.Errorf("Expected 1 vertex, got %d", g.VertexCount())
	}

	// A different type is not.
	err := buildErr(t, "a: A\nb: A")
	if !errors.Is(err, ErrDuplicateType) {
		t.Errorf("Expected ErrDuplicateType, got %v", err)
	}
}

func TestBuildPreservesEdgeMultiplicity(t *testing.T) {
	g := build(t, "a: A, B\nA -> B\nA -> B")

	if g.EdgeCount() != 2 {
		t.Fatalf("Expected 2 edges, got %d", g.EdgeCount())
	}

	first, second := g.Edges()[0], g.Edges()[1]
	if first.ID == second.ID {
		t.Error("Identical relations must keep distinct identities")
	}
	if first.GroupIDs["B"] != 0 || second.GroupIDs["B"] != 1 {
		t.Errorf("Unexpected group ids: %d and %d", first.GroupIDs["B"], second.GroupIDs["B"])
	}
	if first.UniqueGroupID == second.UniqueGroupID {
		t.Error("Unique group ids must differ per relation")
	}
	if len(g.Incoming("B")) != 2 {
		t.Errorf("Expected 2 incoming edges for B, got %d", len(g.Incoming("B")))
	}
}

func TestBuildPerSinkGroupIDs(t *testing.T) {
	g := build(t, "a: A, B, C\nA -> B\nA -> C\nB -> C")

	edges := g.Edges()
	if edges[0].GroupIDs["B"] != 0 {
		t.Errorf("Expected group 0 for B, got %d", edges[0].GroupIDs["B"])
	}
	if edges[1].GroupIDs["C"] != 0 || edges[2].GroupIDs["C"] != 1 {
		t.Errorf("Unexpected C groups: %d and %d",
			edges[1].GroupIDs["C"], edges[2].GroupIDs["C"])
	}
}

func TestBuildRelationDescription(t *testing.T) {
	g := build(t, "a: A, B, C\nA -> B, C : unlocks both")

	for _, name := range []string{"B", "C"} {
		if got := g.Vertex(name).Attributes["description"]; got != "unlocks both" {
			t.Errorf("Vertex %q: expected description, got %q", name, got)
		}
	}
	if _, ok := g.Vertex("A").Attributes["description"]; ok {
		t.Error("Description must not apply to source vertices")
	}
}

func TestBuildAttributeStatements(t *testing.T) {
	g := build(t, "a: A, B\ncolor=red: A\nB: shape=oval")

	if got := g.Vertex("A").Attributes["color"]; got != "red" {
		t.Errorf("Expected color=red on A, got %q", got)
	}
	if got := g.Vertex("B").Attributes["shape"]; got != "oval" {
		t.Errorf("Expected shape=oval on B, got %q", got)
	}

	err := buildErr(t, "a: A\ncolor=red: Missing")
	if !errors.Is(err, ErrUndeclaredVertex) {
		t.Errorf("Expected ErrUndeclaredVertex, got %v", err)
	}
}

func TestVertexLocked(t *testing.T) {
	g := build(t, "a: Locked_safe, My_LOCKED_box, Open_box")

	if !g.Vertex("Locked_safe").Locked() {
		t.Error("Locked_safe should be locked")
	}
	if !g.Vertex("My_LOCKED_box").Locked() {
		t.Error("My_LOCKED_box should be locked")
	}
	if g.Vertex("Open_box").Locked() {
		t.Error("Open_box should not be locked")
	}
}

func TestEdgeLabelPredicates(t *testing.T) {
	g := build(t, "a: A, B, C\nA => B\nA =invis> C\nA -> C")

	edges := g.Edges()
	if !edges[0].Recovery() || edges[0].Hidden() {
		t.Errorf("Edge %q: expected recovery only", edges[0])
	}
	if !edges[1].Recovery() || !edges[1].Hidden() {
		t.Errorf("Edge %q: expected recovery and hidden", edges[1])
	}
	if edges[2].Recovery() || edges[2].Conjunction() {
		t.Errorf("Edge %q: expected a plain edge", edges[2])
	}
}

func TestSortByDeclaration(t *testing.T) {
	g := build(t, "a: C, A, B")

	names := []string{"B", "Zz", "A", "Aa", "C"}
	g.SortByDeclaration(names)

	want := []string{"C", "A", "B", "Aa", "Zz"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, names)
		}
	}
}
