package export

import (
	"strings"
	"testing"

	"github.com/agraph-dev/agraph/pkg/graph"
	"github.com/agraph-dev/agraph/pkg/spec"
)

const exportFixture = `
password: Pwd_mail, Pin
service: Mail
object: Locked_card

Pwd_mail -> Mail : opens the mailbox
Locked_card, Pin => Mail
Pwd_mail -invis> Pin
color=red: Mail
`

func buildGraph(t *testing.T, input string) *graph.Graph {
	t.Helper()
	statements, err := spec.NewParser("test", nil).Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	g, err := graph.NewBuilder("test", nil).Build(statements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestFlattenNodes(t *testing.T) {
	g := buildGraph(t, exportFixture)
	desc := Flatten(g, Options{})

	if len(desc.Nodes) != 4 {
		t.Fatalf("Expected 4 nodes, got %d", len(desc.Nodes))
	}

	first := desc.Nodes[0]
	if first.Name != "Pwd_mail" || first.Display != "Pwd_mail" || first.Type != "password" {
		t.Errorf("Unexpected node: %+v", first)
	}

	var locked *Node
	for i := range desc.Nodes {
		if desc.Nodes[i].Name == "Locked_card" {
			locked = &desc.Nodes[i]
		}
	}
	if locked == nil || !locked.Locked {
		t.Error("Locked_card should carry the locked rendering hint")
	}
}

func TestFlattenHumanReadable(t *testing.T) {
	g := buildGraph(t, exportFixture)
	desc := Flatten(g, Options{HumanReadable: true})

	if desc.Nodes[0].Display != "Pwd mail" {
		t.Errorf("Expected display %q, got %q", "Pwd mail", desc.Nodes[0].Display)
	}
	if desc.Nodes[0].Name != "Pwd_mail" {
		t.Errorf("Underlying name must keep its underscores, got %q", desc.Nodes[0].Name)
	}
}

func TestFlattenEdges(t *testing.T) {
	g := buildGraph(t, exportFixture)
	desc := Flatten(g, Options{})

	if len(desc.Edges) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(desc.Edges))
	}

	recovery := desc.Edges[1]
	if !recovery.Recovery || len(recovery.From) != 2 {
		t.Errorf("Unexpected recovery edge: %+v", recovery)
	}
	if desc.Edges[2].Hidden == false {
		t.Errorf("Expected a hidden edge: %+v", desc.Edges[2])
	}
}

func TestFlattenCopiesAttributes(t *testing.T) {
	g := buildGraph(t, exportFixture)
	desc := Flatten(g, Options{})

	for _, node := range desc.Nodes {
		if node.Name == "Mail" {
			node.Attributes["color"] = "green"
		}
	}
	if g.Vertex("Mail").Attributes["color"] != "red" {
		t.Error("Flatten must deep-copy attribute maps")
	}
}

func TestDOTOutput(t *testing.T) {
	g := buildGraph(t, exportFixture)
	dot := DOT(Flatten(g, Options{}), nil)

	for _, want := range []string{
		"digraph account_access {",
		`rankdir="BT"`,
		`shape="box"`,
		`"Pwd_mail" -> "Mail"`,
		`tooltip="opens the mailbox"`,
		`color="red"`,
		`style="dashed"`,
		`style="invis"`,
		"samehead=",
		`style="diagonals"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestDOTThemeOverrides(t *testing.T) {
	theme, err := LoadTheme([]byte(`
name: night
graph:
  bgcolor: black
node:
  fontcolor: white
types:
  password:
    shape: oval
recovery:
  color: orange
`))
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}

	g := buildGraph(t, exportFixture)
	dot := DOT(Flatten(g, Options{}), theme)

	for _, want := range []string{
		`bgcolor="black"`,
		`fontcolor="white"`,
		`shape="oval"`,
		`color="orange"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestLoadThemeRequiresName(t *testing.T) {
	if _, err := LoadTheme([]byte("graph:\n  bgcolor: black\n")); err == nil {
		t.Error("Expected an error for a nameless theme")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("My_mail_account", true); got != "My mail account" {
		t.Errorf("Unexpected display name %q", got)
	}
	if got := DisplayName("My_mail_account", false); got != "My_mail_account" {
		t.Errorf("Display name must be untouched, got %q", got)
	}
}
