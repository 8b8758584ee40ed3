package spec

import (
	"errors"
	"testing"
)

// parseAll parses input with a fresh parser and fails the test on error.
func parseAll(t *testing.T, input string) []Statement {
	t.Helper()
	statements, err := NewParser("test", nil).Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return statements
}

// parseOne parses input expected to hold exactly one statement.
func parseOne(t *testing.T, input string) Statement {
	t.Helper()
	statements := parseAll(t, input)
	if len(statements) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(statements))
	}
	return statements[0]
}

func TestParseTypeDeclaration(t *testing.T) {
	stmt := parseOne(t, "password: Pwd_laptop, Pwd_mail")

	if stmt.Kind != StatementTypeDecl {
		t.Fatalf("Expected type declaration, got %v", stmt.Kind)
	}
	if stmt.TypeName != "password" {
		t.Errorf("Expected type %q, got %q", "password", stmt.TypeName)
	}
	if len(stmt.Vertices) != 2 || stmt.Vertices[0] != "Pwd_laptop" || stmt.Vertices[1] != "Pwd_mail" {
		t.Errorf("Unexpected vertex list: %v", stmt.Vertices)
	}
}

func TestParseStandardRelation(t *testing.T) {
	stmt := parseOne(t, "Pwd_mail -> Mail")

	if stmt.Kind != StatementRelation {
		t.Fatalf("Expected relation, got %v", stmt.Kind)
	}
	if len(stmt.LHS) != 1 || stmt.LHS[0] != "Pwd_mail" {
		t.Errorf("Unexpected LHS: %v", stmt.LHS)
	}
	if len(stmt.RHS) != 1 || stmt.RHS[0] != "Mail" {
		t.Errorf("Unexpected RHS: %v", stmt.RHS)
	}
	if stmt.Label != "" {
		t.Errorf("Expected empty label, got %q", stmt.Label)
	}
}

func TestParseConjunctionRelation(t *testing.T) {
	stmt := parseOne(t, "Card, Pin -> ATM, Statement")

	if len(stmt.LHS) != 2 || stmt.LHS[0] != "Card" || stmt.LHS[1] != "Pin" {
		t.Errorf("Unexpected LHS: %v", stmt.LHS)
	}
	if len(stmt.RHS) != 2 || stmt.RHS[0] != "ATM" || stmt.RHS[1] != "Statement" {
		t.Errorf("Unexpected RHS: %v", stmt.RHS)
	}
}

func TestParseArrowLabels(t *testing.T) {
	tests := []struct {
		input string
		label string
	}{
		{"A -> B", ""},
		{"A ---> B", ""},
		{"A -sms> B", "sms"},
		{"A --sms--> B", "sms"},
		{"A => B", "rec"},
		{"A ==> B", "rec"},
		{"A =sms> B", "rec,sms"},
	}

	for _, tc := range tests {
		stmt := parseOne(t, tc.input)
		if stmt.Kind != StatementRelation {
			t.Fatalf("%q: expected relation, got %v", tc.input, stmt.Kind)
		}
		if stmt.Label != tc.label {
			t.Errorf("%q: expected label %q, got %q", tc.input, tc.label, stmt.Label)
		}
	}
}

func TestParseMacroDefinitionAndUse(t *testing.T) {
	statements := parseAll(t, "@&:invis\nA &> B")

	if len(statements) != 2 {
		t.Fatalf("Expected 2 statements, got %d", len(statements))
	}
	if statements[0].Kind != StatementMacro || statements[0].Symbol != '&' || statements[0].Substitution != "invis" {
		t.Errorf("Unexpected macro statement: %+v", statements[0])
	}
	if statements[1].Label != "invis" {
		t.Errorf("Expected macro label %q, got %q", "invis", statements[1].Label)
	}
}

func TestParseMacroBeforeDefinition(t *testing.T) {
	_, err := NewParser("test", nil).Parse("A &> B\n@&:invis")
	if err == nil {
		t.Fatal("Expected an error for a marker used before its definition")
	}
	if !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("Expected ErrUnknownMarker, got %v", err)
	}
}

func TestParseAttributeForms(t *testing.T) {
	tests := []struct {
		input    string
		key      string
		value    string
		vertices int
	}{
		{"color=red: A, B", "color", "red", 2},
		{"A, B: color=red", "color", "red", 2},
		{"* A: the main mailbox", "description", "the main mailbox", 1},
	}

	for _, tc := range tests {
		stmt := parseOne(t, tc.input)
		if stmt.Kind != StatementAttribute {
			t.Fatalf("%q: expected attribute, got %v", tc.input, stmt.Kind)
		}
		if stmt.Key != tc.key || stmt.Value != tc.value {
			t.Errorf("%q: got %s=%s", tc.input, stmt.Key, stmt.Value)
		}
		if len(stmt.Vertices) != tc.vertices {
			t.Errorf("%q: expected %d vertices, got %d", tc.input, tc.vertices, len(stmt.Vertices))
		}
	}
}

func TestParseColonTailDisambiguation(t *testing.T) {
	// The '=' lookahead that picks the attribute branch must not move the
	// scanner; both forms read their full tail after the colon.
	statements := parseAll(t, "password: Pwd_laptop, Pwd_mail\nPwd_laptop, Pwd_mail: color=red")

	if len(statements) != 2 {
		t.Fatalf("Expected 2 statements, got %d", len(statements))
	}

	decl := statements[0]
	if decl.Kind != StatementTypeDecl || decl.TypeName != "password" {
		t.Fatalf("Unexpected declaration: %+v", decl)
	}
	if len(decl.Vertices) != 2 || decl.Vertices[0] != "Pwd_laptop" || decl.Vertices[1] != "Pwd_mail" {
		t.Errorf("Unexpected vertex list: %v", decl.Vertices)
	}

	attr := statements[1]
	if attr.Kind != StatementAttribute || attr.Key != "color" || attr.Value != "red" {
		t.Fatalf("Unexpected attribute: %+v", attr)
	}
	if len(attr.Vertices) != 2 {
		t.Errorf("Unexpected vertex list: %v", attr.Vertices)
	}
}

func TestParseRelationDescription(t *testing.T) {
	stmt := parseOne(t, "Pwd_mail -> Mail : the password unlocks the mailbox")

	if stmt.Description != "the password unlocks the mailbox" {
		t.Errorf("Unexpected description: %q", stmt.Description)
	}
}

func TestParseCommentsAndSeparators(t *testing.T) {
	input := `# a full-line comment
password: Pwd  % trailing comment
Pwd -> Mail; Mail -> Backup  // two statements on one line

`
	statements := parseAll(t, input)

	if len(statements) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(statements))
	}
	if statements[0].Line != 2 {
		t.Errorf("Expected line 2, got %d", statements[0].Line)
	}
	if statements[1].Line != 3 || statements[2].Line != 3 {
		t.Errorf("Expected both relations on line 3, got %d and %d",
			statements[1].Line, statements[2].Line)
	}
}

func TestParseReportsAllErrors(t *testing.T) {
	_, err := NewParser("test", nil).Parse("A ->\nB: ok\n-> C")
	if err == nil {
		t.Fatal("Expected parse errors")
	}

	var errs ErrorList
	if !errors.As(err, &errs) {
		t.Fatalf("Expected an ErrorList, got %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[1].Line != 3 {
		t.Errorf("Unexpected error lines: %d and %d", errs[0].Line, errs[1].Line)
	}
	if !errors.Is(err, ErrBadSyntax) {
		t.Errorf("Expected ErrBadSyntax in the list, got %v", err)
	}
}

func TestMacroTableRejectsBadSymbols(t *testing.T) {
	table := NewMacroTable()

	for _, symbol := range []rune{'a', '7', '-', '=', '>'} {
		if err := table.Define(symbol, "label"); err == nil {
			t.Errorf("Expected Define(%q) to fail", symbol)
		}
	}
	if err := table.Define('~', "fun"); err != nil {
		t.Errorf("Define('~') failed: %v", err)
	}
	if label, ok := table.Resolve('~'); !ok || label != "fun" {
		t.Errorf("Resolve('~') = %q, %v", label, ok)
	}
}
