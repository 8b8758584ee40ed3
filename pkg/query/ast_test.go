package query

import (
	"errors"
	"testing"
)

func TestParseSimpleCall(t *testing.T) {
	call, err := ParseExpression("vertices()")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if call.Name != "vertices" || len(call.Args) != 0 {
		t.Errorf("Unexpected call: %+v", call)
	}
}

func TestParseNestedCall(t *testing.T) {
	call, err := ParseExpression("akv(color, red, gives_access_to(Mail))")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if call.Name != "akv" || len(call.Args) != 3 {
		t.Fatalf("Unexpected call: %+v", call)
	}

	inner, ok := call.Args[2].(*Call)
	if !ok {
		t.Fatalf("Expected a nested call, got %T", call.Args[2])
	}
	if inner.Name != "gives_access_to" || len(inner.Args) != 1 {
		t.Errorf("Unexpected nested call: %+v", inner)
	}
}

func TestParseQuotedAndBareLiterals(t *testing.T) {
	call, err := ParseExpression(`akv(color, "#ff00ff", 'My Box')`)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}

	first := call.Args[0].(*Literal)
	if first.Text != "color" || first.Quoted {
		t.Errorf("Unexpected literal: %+v", first)
	}
	second := call.Args[1].(*Literal)
	if second.Text != "#ff00ff" || !second.Quoted {
		t.Errorf("Unexpected literal: %+v", second)
	}
	third := call.Args[2].(*Literal)
	if third.Text != "My Box" || !third.Quoted {
		t.Errorf("Unexpected literal: %+v", third)
	}
}

func TestParseBareColorLiteral(t *testing.T) {
	call, err := ParseExpression("akv(color, #ff00ff, Mail)")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if lit := call.Args[1].(*Literal); lit.Text != "#ff00ff" {
		t.Errorf("Expected #ff00ff, got %q", lit.Text)
	}
}

func TestParseStringReconstruction(t *testing.T) {
	input := `akv(color, "dark red", gives_access_to(Mail))`
	call, err := ParseExpression(input)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if call.String() != input {
		t.Errorf("Expected %q, got %q", input, call.String())
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	inputs := []string{
		"",
		"vertices",
		"vertices(",
		"vertices())",
		"vertices(,)",
		`akv(color, "unterminated`,
		"akv(color red)",
	}

	for _, input := range inputs {
		_, err := ParseExpression(input)
		if err == nil {
			t.Errorf("%q: expected a syntax error", input)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: expected ErrSyntax, got %v", input, err)
		}
	}
}
