package spec

import (
	"fmt"
	"unicode"
)

// Built-in relation markers. The standard marker carries no label; the
// recovery marker labels the edge as a recovery method.
const (
	StandardMarker = '-'
	RecoveryMarker = '='

	// RecoveryLabel is the canonical label of recovery edges.
	RecoveryLabel = "rec"
)

// MacroTable maps relation marker symbols to canonical edge labels.
// It is seeded with the built-in standard and recovery markers; user-defined
// markers are registered inline from the specification text and must be
// declared before first use.
type MacroTable struct {
	subs map[rune]string
}

// NewMacroTable creates a macro table seeded with the built-in markers.
func NewMacroTable() *MacroTable {
	return &MacroTable{
		subs: map[rune]string{
			StandardMarker: "",
			RecoveryMarker: RecoveryLabel,
		},
	}
}

// Define registers a user macro mapping symbol to an edge label. The symbol
// must be a single non-alphanumeric character and may not collide with the
// arrow syntax characters.
func (t *MacroTable) Define(symbol rune, label string) error {
	if unicode.IsLetter(symbol) || unicode.IsDigit(symbol) {
		return fmt.Errorf("macro symbol %q must not be alphanumeric", symbol)
	}
	switch symbol {
	case StandardMarker, RecoveryMarker, '>':
		return fmt.Errorf("macro symbol %q collides with arrow syntax", symbol)
	}
	if label == "" {
		return fmt.Errorf("macro %q: substitution label is empty", symbol)
	}
	t.subs[symbol] = label
	return nil
}

// Resolve looks up the canonical label for a marker symbol. Lookup is an
// exact, case-sensitive match.
func (t *MacroTable) Resolve(symbol rune) (string, bool) {
	label, ok := t.subs[symbol]
	return label, ok
}

// IsDefined reports whether symbol is a known marker.
func (t *MacroTable) IsDefined(symbol rune) bool {
	_, ok := t.subs[symbol]
	return ok
}
