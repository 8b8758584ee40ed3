package spec

// StatementKind discriminates the statement forms of the specification text.
type StatementKind int

const (
	// StatementTypeDecl declares one or more vertices under a type tag:
	// "type: v1, v2"
	StatementTypeDecl StatementKind = iota
	// StatementRelation links a conjunction of source vertices to one or
	// more target vertices: "a, b -> c, d"
	StatementRelation
	// StatementAttribute sets a style attribute on a list of vertices:
	// "key=value: v1, v2" or "v1, v2: key=value" or "* v1, v2: description"
	StatementAttribute
	// StatementMacro defines a relation marker alias: "@~:fun"
	StatementMacro
)

// String returns a human-readable name for the statement kind.
func (k StatementKind) String() string {
	switch k {
	case StatementTypeDecl:
		return "type declaration"
	case StatementRelation:
		return "relation"
	case StatementAttribute:
		return "attribute"
	case StatementMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// Statement is one parsed line of specification text. Only the fields
// relevant to Kind are populated.
type Statement struct {
	Kind StatementKind
	Line int

	// Type declaration
	TypeName string
	Vertices []string

	// Relation
	LHS         []string
	RHS         []string
	Label       string
	Description string

	// Attribute
	Key   string
	Value string

	// Macro
	Symbol       rune
	Substitution string
}
