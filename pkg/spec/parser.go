package spec

import (
	"fmt"
	"strings"

	"github.com/agraph-dev/agraph/pkg/logging"
)

// Parser turns specification text into an ordered statement sequence.
// Macro definitions are applied as they are encountered, so a marker is
// usable on any statement after the line that defines it.
type Parser struct {
	source string
	macros *MacroTable
	logger logging.Logger
}

// NewParser creates a parser for the named input source. The source label is
// only used in error messages.
func NewParser(source string, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Parser{
		source: source,
		macros: NewMacroTable(),
		logger: logger.With(logging.Component("parser"), logging.Source(source)),
	}
}

// Macros returns the macro table, including any user-defined markers that
// were registered while parsing.
func (p *Parser) Macros() *MacroTable {
	return p.macros
}

// Parse parses the input into statements. Every statement is attempted even
// after a failure so that all syntax errors can be reported in one pass; if
// any statement failed, the full ErrorList is returned and the statements
// must not be handed to the graph builder.
func (p *Parser) Parse(input string) ([]Statement, error) {
	raws := splitStatements(input)

	statements := make([]Statement, 0, len(raws))
	var errs ErrorList

	for _, raw := range raws {
		stmt, err := p.parseStatement(raw)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				errs = append(errs, pe)
			} else {
				errs = append(errs, &ParseError{
					Source: p.source, Line: raw.line, Column: raw.column,
					Message: err.Error(), Cause: ErrBadSyntax,
				})
			}
			continue
		}
		statements = append(statements, stmt)
	}

	p.logger.Debug("parsed specification text",
		logging.Count(len(statements)),
		logging.Int("errors", len(errs)))

	if len(errs) > 0 {
		return nil, errs
	}
	return statements, nil
}

// stmtScanner walks a single raw statement rune by rune.
type stmtScanner struct {
	parser *Parser
	text   string
	line   int
	base   int // column of text[0] in the original line
	pos    int
}

func (p *Parser) parseStatement(raw rawStatement) (Statement, error) {
	s := &stmtScanner{parser: p, text: raw.text, line: raw.line, base: raw.column}

	switch {
	case s.peek() == '@':
		return s.parseMacro()
	case s.peek() == '*':
		return s.parseDescriptionShorthand()
	default:
		return s.parseListStatement()
	}
}

// parseMacro parses "@symbol:label".
func (s *stmtScanner) parseMacro() (Statement, error) {
	s.next() // consume '@'

	symbol := s.next()
	if symbol == 0 {
		return Statement{}, s.errorf(ErrBadMacro, "macro symbol expected after '@'")
	}
	if !s.expect(':') {
		return Statement{}, s.errorf(ErrBadMacro, "expected ':' after macro symbol %q", symbol)
	}

	label := s.readLabel()
	if label == "" || !s.atEnd() {
		return Statement{}, s.errorf(ErrBadMacro, "invalid substitution label for macro %q", symbol)
	}

	if err := s.parser.macros.Define(symbol, label); err != nil {
		return Statement{}, s.errorf(ErrBadMacro, "%v", err)
	}

	return Statement{
		Kind:         StatementMacro,
		Line:         s.line,
		Symbol:       symbol,
		Substitution: label,
	}, nil
}

// parseDescriptionShorthand parses "* v1, v2: description".
func (s *stmtScanner) parseDescriptionShorthand() (Statement, error) {
	s.next() // consume '*'
	s.skipSpaces()

	vertices, err := s.readVertexList()
	if err != nil {
		return Statement{}, err
	}
	s.skipSpaces()
	if !s.expect(':') {
		return Statement{}, s.errorf(ErrBadSyntax, "expected ':' before description")
	}

	value := strings.TrimSpace(s.rest())
	if value == "" {
		return Statement{}, s.errorf(ErrBadSyntax, "description is empty")
	}

	return Statement{
		Kind:     StatementAttribute,
		Line:     s.line,
		Key:      "description",
		Value:    value,
		Vertices: vertices,
	}, nil
}

// parseListStatement handles the forms that begin with an identifier:
// type declarations, relations and the two key=value attribute forms.
func (s *stmtScanner) parseListStatement() (Statement, error) {
	first, err := s.readIdent()
	if err != nil {
		return Statement{}, err
	}
	s.skipSpaces()

	// "key=value: v1, v2". But "a => b" is a recovery relation, so an
	// '=' that scans as an arrow is left for parseRelationTail.
	if s.peek() == '=' && !s.looksLikeArrow() {
		s.next()
		value := strings.TrimSpace(s.readUntil(':'))
		if value == "" {
			return Statement{}, s.errorf(ErrBadSyntax, "attribute %q has an empty value", first)
		}
		if !s.expect(':') {
			return Statement{}, s.errorf(ErrBadSyntax, "expected ':' after attribute value")
		}
		s.skipSpaces()
		vertices, err := s.readVertexList()
		if err != nil {
			return Statement{}, err
		}
		if !s.atEnd() {
			return Statement{}, s.errorf(ErrBadSyntax, "unexpected trailing input after vertex list")
		}
		return Statement{
			Kind: StatementAttribute, Line: s.line,
			Key: first, Value: value, Vertices: vertices,
		}, nil
	}

	// Gather the rest of the leading vertex list.
	vertices := []string{first}
	for s.peek() == ',' {
		s.next()
		s.skipSpaces()
		name, err := s.readIdent()
		if err != nil {
			return Statement{}, err
		}
		vertices = append(vertices, name)
		s.skipSpaces()
	}

	switch {
	case s.peek() == ':':
		s.next()
		return s.parseColonTail(vertices)
	case s.atEnd():
		return Statement{}, s.errorf(ErrBadSyntax, "expected ':' or a relation arrow")
	default:
		return s.parseRelationTail(vertices)
	}
}

// parseColonTail disambiguates "type: v1, v2" from "v1, v2: key=value" by
// the presence of '=' after the colon.
func (s *stmtScanner) parseColonTail(lhs []string) (Statement, error) {
	s.skipSpaces()

	// Non-consuming lookahead; rest() would advance the scanner.
	if strings.ContainsRune(s.text[s.pos:], '=') {
		key, err := s.readIdent()
		if err != nil {
			return Statement{}, err
		}
		s.skipSpaces()
		if !s.expect('=') {
			return Statement{}, s.errorf(ErrBadSyntax, "expected '=' after attribute key %q", key)
		}
		value := strings.TrimSpace(s.rest())
		if value == "" {
			return Statement{}, s.errorf(ErrBadSyntax, "attribute %q has an empty value", key)
		}
		return Statement{
			Kind: StatementAttribute, Line: s.line,
			Key: key, Value: value, Vertices: lhs,
		}, nil
	}

	if len(lhs) != 1 {
		return Statement{}, s.errorf(ErrBadSyntax, "a type declaration names exactly one type")
	}
	vertices, err := s.readVertexList()
	if err != nil {
		return Statement{}, err
	}
	if !s.atEnd() {
		return Statement{}, s.errorf(ErrBadSyntax, "unexpected trailing input after vertex list")
	}
	return Statement{
		Kind: StatementTypeDecl, Line: s.line,
		TypeName: lhs[0], Vertices: vertices,
	}, nil
}

// parseRelationTail parses "<arrow> rhs1, rhs2 [: description]" after the
// LHS vertex list has been consumed.
func (s *stmtScanner) parseRelationTail(lhs []string) (Statement, error) {
	label, err := s.readArrow()
	if err != nil {
		return Statement{}, err
	}
	s.skipSpaces()

	rhs, err := s.readVertexList()
	if err != nil {
		return Statement{}, err
	}
	s.skipSpaces()

	description := ""
	if s.peek() == ':' {
		s.next()
		description = strings.TrimSpace(s.rest())
		if description == "" {
			return Statement{}, s.errorf(ErrBadSyntax, "relation description is empty")
		}
	} else if !s.atEnd() {
		return Statement{}, s.errorf(ErrBadSyntax, "unexpected trailing input after relation")
	}

	return Statement{
		Kind: StatementRelation, Line: s.line,
		LHS: lhs, RHS: rhs, Label: label, Description: description,
	}, nil
}

// readArrow consumes a relation arrow and resolves its marker through the
// macro table, returning the canonical edge label.
//
// The marker is the first rune: '-' is the standard marker, '=' is the
// recovery marker and anything else must be a user-defined macro symbol.
// Filler and label characters may follow before the closing '>': "--->",
// "-rec>", "=>", "=sms>".
func (s *stmtScanner) readArrow() (string, error) {
	marker := s.next()

	labelRaw := s.readLabel()
	if !s.expect('>') {
		return "", s.errorf(ErrBadSyntax, "expected '>' to close relation arrow")
	}

	// Strip the arrow filler characters from the explicit label.
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == '=' {
			return -1
		}
		return r
	}, labelRaw)

	switch marker {
	case StandardMarker:
		return cleaned, nil
	case RecoveryMarker:
		if cleaned == "" {
			return RecoveryLabel, nil
		}
		// An explicit label on a recovery arrow keeps the recovery
		// label and appends the extra label after a comma.
		return RecoveryLabel + "," + cleaned, nil
	default:
		label, ok := s.parser.macros.Resolve(marker)
		if !ok {
			return "", s.errorf(ErrUnknownMarker, "unknown relation marker %q", marker)
		}
		return label, nil
	}
}

// looksLikeArrow reports whether the input at the current position scans as
// a relation arrow (a marker, optional label characters, then '>').
func (s *stmtScanner) looksLikeArrow() bool {
	i := s.pos + 1
	for i < len(s.text) && isLabelRune(s.text[i]) {
		i++
	}
	return i < len(s.text) && s.text[i] == '>'
}

// ---- low-level scanning helpers ----

func isIdentStart(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentRune(r byte) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '_'
}

func isLabelRune(r byte) bool {
	return isIdentRune(r) || r == '-' || r == '='
}

func (s *stmtScanner) atEnd() bool {
	s.skipSpaces()
	return s.pos >= len(s.text)
}

func (s *stmtScanner) peek() byte {
	if s.pos >= len(s.text) {
		return 0
	}
	return s.text[s.pos]
}

func (s *stmtScanner) next() rune {
	if s.pos >= len(s.text) {
		return 0
	}
	r := rune(s.text[s.pos])
	s.pos++
	return r
}

func (s *stmtScanner) expect(r byte) bool {
	s.skipSpaces()
	if s.peek() != r {
		return false
	}
	s.pos++
	return true
}

func (s *stmtScanner) skipSpaces() {
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t') {
		s.pos++
	}
}

func (s *stmtScanner) rest() string {
	defer func() { s.pos = len(s.text) }()
	return s.text[s.pos:]
}

// readUntil consumes and returns everything up to (not including) the given
// delimiter or the end of the statement.
func (s *stmtScanner) readUntil(delim byte) string {
	start := s.pos
	for s.pos < len(s.text) && s.text[s.pos] != delim {
		s.pos++
	}
	return s.text[start:s.pos]
}

// readIdent consumes a vertex or key name: a letter followed by letters,
// digits or underscores.
func (s *stmtScanner) readIdent() (string, error) {
	s.skipSpaces()
	start := s.pos
	if s.pos >= len(s.text) || !isIdentStart(s.text[s.pos]) {
		return "", s.errorf(ErrBadSyntax, "expected a name")
	}
	for s.pos < len(s.text) && isIdentRune(s.text[s.pos]) {
		s.pos++
	}
	return s.text[start:s.pos], nil
}

// readLabel consumes edge-label characters (letters, digits, '-', '=').
func (s *stmtScanner) readLabel() string {
	start := s.pos
	for s.pos < len(s.text) && isLabelRune(s.text[s.pos]) {
		s.pos++
	}
	return s.text[start:s.pos]
}

// readVertexList consumes "name [, name]*".
func (s *stmtScanner) readVertexList() ([]string, error) {
	var names []string
	for {
		name, err := s.readIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		s.skipSpaces()
		if s.peek() != ',' {
			return names, nil
		}
		s.next()
	}
}

func (s *stmtScanner) errorf(cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Source:  s.parser.source,
		Line:    s.line,
		Column:  s.base + s.pos,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
