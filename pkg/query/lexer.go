package query

import "fmt"

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Identifiers and literals
	TokenIdent  // function or vertex name, or a bare literal like #ff0000
	TokenString // quoted string literal

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
)

// Token represents a lexical token of a query expression
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a query expression string
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input and returns its tokens, ending with EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipSpaces()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil
	case c == ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil
	case c == ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil
	case c == '"' || c == '\'':
		return l.lexString(c)
	case isBareRune(c):
		for l.pos < len(l.input) && isBareRune(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start}, nil
	default:
		return Token{}, &QueryError{
			Expression: l.input, Pos: start,
			Message: fmt.Sprintf("unexpected character %q", c),
			Cause:   ErrSyntax,
		}
	}
}

// lexString scans a quoted literal delimited by quote.
func (l *Lexer) lexString(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) && l.input[l.pos] != quote {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{}, &QueryError{
			Expression: l.input, Pos: start,
			Message: "unterminated string literal",
			Cause:   ErrSyntax,
		}
	}
	value := l.input[start+1 : l.pos]
	l.pos++ // closing quote
	return Token{Type: TokenString, Value: value, Pos: start}, nil
}

func (l *Lexer) skipSpaces() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// isBareRune reports whether c may appear in an unquoted identifier or
// literal. Besides name characters this admits '#' and '.' so that color
// values and dotted values can be written without quotes.
func isBareRune(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '#', c == '.', c == '-':
		return true
	default:
		return false
	}
}
