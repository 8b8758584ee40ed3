package query

import (
	"fmt"
	"strings"
)

// Expr is a node of a parsed query/transform expression.
type Expr interface {
	exprNode()
	String() string
}

// Call is a function invocation over graph-derived sets.
type Call struct {
	Name string
	Args []Expr
	Pos  int
}

func (*Call) exprNode() {}

// String reconstructs the call in source form.
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Literal is a leaf argument: a vertex name, a bare word, or a quoted string.
type Literal struct {
	Text   string
	Quoted bool
	Pos    int
}

func (*Literal) exprNode() {}

// String reconstructs the literal in source form.
func (l *Literal) String() string {
	if l.Quoted {
		return `"` + l.Text + `"`
	}
	return l.Text
}

// Parser builds an expression AST from tokens
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// ParseExpression parses a query/transform expression string. The top level
// of every expression is a function call.
func ParseExpression(input string) (*Call, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{input: input, tokens: tokens}

	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenEOF {
		return nil, p.errorf("unexpected %q after expression", p.peek().Value)
	}
	return call, nil
}

// parseCall parses "identifier ( arg [, arg]* )".
func (p *Parser) parseCall() (*Call, error) {
	name := p.peek()
	if name.Type != TokenIdent {
		return nil, p.errorf("expected a function name")
	}
	p.advance()

	if p.peek().Type != TokenLeftParen {
		return nil, p.errorf("expected '(' after %q", name.Value)
	}
	p.advance()

	call := &Call{Name: name.Value, Pos: name.Pos}

	if p.peek().Type == TokenRightParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		switch p.peek().Type {
		case TokenComma:
			p.advance()
		case TokenRightParen:
			p.advance()
			return call, nil
		default:
			return nil, p.errorf("expected ',' or ')' in argument list of %q", name.Value)
		}
	}
}

// parseArg parses a single argument: a nested call, a quoted string, or a
// bare literal (vertex name, key, value or color).
func (p *Parser) parseArg() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenIdent:
		if p.peekAhead(1).Type == TokenLeftParen {
			return p.parseCall()
		}
		p.advance()
		return &Literal{Text: tok.Value, Pos: tok.Pos}, nil
	case TokenString:
		p.advance()
		return &Literal{Text: tok.Value, Quoted: true, Pos: tok.Pos}, nil
	default:
		return nil, p.errorf("expected an argument")
	}
}

func (p *Parser) peek() Token {
	return p.peekAhead(0)
}

func (p *Parser) peekAhead(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) errorf(format string, args ...any) *QueryError {
	return &QueryError{
		Expression: p.input,
		Pos:        p.peek().Pos,
		Message:    fmt.Sprintf(format, args...),
		Cause:      ErrSyntax,
	}
}
