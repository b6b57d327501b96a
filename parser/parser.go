package parser

import (
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nuogo/ast"
	"github.com/pontaoski/nuogo/errors"
	"github.com/pontaoski/nuogo/lexer"
	"github.com/pontaoski/nuogo/types"
)

// Parser is a recursive descent parser with a single token of lookahead.
type Parser struct {
	l   *lexer.Lexer
	tok types.Token
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// ParseString parses a whole source file.
func ParseString(source string, filename string) (*ast.Program, error) {
	return NewParser(lexer.NewLexer(source, filename)).Parse()
}

// Parse consumes the token stream and builds a Program, stopping at the
// first lexical or syntax error.
func (p *Parser) Parse() (*ast.Program, error) {
	prog, err := p.parseProgram()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return prog, nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	prog := &ast.Program{}
	for !p.peekIs(types.END) {
		switch {
		case p.peekIs(types.NEWLINE):
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.peekIs(types.FN):
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)
		default:
			return nil, errors.ExpectedOneOfKindGotKind{
				Expected: []types.TokenKind{types.NEWLINE, types.FN},
				Got:      p.tok.Kind,
				Location: p.tok.Location,
			}
		}
	}

	return prog, nil
}

func (p *Parser) peekIs(k ...types.TokenKind) bool {
	for _, kind := range k {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) advance() error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// lexExpecting consumes the current token if it is of kind k and returns it.
func (p *Parser) lexExpecting(k types.TokenKind) (types.Token, error) {
	if !p.peekIs(k) {
		return types.Token{}, errors.ExpectedKindGotKind{
			Expected: k,
			Got:      p.tok.Kind,
			Location: p.tok.Location,
		}
	}

	tok := p.tok
	return tok, p.advance()
}

func (p *Parser) unexpected(context string) error {
	return errors.UnexpectedToken{
		Got:      p.tok.Kind,
		Context:  context,
		Location: p.tok.Location,
	}
}

func (p *Parser) parseFunction() (*ast.FunctionDeclaration, error) {
	if _, err := p.lexExpecting(types.FN); err != nil {
		return nil, err
	}

	name, err := p.lexExpecting(types.IDENT)
	if err != nil {
		return nil, err
	}

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	// no annotation means the function returns nothing
	var returns ast.Type = ast.Void
	if p.peekIs(types.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if returns, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Identifier: ast.NewID(name.Lexeme, name.Location.From),
		Parameters: params,
		Returns:    returns,
		Body:       body,
	}, nil
}

func (p *Parser) parseParameters() ([]ast.Parameter, error) {
	if _, err := p.lexExpecting(types.LPAREN); err != nil {
		return nil, err
	}

	if p.peekIs(types.RPAREN) {
		return nil, p.advance()
	}

	var params []ast.Parameter
	for {
		name, err := p.lexExpecting(types.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.lexExpecting(types.COLON); err != nil {
			return nil, err
		}
		kind, err := p.parseType()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.Parameter{
			Identifier: ast.NewID(name.Lexeme, name.Location.From),
			Kind:       kind,
		})

		if p.peekIs(types.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.lexExpecting(types.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseType only knows int. List types exist in the tree but have no syntax
// yet.
func (p *Parser) parseType() (ast.Type, error) {
	if p.peekIs(types.INT) {
		return ast.Int, p.advance()
	}

	return nil, p.unexpected("type")
}

// parseBlock accepts an empty block; rejecting it is the analyzer's job.
func (p *Parser) parseBlock() (ast.StatementBlock, error) {
	open, err := p.lexExpecting(types.LBRACE)
	if err != nil {
		return ast.StatementBlock{}, err
	}

	block := ast.StatementBlock{Pos: open.Location.From}
	for {
		switch {
		case p.peekIs(types.NEWLINE):
			if err := p.advance(); err != nil {
				return block, err
			}
		case p.peekIs(types.RBRACE):
			return block, p.advance()
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return block, err
			}
			block.Statements = append(block.Statements, stmt)
		}
	}
}

// parseStatement parses one statement and its terminating newline. The last
// statement of a block may be closed by the brace instead.
func (p *Parser) parseStatement() (ast.Statement, error) {
	var stmt ast.Statement
	var err error

	switch {
	case p.peekIs(types.IDENT):
		stmt, err = p.parseIdentifierStatement()
	case p.peekIs(types.RETURN):
		stmt, err = p.parseReturn()
	default:
		return nil, p.unexpected("statement block")
	}
	if err != nil {
		return nil, err
	}

	if !p.peekIs(types.RBRACE) {
		if _, err := p.lexExpecting(types.NEWLINE); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseIdentifierStatement() (ast.Statement, error) {
	name, err := p.lexExpecting(types.IDENT)
	if err != nil {
		return nil, err
	}

	if !p.peekIs(types.LPAREN) {
		return nil, p.unexpected("identifier statement")
	}

	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionCall{
		Identifier: ast.NewID(name.Lexeme, name.Location.From),
		Arguments:  args,
	}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok, err := p.lexExpecting(types.RETURN)
	if err != nil {
		return nil, err
	}

	ret := &ast.Return{Pos: tok.Location.From}
	if p.peekIs(types.NEWLINE, types.RBRACE) {
		return ret, nil
	}

	if ret.Expression, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseArguments parses at most one argument. A comma after it is consumed,
// but whatever follows must then be the closing parenthesis.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.lexExpecting(types.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Expression
	if p.peekIs(types.IDENT, types.STRING, types.NUMBER) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, expr)

		if p.peekIs(types.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.lexExpecting(types.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	tok := p.tok

	switch tok.Kind {
	case types.IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}

		id := ast.NewID(tok.Lexeme, tok.Location.From)
		if !p.peekIs(types.LPAREN) {
			return &ast.VariableReference{Identifier: id}, nil
		}

		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Identifier: id, Arguments: args}, nil
	case types.STRING:
		return &ast.StringLiteral{Value: tok.Lexeme, Pos: tok.Location.From}, p.advance()
	case types.NUMBER:
		return &ast.NumberLiteral{Value: tok.Lexeme, Pos: tok.Location.From}, p.advance()
	}

	return nil, p.unexpected("expression")
}
