package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Offset   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	END TokenKind = iota
	NEWLINE

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COLON
	COMMA

	PLUS
	PLUS_EQUAL
	MINUS
	MINUS_EQUAL
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	FN
	RETURN
	IF
	ELIF
	ELSE
	FOR
	INT
	FLOAT

	IDENT
	NUMBER
	STRING
)

var kindNames = map[TokenKind]string{
	END:           "END",
	NEWLINE:       "NEWLINE",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LBRACE:        "LBRACE",
	RBRACE:        "RBRACE",
	LBRACKET:      "LBRACKET",
	RBRACKET:      "RBRACKET",
	COLON:         "COLON",
	COMMA:         "COMMA",
	PLUS:          "PLUS",
	PLUS_EQUAL:    "PLUS_EQUAL",
	MINUS:         "MINUS",
	MINUS_EQUAL:   "MINUS_EQUAL",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	FN:            "FN",
	RETURN:        "RETURN",
	IF:            "IF",
	ELIF:          "ELIF",
	ELSE:          "ELSE",
	FOR:           "FOR",
	INT:           "INT",
	FLOAT:         "FLOAT",
	IDENT:         "IDENT",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps every reserved word to its token kind. Matching is exact
// and case-sensitive.
var Keywords = map[string]TokenKind{
	"fn":     FN,
	"return": RETURN,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"for":    FOR,
	"int":    INT,
	"float":  FLOAT,
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is one lexeme of the source. Lexeme is a substring of the source
// text, not a copy.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location Span
}

// String renders the token the way tokenizer fixtures expect it: the kind,
// followed by the lexeme for identifiers and literals.
func (t Token) String() string {
	switch t.Kind {
	case IDENT, NUMBER, STRING:
		return t.Kind.String() + " " + t.Lexeme
	}
	return t.Kind.String()
}
