package lexer

import (
	"github.com/pontaoski/nuogo/errors"
	"github.com/pontaoski/nuogo/types"
)

// Lexer turns Nuo source text into tokens, one per call to Next. The
// source string is never copied; token lexemes slice into it.
type Lexer struct {
	source   string
	filename string

	start int
	end   int

	// newlines are insignificant while any parenthesis is open, so call
	// arguments may span lines.
	openParens int

	line      int
	lineStart int
}

func NewLexer(source string, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

var punctuation = map[byte]types.TokenKind{
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	':': types.COLON,
	',': types.COMMA,
}

// operators that have a two character form ending in '='.
var operators = map[byte][2]types.TokenKind{
	'=': {types.EQUAL, types.EQUAL_EQUAL},
	'!': {types.BANG, types.BANG_EQUAL},
	'<': {types.LESS, types.LESS_EQUAL},
	'>': {types.GREATER, types.GREATER_EQUAL},
	'+': {types.PLUS, types.PLUS_EQUAL},
	'-': {types.MINUS, types.MINUS_EQUAL},
}

func firstChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func otherChar(c byte) bool {
	return firstChar(c) || isDigit(c)
}

func (l *Lexer) atEnd() bool {
	return l.end >= len(l.source)
}

func (l *Lexer) peekChar() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.end]
}

func (l *Lexer) getChar() byte {
	c := l.source[l.end]
	l.end++
	return c
}

func (l *Lexer) matchChar(c byte) bool {
	if !l.atEnd() && l.source[l.end] == c {
		l.end++
		return true
	}
	return false
}

// newline records that the byte at offset is a line break.
func (l *Lexer) newline(offset int) {
	l.line++
	l.lineStart = offset + 1
}

func (l *Lexer) position(offset int) types.Position {
	return types.Position{
		Line:     l.line,
		Column:   offset - l.lineStart + 1,
		Offset:   offset,
		Filename: l.filename,
	}
}

func (l *Lexer) kinded(t types.TokenKind) types.Token {
	span := types.SingleCharSpan(l.position(l.start))
	if l.end-l.start > 1 {
		span.To = l.position(l.end - 1)
	}

	return types.Token{
		Kind:     t,
		Lexeme:   l.source[l.start:l.end],
		Location: span,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch c := l.peekChar(); {
		case c == ' ' || c == '\t' || c == '\r':
			l.end++
		case c == '\n' && l.openParens > 0:
			l.newline(l.end)
			l.end++
		default:
			return
		}
	}
}

// Next scans the next token. Once the input is exhausted it keeps returning
// END tokens.
func (l *Lexer) Next() (types.Token, error) {
	l.skipWhitespace()
	l.start = l.end

	if l.atEnd() {
		return l.kinded(types.END), nil
	}

	c := l.getChar()
	switch {
	case c == '\n':
		tok := l.kinded(types.NEWLINE)
		l.newline(l.start)
		return tok, nil
	case firstChar(c):
		return l.lexIdent(), nil
	case isDigit(c):
		return l.lexNumber()
	case c == '"':
		return l.lexString()
	}

	if kind, ok := punctuation[c]; ok {
		switch kind {
		case types.LPAREN:
			l.openParens++
		case types.RPAREN:
			if l.openParens > 0 {
				l.openParens--
			}
		}
		return l.kinded(kind), nil
	}

	if forms, ok := operators[c]; ok {
		if l.matchChar('=') {
			return l.kinded(forms[1]), nil
		}
		return l.kinded(forms[0]), nil
	}

	return types.Token{}, errors.UnexpectedCharacter{
		Char:     c,
		Location: l.position(l.start),
	}
}

func (l *Lexer) lexIdent() types.Token {
	for !l.atEnd() && otherChar(l.peekChar()) {
		l.end++
	}

	if kind, ok := types.Keywords[l.source[l.start:l.end]]; ok {
		return l.kinded(kind)
	}

	return l.kinded(types.IDENT)
}

func (l *Lexer) consumeDigits() {
	for !l.atEnd() && isDigit(l.peekChar()) {
		l.end++
	}
}

func (l *Lexer) lexNumber() (types.Token, error) {
	l.consumeDigits()

	if l.matchChar('.') {
		if l.atEnd() || !isDigit(l.peekChar()) {
			return types.Token{}, errors.MalformedNumber{
				Char:     l.peekChar(),
				Location: l.position(l.end),
			}
		}
		l.consumeDigits()
	}

	return l.kinded(types.NUMBER), nil
}

func (l *Lexer) lexString() (types.Token, error) {
	from := l.position(l.start)

	for !l.atEnd() {
		switch c := l.getChar(); c {
		case '\\':
			if !l.atEnd() && l.getChar() == '\n' {
				l.newline(l.end - 1)
			}
		case '\n':
			l.newline(l.end - 1)
		case '"':
			return types.Token{
				Kind:     types.STRING,
				Lexeme:   l.source[l.start:l.end],
				Location: types.Span{From: from, To: l.position(l.end - 1)},
			}, nil
		}
	}

	return types.Token{}, errors.UnterminatedString{Location: from}
}

// All lexes the remaining input. The returned slice always ends with the
// END token.
func (l *Lexer) All() ([]types.Token, error) {
	var ret []types.Token
	for {
		t, err := l.Next()
		if err != nil {
			return ret, err
		}

		ret = append(ret, t)
		if t.Kind == types.END {
			return ret, nil
		}
	}
}
