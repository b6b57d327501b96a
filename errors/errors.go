package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/nuogo/types"
)

// Located is implemented by every diagnostic that knows where in the
// source it happened.
type Located interface {
	error
	Pos() types.Position
}

// Lexical errors.

type UnexpectedCharacter struct {
	Char     byte
	Location types.Position
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("ran into an unexpected character %q at line %d column %d", e.Char, e.Location.Line, e.Location.Column)
}

func (e UnexpectedCharacter) Pos() types.Position { return e.Location }

// UnterminatedString is located at the opening quote, not where scanning
// gave up.
type UnterminatedString struct {
	Location types.Position
}

func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string that started at line %d column %d", e.Location.Line, e.Location.Column)
}

func (e UnterminatedString) Pos() types.Position { return e.Location }

type MalformedNumber struct {
	Char     byte
	Location types.Position
}

func (e MalformedNumber) Error() string {
	what := fmt.Sprintf("%q", e.Char)
	if e.Char == 0 {
		what = "end of input"
	}
	return fmt.Sprintf("unexpected %s after number decimal at line %d column %d", what, e.Location.Line, e.Location.Column)
}

func (e MalformedNumber) Pos() types.Position { return e.Location }

// Syntax errors.

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected a %s. %s", e.Got, e.Expected, e.Location)
}

func (e ExpectedKindGotKind) Pos() types.Position { return e.Location.From }

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, kinds(e.Expected), e.Location)
}

func (e ExpectedOneOfKindGotKind) Pos() types.Position { return e.Location.From }

// UnexpectedToken is raised when no rule of the grammar can start with the
// current token. Context names the rule being parsed.
type UnexpectedToken struct {
	Got      types.TokenKind
	Context  string
	Location types.Span
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token %s when parsing %s. %s", e.Got, e.Context, e.Location)
}

func (e UnexpectedToken) Pos() types.Position { return e.Location.From }

// Semantic errors.

type InvalidMainSignature struct {
	Returns  string
	Location *types.Position
}

func (e InvalidMainSignature) Error() string {
	return fmt.Sprintf("main function can only return void or int, not %s", e.Returns)
}

type EmptyBlock struct {
	Function string
	Location *types.Position
}

func (e EmptyBlock) Error() string {
	return fmt.Sprintf("cannot have an empty statement block in function %s", e.Function)
}

// UnsupportedVariant means a visitor reached an AST variant it has no case
// for. Input can't cause this; it is a bug in the compiler.
type UnsupportedVariant struct {
	Visitor string
	Node    string
	Variant string
}

func (e UnsupportedVariant) Error() string {
	return fmt.Sprintf("unexpected %s %s when %s", e.Node, e.Variant, e.Visitor)
}

// kinds renders a list of token kinds for messages.
func kinds(k []types.TokenKind) string {
	var names []string
	for _, kind := range k {
		names = append(names, kind.String())
	}
	return strings.Join(names, ", ")
}
