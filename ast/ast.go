package ast

import "github.com/pontaoski/nuogo/types"

type Identifier struct {
	Name string
	Pos  types.Position
}

func NewID(name string, pos types.Position) Identifier {
	return Identifier{Name: name, Pos: pos}
}

type Type interface {
	is_Type()
}

type BaseType int

const (
	Void BaseType = iota
	Int
)

func (v BaseType) is_Type() {}

// ListType can only hold base types; the grammar has no nested lists.
type ListType struct {
	Element BaseType
}

func (v ListType) is_Type() {}

// TypesEqual compares types structurally.
func TypesEqual(a, b Type) bool {
	switch a := a.(type) {
	case BaseType:
		b, ok := b.(BaseType)
		return ok && a == b
	case ListType:
		b, ok := b.(ListType)
		return ok && a.Element == b.Element
	}
	return false
}

type Expression interface {
	is_Expression()
}

type Statement interface {
	is_Statement()
}

type VariableReference struct {
	Identifier
}

func (v *VariableReference) is_Expression() {}

// FunctionCall is both a statement and an expression.
type FunctionCall struct {
	Identifier
	Arguments []Expression
}

func (v *FunctionCall) is_Expression() {}
func (v *FunctionCall) is_Statement()  {}

// StringLiteral keeps the quoted lexeme exactly as written.
type StringLiteral struct {
	Value string
	Pos   types.Position
}

func (v *StringLiteral) is_Expression() {}

// NumberLiteral is kept as unparsed source text.
type NumberLiteral struct {
	Value string
	Pos   types.Position
}

func (v *NumberLiteral) is_Expression() {}

// VariableDeclaration is not produced by the parser yet.
type VariableDeclaration struct {
	Identifier
	Kind        Type
	Initializer Expression
}

func (v *VariableDeclaration) is_Statement() {}

type Return struct {
	Expression Expression // nil for a bare return
	Pos        types.Position
}

func (v *Return) is_Statement() {}

type StatementBlock struct {
	Statements []Statement
	Pos        types.Position
}

type Parameter struct {
	Identifier
	Kind Type
}

type FunctionDeclaration struct {
	Identifier
	Parameters []Parameter
	Returns    Type
	Body       StatementBlock
}

// Program is built by the parser, annotated in place by the analyzer and
// read by the generator and printer.
type Program struct {
	Includes  []string
	Functions []*FunctionDeclaration
}
