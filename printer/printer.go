// Package printer dumps programs as an indented tree, one node per line.
package printer

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nuogo/ast"
	"github.com/pontaoski/nuogo/errors"
)

type ctx struct {
	lines []string
}

func (c *ctx) line(level int, format string, args ...interface{}) {
	c.lines = append(c.lines, strings.Repeat("  ", level)+fmt.Sprintf(format, args...))
}

func unsupported(node string, v interface{}) error {
	return tracerr.Wrap(errors.UnsupportedVariant{
		Visitor: "printing",
		Node:    node,
		Variant: fmt.Sprintf("%T", v),
	})
}

// Print renders every function in prog. Functions are separated by a blank
// line and the result has no trailing newline.
func Print(prog *ast.Program) (string, error) {
	var functions []string

	for _, fn := range prog.Functions {
		c := &ctx{}
		if err := printFunction(c, fn, 0); err != nil {
			return "", err
		}
		functions = append(functions, strings.Join(c.lines, "\n"))
	}

	return strings.Join(functions, "\n\n"), nil
}

// Repr dumps any value, positions included, as Go syntax.
func Repr(v interface{}) string {
	return repr.String(v, repr.Indent("  "))
}

func printFunction(c *ctx, fn *ast.FunctionDeclaration, level int) error {
	c.line(level, "FunctionDeclaration: %s", fn.Name)

	c.line(level+1, "params:")
	for _, param := range fn.Parameters {
		kind, err := typeString(param.Kind)
		if err != nil {
			return err
		}
		c.line(level+2, "%s: %s", param.Name, kind)
	}

	ret, err := typeString(fn.Returns)
	if err != nil {
		return err
	}
	c.line(level+1, "returnType: %s", ret)

	c.line(level+1, "body:")
	for _, stmt := range fn.Body.Statements {
		if err := printStatement(c, stmt, level+2); err != nil {
			return err
		}
	}

	return nil
}

func printStatement(c *ctx, s ast.Statement, level int) error {
	switch stmt := s.(type) {
	case *ast.FunctionCall:
		return printCall(c, stmt, level)
	case *ast.Return:
		c.line(level, "Return")
		if stmt.Expression != nil {
			return printExpression(c, stmt.Expression, level+1)
		}
	case *ast.VariableDeclaration:
		kind, err := typeString(stmt.Kind)
		if err != nil {
			return err
		}
		c.line(level, "VariableDeclaration: %s", stmt.Name)
		c.line(level+1, "type: %s", kind)
		if stmt.Initializer != nil {
			return printExpression(c, stmt.Initializer, level+1)
		}
	default:
		return unsupported("Statement", s)
	}

	return nil
}

func printExpression(c *ctx, e ast.Expression, level int) error {
	switch expr := e.(type) {
	case *ast.FunctionCall:
		return printCall(c, expr, level)
	case *ast.VariableReference:
		c.line(level, "VariableReference: %s", expr.Name)
	case *ast.StringLiteral:
		c.line(level, "StringLiteral: %s", expr.Value)
	case *ast.NumberLiteral:
		c.line(level, "NumberLiteral: %s", expr.Value)
	default:
		return unsupported("Expression", e)
	}

	return nil
}

func printCall(c *ctx, call *ast.FunctionCall, level int) error {
	c.line(level, "FunctionCall: %s", call.Name)
	for _, arg := range call.Arguments {
		if err := printExpression(c, arg, level+1); err != nil {
			return err
		}
	}

	return nil
}

func typeString(t ast.Type) (string, error) {
	switch kind := t.(type) {
	case ast.BaseType:
		if kind != ast.Void && kind != ast.Int {
			break
		}
		return kind.String(), nil
	case ast.ListType:
		if kind.Element != ast.Void && kind.Element != ast.Int {
			break
		}
		return kind.String(), nil
	}

	return "", unsupported("Type", t)
}
