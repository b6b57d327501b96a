package codegen

import (
	"fmt"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nuogo/ast"
	"github.com/pontaoski/nuogo/errors"
)

const indentSize = 2

type ctx struct {
	out    strings.Builder
	indent int
}

func unsupported(node string, v interface{}) error {
	return tracerr.Wrap(errors.UnsupportedVariant{
		Visitor: "compiling",
		Node:    node,
		Variant: fmt.Sprintf("%T", v),
	})
}

// Generate emits C for an analyzed program. The program is not modified.
func Generate(prog *ast.Program) (string, error) {
	c := &ctx{}

	for _, include := range prog.Includes {
		c.out.WriteString("#include <" + include + ">\n")
	}
	if len(prog.Includes) > 0 {
		c.out.WriteString("\n")
	}

	for i, fn := range prog.Functions {
		if i > 0 {
			c.out.WriteString("\n\n")
		}
		if err := codegenFunction(c, fn); err != nil {
			return "", err
		}
	}

	return c.out.String(), nil
}

func codegenFunction(c *ctx, fn *ast.FunctionDeclaration) error {
	if err := codegenType(c, fn.Returns); err != nil {
		return err
	}
	c.out.WriteString(" " + fn.Name + "(")

	for i, param := range fn.Parameters {
		if i > 0 {
			c.out.WriteString(", ")
		}
		if err := codegenType(c, param.Kind); err != nil {
			return err
		}
		c.out.WriteString(" " + param.Name)
	}
	c.out.WriteString(") ")

	return codegenBlock(c, &fn.Body)
}

func codegenBlock(c *ctx, block *ast.StatementBlock) error {
	c.out.WriteString("{\n")

	c.indent += indentSize
	for _, stmt := range block.Statements {
		c.out.WriteString(strings.Repeat(" ", c.indent))
		if err := codegenStatement(c, stmt); err != nil {
			return err
		}
		c.out.WriteString(";\n")
	}
	c.indent -= indentSize

	c.out.WriteString(strings.Repeat(" ", c.indent) + "}")
	return nil
}

func codegenStatement(c *ctx, s ast.Statement) error {
	switch stmt := s.(type) {
	case *ast.FunctionCall:
		return codegenCall(c, stmt)
	case *ast.Return:
		c.out.WriteString("return")
		if stmt.Expression == nil {
			return nil
		}
		c.out.WriteString(" ")
		return codegenExpression(c, stmt.Expression)
	default:
		return unsupported("Statement", s)
	}
}

func codegenExpression(c *ctx, e ast.Expression) error {
	switch expr := e.(type) {
	case *ast.FunctionCall:
		return codegenCall(c, expr)
	case *ast.VariableReference:
		c.out.WriteString(expr.Name)
	case *ast.StringLiteral:
		c.out.WriteString(expr.Value)
	case *ast.NumberLiteral:
		c.out.WriteString(expr.Value)
	default:
		return unsupported("Expression", e)
	}

	return nil
}

func codegenCall(c *ctx, call *ast.FunctionCall) error {
	c.out.WriteString(call.Name + "(")
	for i, arg := range call.Arguments {
		if i > 0 {
			c.out.WriteString(", ")
		}
		if err := codegenExpression(c, arg); err != nil {
			return err
		}
	}
	c.out.WriteString(")")

	return nil
}

func codegenType(c *ctx, t ast.Type) error {
	switch kind := t.(type) {
	case ast.BaseType:
		return codegenBaseType(c, kind)
	case ast.ListType:
		// placeholder until the target has real array types
		c.out.WriteString("[")
		if err := codegenBaseType(c, kind.Element); err != nil {
			return err
		}
		c.out.WriteString("]")
		return nil
	default:
		return unsupported("Type", t)
	}
}

func codegenBaseType(c *ctx, t ast.BaseType) error {
	switch t {
	case ast.Void:
		c.out.WriteString("void")
	case ast.Int:
		c.out.WriteString("int")
	default:
		return tracerr.Wrap(errors.UnsupportedVariant{
			Visitor: "compiling",
			Node:    "BaseType",
			Variant: fmt.Sprint(int(t)),
		})
	}

	return nil
}
