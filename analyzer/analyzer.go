package analyzer

import (
	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/nuogo/ast"
	"github.com/pontaoski/nuogo/errors"
	"github.com/pontaoski/nuogo/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nuogo", "analyzer")

// Analyzer validates a parsed program and annotates it for code generation.
type Analyzer struct {
	builtins map[string]string
	program  *ast.Program
}

type Option func(*Analyzer)

// WithBuiltins registers extra built-in functions, overriding defaults of
// the same name.
func WithBuiltins(builtins map[string]string) Option {
	return func(a *Analyzer) {
		addBuiltins(a.builtins, builtins)
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{builtins: make(map[string]string)}
	addBuiltins(a.builtins, DefaultBuiltins)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze walks the functions in declaration order and mutates prog in
// place. It stops at the first error.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	a.program = prog
	defer func() { a.program = nil }()

	for _, fn := range prog.Functions {
		if err := a.analyzeFunction(fn); err != nil {
			return err
		}
	}

	plog.Debugf("analyzed %d functions, %d includes", len(prog.Functions), len(prog.Includes))
	return nil
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDeclaration) error {
	if fn.Name == "main" {
		if !ast.TypesEqual(fn.Returns, ast.Void) && !ast.TypesEqual(fn.Returns, ast.Int) {
			return errors.InvalidMainSignature{
				Returns:  ast.TypeToString(fn.Returns),
				Location: locate(fn.Pos),
			}
		}
		// the emitted entry point always returns int
		fn.Returns = ast.Int
	}

	return a.analyzeBlock(fn.Name, &fn.Body)
}

func (a *Analyzer) analyzeBlock(function string, block *ast.StatementBlock) error {
	if len(block.Statements) == 0 {
		return errors.EmptyBlock{Function: function, Location: locate(block.Pos)}
	}

	for _, stmt := range block.Statements {
		if call, ok := stmt.(*ast.FunctionCall); ok {
			a.analyzeCall(call)
		}
	}
	return nil
}

// analyzeCall records the header a built-in needs. Every call appends, so a
// built-in used twice is included twice. Unknown names are left alone.
func (a *Analyzer) analyzeCall(call *ast.FunctionCall) {
	header, ok := a.builtins[call.Name]
	if !ok {
		return
	}

	plog.Tracef("%s needs <%s>", call.Name, header)
	a.program.Includes = append(a.program.Includes, header)
}

// locate returns nil for nodes that were not built from source.
func locate(p types.Position) *types.Position {
	if p.Line == 0 {
		return nil
	}
	return &p
}
