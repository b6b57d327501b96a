// Package compiler runs the whole pipeline: lexing and parsing, analysis and
// generation of C.
package compiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nuogo/analyzer"
	"github.com/pontaoski/nuogo/ast"
	"github.com/pontaoski/nuogo/codegen"
	"github.com/pontaoski/nuogo/errors"
	"github.com/pontaoski/nuogo/lexer"
	"github.com/pontaoski/nuogo/parser"
	"github.com/pontaoski/nuogo/printer"
	"github.com/pontaoski/nuogo/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nuogo", "compiler")

type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageAnalyze  Stage = "analyze"
	StageGenerate Stage = "generate"
)

// CompileError is the only error type returned from this package.
type CompileError struct {
	Stage   Stage
	Message string

	// Location is nil when the failing stage doesn't know where the problem
	// is in the source.
	Location *types.Position

	// Err is the underlying error, still carrying its stack trace.
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Message)
}

func (e *CompileError) Unwrap() error {
	return tracerr.Unwrap(e.Err)
}

func stageError(stage Stage, err error) *CompileError {
	inner := tracerr.Unwrap(err)
	ce := &CompileError{
		Stage:   stage,
		Message: inner.Error(),
		Err:     err,
	}

	switch e := inner.(type) {
	case errors.UnexpectedCharacter, errors.UnterminatedString, errors.MalformedNumber:
		ce.Stage = StageLex
	case errors.InvalidMainSignature:
		ce.Location = e.Location
	case errors.EmptyBlock:
		ce.Location = e.Location
	}
	if located, ok := inner.(errors.Located); ok {
		pos := located.Pos()
		ce.Location = &pos
	}

	return ce
}

type options struct {
	filename string
	builtins map[string]string
}

type Option func(*options)

// WithFilename sets the name reported in positions.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithBuiltins adds or overrides entries of the builtin function table.
// Later options win over earlier ones for the same name.
func WithBuiltins(builtins map[string]string) Option {
	return func(o *options) {
		if o.builtins == nil {
			o.builtins = make(map[string]string, len(builtins))
		}
		for name, header := range builtins {
			o.builtins[name] = header
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func timed(stage Stage, f func() error) error {
	start := time.Now()
	err := f()
	plog.Debugf("%s took %s", stage, time.Since(start))
	return err
}

func parse(source string, o *options) (prog *ast.Program, err error) {
	err = timed(StageParse, func() error {
		prog, err = parser.ParseString(source, o.filename)
		return err
	})
	if err != nil {
		return nil, stageError(StageParse, err)
	}
	return prog, nil
}

// Parse lexes and parses source without analyzing it.
func Parse(source string, opts ...Option) (*ast.Program, error) {
	return parse(source, newOptions(opts))
}

// Compile turns source into C.
func Compile(source string, opts ...Option) (string, error) {
	o := newOptions(opts)

	prog, err := parse(source, o)
	if err != nil {
		return "", err
	}

	err = timed(StageAnalyze, func() error {
		return tracerr.Wrap(analyzer.New(analyzer.WithBuiltins(o.builtins)).Analyze(prog))
	})
	if err != nil {
		return "", stageError(StageAnalyze, err)
	}

	var out string
	err = timed(StageGenerate, func() error {
		out, err = codegen.Generate(prog)
		return err
	})
	if err != nil {
		return "", stageError(StageGenerate, err)
	}

	plog.Infof("compiled %d functions", len(prog.Functions))
	return out, nil
}

// DumpAST parses source and renders the tree with the debug printer.
func DumpAST(source string, opts ...Option) (string, error) {
	prog, err := Parse(source, opts...)
	if err != nil {
		return "", err
	}

	out, err := printer.Print(prog)
	if err != nil {
		return "", stageError(StageGenerate, err)
	}
	return out, nil
}

// Tokens lexes all of source. The last token is always END.
func Tokens(source string, opts ...Option) ([]types.Token, error) {
	o := newOptions(opts)

	var toks []types.Token
	err := timed(StageLex, func() (err error) {
		toks, err = lexer.NewLexer(source, o.filename).All()
		return err
	})
	if err != nil {
		return nil, stageError(StageLex, tracerr.Wrap(err))
	}
	return toks, nil
}

// DumpTokens renders one token per line.
func DumpTokens(source string, opts ...Option) (string, error) {
	toks, err := Tokens(source, opts...)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(toks))
	for _, tok := range toks {
		lines = append(lines, tok.String())
	}
	return strings.Join(lines, "\n"), nil
}
