package compiler

import (
	"path/filepath"
	"strings"
)

// FixtureFunc picks the pipeline entry point a fixture file exercises from
// its name: tokenizer, parser or compiler fixtures.
func FixtureFunc(path string, opts ...Option) (func(input string) (string, error), bool) {
	name := filepath.Base(path)

	var stage func(string, ...Option) (string, error)
	switch {
	case strings.HasPrefix(name, "tokenizer"):
		stage = DumpTokens
	case strings.HasPrefix(name, "parser"):
		stage = DumpAST
	case strings.HasPrefix(name, "compiler"):
		stage = Compile
	default:
		return nil, false
	}

	return func(input string) (string, error) {
		return stage(input, opts...)
	}, true
}
