package compiler

import (
	"flag"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/pontaoski/nuogo/errors"
	"github.com/pontaoski/nuogo/spectest"
)

var update = flag.Bool("update", false, "rewrite testdata fixtures with actual output")

func TestFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.test"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := ioutil.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			cases, err := spectest.Parse(string(data))
			if err != nil {
				t.Fatal(err)
			}

			fn, ok := FixtureFunc(file)
			if !ok {
				t.Fatalf("don't know how to run %s", file)
			}

			results := spectest.Run(cases, fn)
			if *update {
				if err := ioutil.WriteFile(file, []byte(spectest.Format(results)), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			for _, r := range spectest.Failed(results) {
				t.Errorf("%s:%d %s\ngot:\n%s\nwant:\n%s", file, r.Line, r.Description, r.Actual, r.Expected)
			}
		})
	}
}

func TestCompileHelloWorld(t *testing.T) {
	out, err := Compile("fn main() {\nprintln(\"hi\")\n}")
	if err != nil {
		t.Fatal(err)
	}

	want := "#include <stdio.h>\n\nint main() {\n  println(\"hi\");\n}"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	source := "fn a(x: int) {\nprintln(x)\n}\nfn main() {\na(1)\nprintln(\"b\")\n}"

	first, err := Compile(source)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Compile(source)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d differs:\n%s", i, pretty.Diff(first, again))
		}
	}
}

func TestCompileWithBuiltins(t *testing.T) {
	out, err := Compile("fn main() {\nputs(\"hi\")\n}", WithBuiltins(map[string]string{"puts": "stdio.h"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "#include <stdio.h>\n\n") {
		t.Errorf("got:\n%s", out)
	}
}

func TestBuiltinOptionsMerge(t *testing.T) {
	out, err := Compile(
		"fn a() {\nmalloc(1)\n}\nfn main() {\nputs(\"hi\")\n}",
		WithBuiltins(map[string]string{"malloc": "stdlib.h", "puts": "stdio.h"}),
		WithBuiltins(map[string]string{"puts": "nuo/io.h"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	want := "#include <stdlib.h>\n#include <nuo/io.h>\n\n"
	if !strings.HasPrefix(out, want) {
		t.Errorf("got:\n%s", out)
	}
}

func TestStages(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		stage  Stage
		line   int
		column int
	}{
		{
			name:   "Unterminated string",
			input:  "fn main() {\"abc",
			stage:  StageLex,
			line:   1,
			column: 12,
		},
		{
			name:   "Unexpected character",
			input:  "fn main() {\n  @\n}",
			stage:  StageLex,
			line:   2,
			column: 3,
		},
		{
			name:   "Unclosed call",
			input:  "fn main() { x( }",
			stage:  StageParse,
			line:   1,
			column: 16,
		},
		{
			name:   "List types have no syntax",
			input:  "fn main(): [int] {\nreturn\n}",
			stage:  StageParse,
			line:   1,
			column: 12,
		},
		{
			name:   "Empty block",
			input:  "fn main() {\n}",
			stage:  StageAnalyze,
			line:   1,
			column: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.input, WithFilename("main.nuo"))

			ce, ok := err.(*CompileError)
			if !ok {
				t.Fatalf("got %T: %v", err, err)
			}
			if ce.Stage != tt.stage {
				t.Errorf("stage %s, want %s: %s", ce.Stage, tt.stage, ce)
			}
			if ce.Location == nil {
				t.Fatalf("no location: %s", ce)
			}
			if ce.Location.Line != tt.line || ce.Location.Column != tt.column {
				t.Errorf("at %s, want %d:%d", ce.Location, tt.line, tt.column)
			}
			if ce.Location.Filename != "main.nuo" {
				t.Errorf("filename %q", ce.Location.Filename)
			}
			if !strings.HasPrefix(ce.Error(), string(tt.stage)+" error: ") {
				t.Errorf("message %q", ce.Error())
			}
		})
	}
}

func TestUnwrapReachesTypedError(t *testing.T) {
	_, err := Compile("fn main() {\"abc")

	ce := err.(*CompileError)
	if _, ok := ce.Unwrap().(errors.UnterminatedString); !ok {
		t.Errorf("unwrapped to %T", ce.Unwrap())
	}
}

func TestDumpTokens(t *testing.T) {
	out, err := DumpTokens("fn f()")
	if err != nil {
		t.Fatal(err)
	}
	if out != "FN\nIDENT f\nLPAREN\nRPAREN\nEND" {
		t.Errorf("got:\n%s", out)
	}

	if _, err := DumpTokens("#"); err == nil || err.(*CompileError).Stage != StageLex {
		t.Errorf("got %v", err)
	}
}

func TestDumpAST(t *testing.T) {
	out, err := DumpAST("fn main() {\nreturn\n}")
	if err != nil {
		t.Fatal(err)
	}

	want := "FunctionDeclaration: main\n  params:\n  returnType: void\n  body:\n    Return"
	if out != want {
		t.Errorf("got:\n%s", out)
	}
}

func TestParseDoesNotAnalyze(t *testing.T) {
	prog, err := Parse("fn main() {\nprintln(\"x\")\n}")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Includes != nil {
		t.Errorf("includes %v", prog.Includes)
	}
}
