package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := ioutil.TempDir("", "nuo-config")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := tempDir(t)
	write(t, dir, YAMLFile, "Package: hello\nOutput: out/hello.c\nLogLevel: debug\nBuiltins:\n  puts: stdio.h\n")

	mod, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := &Module{
		Package:  "hello",
		Output:   "out/hello.c",
		LogLevel: "debug",
		Builtins: map[string]string{"puts": "stdio.h"},
		Root:     dir,
	}
	if diff := pretty.Diff(mod, want); len(diff) > 0 {
		t.Errorf("unexpected module:\n%s", pretty.Sprint(diff))
	}
	if mod.OutputPath() != filepath.Join(dir, "out", "hello.c") {
		t.Errorf("output path %s", mod.OutputPath())
	}
}

func TestLoadTOML(t *testing.T) {
	dir := tempDir(t)
	write(t, dir, TOMLFile, "package = \"hello\"\nlog-level = \"trace\"\n\n[builtins]\nmalloc = \"stdlib.h\"\n")

	mod, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := &Module{
		Package:  "hello",
		LogLevel: "trace",
		Builtins: map[string]string{"malloc": "stdlib.h"},
		Root:     dir,
	}
	if diff := pretty.Diff(mod, want); len(diff) > 0 {
		t.Errorf("unexpected module:\n%s", pretty.Sprint(diff))
	}
	if mod.OutputPath() != filepath.Join(dir, "hello.c") {
		t.Errorf("output path %s", mod.OutputPath())
	}
}

func TestYAMLWins(t *testing.T) {
	dir := tempDir(t)
	write(t, dir, YAMLFile, "Package: fromyaml\n")
	write(t, dir, TOMLFile, "package = \"fromtoml\"\n")

	mod, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Package != "fromyaml" {
		t.Errorf("loaded %s", mod.Package)
	}
}

func TestNoModule(t *testing.T) {
	if _, err := Load(tempDir(t)); err != ErrNoModule {
		t.Errorf("got %v", err)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"Missing package", "Output: x.c\n", "missing package name"},
		{"Package not an identifier", "Package: 9lives\n", "must be a valid identifier"},
		{"Package is a keyword", "Package: return\n", "must be a valid identifier"},
		{"Builtin without header", "Package: a\nBuiltins:\n  puts: \"\"\n", "has no header"},
		{"Malformed file", "Package: [\n", "error reading nuo.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tempDir(t)
			write(t, dir, YAMLFile, tt.content)

			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.message) {
				t.Errorf("got %v, want %q", err, tt.message)
			}
		})
	}
}

func TestInit(t *testing.T) {
	dir := tempDir(t)

	if _, err := Init(dir, "hello"); err != nil {
		t.Fatal(err)
	}

	mod, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Package != "hello" {
		t.Errorf("package %q", mod.Package)
	}

	if _, err := Init(dir, "hello"); err == nil {
		t.Error("init overwrote an existing project")
	}
	if _, err := Init(tempDir(t), "not valid"); err == nil {
		t.Error("init accepted an invalid name")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"a", "_", "snake_case", "x1", "CamelCase"}
	invalid := []string{"", "1x", "has space", "dash-ed", "fn", "int", "ünicode"}

	for _, s := range valid {
		if !IsValidIdentifier(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if IsValidIdentifier(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
