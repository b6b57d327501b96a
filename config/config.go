// Package config loads the nuo.yaml or nuo.toml file describing a project.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/nuogo/types"
)

const (
	YAMLFile = "nuo.yaml"
	TOMLFile = "nuo.toml"
)

// ErrNoModule is returned by Load when the directory has no project file.
var ErrNoModule = errors.New("no nuo.yaml or nuo.toml found")

type Module struct {
	Package  string            `yaml:"Package" toml:"package"`
	Output   string            `yaml:"Output,omitempty" toml:"output,omitempty"`
	LogLevel string            `yaml:"LogLevel,omitempty" toml:"log-level,omitempty"`
	Builtins map[string]string `yaml:"Builtins,omitempty" toml:"builtins,omitempty"`

	// Root is the directory the project file was found in.
	Root string `yaml:"-" toml:"-"`
}

// OutputPath is where build writes C for this project. It defaults to the
// package name with a .c extension.
func (m *Module) OutputPath() string {
	out := m.Output
	if out == "" {
		out = m.Package + ".c"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, out)
}

// Load reads the project file in dir, preferring nuo.yaml.
func Load(dir string) (*Module, error) {
	mod := &Module{Root: dir}

	data, err := ioutil.ReadFile(filepath.Join(dir, YAMLFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, mod); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", YAMLFile, err)
		}
	case os.IsNotExist(err):
		data, err = ioutil.ReadFile(filepath.Join(dir, TOMLFile))
		if os.IsNotExist(err) {
			return nil, ErrNoModule
		} else if err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, mod); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", TOMLFile, err)
		}
	default:
		return nil, err
	}

	if err := mod.Validate(); err != nil {
		return nil, err
	}
	return mod, nil
}

// Validate checks that the package name is a valid identifier and that every
// builtin names a header.
func (m *Module) Validate() error {
	if m.Package == "" {
		return errors.New("missing package name")
	}
	if !IsValidIdentifier(m.Package) {
		return fmt.Errorf("package name %q must be a valid identifier", m.Package)
	}

	for name, header := range m.Builtins {
		if !IsValidIdentifier(name) {
			return fmt.Errorf("builtin %q must be a valid identifier", name)
		}
		if header == "" {
			return fmt.Errorf("builtin %s has no header", name)
		}
	}

	return nil
}

// IsValidIdentifier reports whether s would lex as a single identifier.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := types.Keywords[s]; ok {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// Init writes a new nuo.yaml for package name into dir. It refuses to
// overwrite an existing project file.
func Init(dir, name string) (*Module, error) {
	mod := &Module{Package: name, Root: dir}
	if err := mod.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(dir, TOMLFile)); err == nil {
		return nil, fmt.Errorf("%s already exists", TOMLFile)
	}

	out, err := yaml.Marshal(mod)
	if err != nil {
		return nil, fmt.Errorf("error creating %s: %w", YAMLFile, err)
	}

	fi, err := os.OpenFile(filepath.Join(dir, YAMLFile), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating %s: %w", YAMLFile, err)
	}
	defer fi.Close()

	if _, err := fi.Write(out); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", YAMLFile, err)
	}
	return mod, nil
}
