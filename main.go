package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nuogo/compiler"
	"github.com/pontaoski/nuogo/config"
	"github.com/pontaoski/nuogo/logging"
	"github.com/pontaoski/nuogo/printer"
	"github.com/pontaoski/nuogo/spectest"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nuogo", "main")

func readSource(c *cli.Context) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		return "", "", cli.Exit("no input file provided", 1)
	}

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", "", err
	}
	return file, string(data), nil
}

var stageTitles = map[compiler.Stage]string{
	compiler.StageLex:      "Token Error",
	compiler.StageParse:    "Syntax Error",
	compiler.StageAnalyze:  "Semantic Error",
	compiler.StageGenerate: "Internal Error",
}

func stageTitle(stage compiler.Stage) string {
	if title, ok := stageTitles[stage]; ok {
		return title
	}
	return "Error"
}

// fail reports a compile error and exits non-zero.
func fail(c *cli.Context, err error, source string) error {
	ce, ok := err.(*compiler.CompileError)
	switch {
	case !ok:
		logging.PrintErrorMessage("Error", err)
	case c.Bool("trace"):
		tracerr.PrintSourceColor(ce.Err)
	default:
		logging.DisplayCompileMessage(stageTitle(ce.Stage), ce.Message, ce.Location, source)
	}
	return cli.Exit("", 1)
}

// project loads the project file next to file, if there is one.
func project(file string) (*config.Module, error) {
	mod, err := config.Load(filepath.Dir(file))
	if err == config.ErrNoModule {
		return nil, nil
	}
	return mod, err
}

func buildOutput(c *cli.Context, file string, mod *config.Module) string {
	if out := c.String("output"); out != "" {
		return out
	}
	if mod != nil {
		return mod.OutputPath()
	}
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".c"
}

func runFixtures(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no fixture files provided", 1)
	}

	passed := true
	for _, file := range c.Args().Slice() {
		data, err := ioutil.ReadFile(file)
		if err != nil {
			return err
		}

		cases, err := spectest.Parse(string(data))
		if err != nil {
			logging.PrintErrorMessage(file, err)
			passed = false
			continue
		}

		fn, ok := compiler.FixtureFunc(file)
		if !ok {
			return cli.Exit(fmt.Sprintf("%s: name must start with tokenizer, parser or compiler", file), 1)
		}

		results := spectest.Run(cases, fn)

		out := file
		if !c.Bool("update") {
			if err := os.MkdirAll(c.String("out-dir"), 0755); err != nil {
				return err
			}
			out = filepath.Join(c.String("out-dir"), filepath.Base(file))
		}
		if err := ioutil.WriteFile(out, []byte(spectest.Format(results)), 0644); err != nil {
			return err
		}

		failed := spectest.Failed(results)
		if len(failed) == 0 {
			logging.PrintSuccessMessage("PASS", fmt.Sprintf("%s (%d cases)", file, len(results)))
			continue
		}

		passed = false
		for _, r := range failed {
			logging.PrintErrorMessage("FAIL", fmt.Errorf("%s:%d %s", file, r.Line, r.Description))
		}
	}

	if !passed {
		return cli.Exit("", 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "nuo",
		Usage: "nuo to C compiler",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "one of critical, error, warning, notice, info, debug, trace",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces for compile errors",
			},
		},
		Before: func(c *cli.Context) error {
			return logging.Setup(c.String("log-level"))
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no package name provided", 1)
					}

					if _, err := config.Init(".", name); err != nil {
						logging.PrintErrorMessage("Error", err)
						return cli.Exit("", 1)
					}

					logging.PrintSuccessMessage("Created", config.YAMLFile)
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "build a file",
				ArgsUsage: "<file.nuo>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					file, source, err := readSource(c)
					if err != nil {
						return err
					}

					mod, err := project(file)
					if err != nil {
						logging.PrintErrorMessage("Project Error", err)
						return cli.Exit("", 1)
					}

					opts := []compiler.Option{compiler.WithFilename(file)}
					if mod != nil {
						plog.Debugf("using project %s in %s", mod.Package, mod.Root)
						if mod.LogLevel != "" && !c.IsSet("log-level") {
							if err := logging.Setup(mod.LogLevel); err != nil {
								return err
							}
						}
						opts = append(opts, compiler.WithBuiltins(mod.Builtins))
					}

					out, err := compiler.Compile(source, opts...)
					if err != nil {
						return fail(c, err, source)
					}

					if c.Bool("dump") {
						fmt.Println(out)
						return nil
					}

					dest := buildOutput(c, file, mod)
					if err := ioutil.WriteFile(dest, []byte(out+"\n"), 0644); err != nil {
						return err
					}

					plog.Infof("wrote %s", dest)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a file",
				ArgsUsage: "<file.nuo>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "repr",
					},
				},
				Action: func(c *cli.Context) error {
					file, source, err := readSource(c)
					if err != nil {
						return err
					}

					if c.Bool("repr") {
						toks, err := compiler.Tokens(source, compiler.WithFilename(file))
						if err != nil {
							return fail(c, err, source)
						}
						fmt.Println(printer.Repr(toks))
						return nil
					}

					out, err := compiler.DumpTokens(source, compiler.WithFilename(file))
					if err != nil {
						return fail(c, err, source)
					}
					fmt.Println(out)
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "<file.nuo>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "repr",
					},
				},
				Action: func(c *cli.Context) error {
					file, source, err := readSource(c)
					if err != nil {
						return err
					}

					if c.Bool("repr") {
						prog, err := compiler.Parse(source, compiler.WithFilename(file))
						if err != nil {
							return fail(c, err, source)
						}
						fmt.Println(printer.Repr(prog))
						return nil
					}

					out, err := compiler.DumpAST(source, compiler.WithFilename(file))
					if err != nil {
						return fail(c, err, source)
					}
					fmt.Println(out)
					return nil
				},
			},
			{
				Name:      "spec",
				Usage:     "run fixture files",
				ArgsUsage: "<fixture files...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "update",
						Usage: "rewrite the fixtures in place with actual output",
					},
					&cli.StringFlag{
						Name:  "out-dir",
						Value: "build",
						Usage: "where to write fixtures with actual output",
					},
				},
				Action: runFixtures,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.PrintErrorMessage("Error", err)
		os.Exit(1)
	}
}
