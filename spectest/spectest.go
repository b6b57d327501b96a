// Package spectest reads and writes fixture files pairing source input with
// the output expected from one pipeline stage.
//
// A fixture file is a sequence of blocks separated by "====" lines:
//
//	````
//	description
//	````
//	input
//	----
//	expected output
//	====
//
// The description block is optional.
package spectest

import (
	"fmt"
	"strings"
)

const (
	tickLine  = "````"
	dashLine  = "----"
	equalLine = "===="
)

type Case struct {
	Description string
	Input       string
	Expected    string

	// Line is where the block starts in the fixture file, counting from 1.
	Line int
}

type Result struct {
	Case
	Actual string
}

func (r Result) Passed() bool {
	return r.Actual == r.Expected
}

// MalformedCase is returned by Parse for a block missing one of its
// delimiters.
type MalformedCase struct {
	Line    int
	Missing string
}

func (m MalformedCase) Error() string {
	return fmt.Sprintf("fixture starting at line %d has no %s", m.Line, m.Missing)
}

// Parse splits a fixture file into cases. Blocks holding nothing but blank
// lines are skipped.
func Parse(data string) ([]Case, error) {
	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")

	var cases []Case
	start := 0
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && lines[i] != equalLine {
			continue
		}

		c, ok, err := parseBlock(lines[start:i], start+1)
		if err != nil {
			return nil, err
		}
		if ok {
			cases = append(cases, c)
		}
		start = i + 1
	}

	return cases, nil
}

func parseBlock(lines []string, line int) (Case, bool, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
		line++
	}
	if len(lines) == 0 {
		return Case{}, false, nil
	}

	c := Case{Line: line}
	if lines[0] == tickLine {
		end := indexOf(lines[1:], tickLine)
		if end < 0 {
			return Case{}, false, MalformedCase{Line: line, Missing: "end of description"}
		}
		c.Description = strings.Join(lines[1:end+1], "\n")
		lines = lines[end+2:]
	}

	dash := indexOf(lines, dashLine)
	if dash < 0 {
		return Case{}, false, MalformedCase{Line: line, Missing: "end of input"}
	}
	c.Input = strings.Join(lines[:dash], "\n")
	c.Expected = strings.Join(lines[dash+1:], "\n")

	return c, true, nil
}

func indexOf(lines []string, delimiter string) int {
	for i, l := range lines {
		if l == delimiter {
			return i
		}
	}
	return -1
}

// Run feeds every case's input to fn. When fn fails, its error text is the
// actual output, so fixtures can pin down diagnostics too.
func Run(cases []Case, fn func(input string) (string, error)) []Result {
	results := make([]Result, 0, len(cases))

	for _, c := range cases {
		actual, err := fn(c.Input)
		if err != nil {
			actual = err.Error()
		}
		results = append(results, Result{Case: c, Actual: actual})
	}

	return results
}

// Failed returns the results whose actual output differs from the expected.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Format writes results back out as a fixture file, with the actual output
// in place of the expected.
func Format(results []Result) string {
	blocks := make([]string, 0, len(results))

	for _, r := range results {
		blocks = append(blocks, strings.Join([]string{
			tickLine,
			r.Description,
			tickLine,
			r.Input,
			dashLine,
			r.Actual,
			equalLine,
		}, "\n"))
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
