// Package logging configures capnslog for the command line and renders
// compile errors for people.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
)

// DefaultLevel keeps the compiler quiet unless something goes wrong.
const DefaultLevel = "warning"

// Setup sends every package logger to stderr at the given level. Level names
// are those of capnslog, in any case: critical, error, warning, notice, info,
// debug or trace.
func Setup(level string) error {
	if level == "" {
		level = DefaultLevel
	}

	l, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}

	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, l >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(l)
	return nil
}
