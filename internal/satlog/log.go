// Package satlog wires the solver's pass-boundary reporting (restart
// headers, reduce/inprocess summaries, solve-end lines) to logrus, the
// structured logger used elsewhere in the retrieved corpus
// (operator-framework/operator-lifecycle-manager). Only phase-boundary
// code calls into this package; the propagation and analysis hot loops
// never do, so logging overhead never shows up inside BCP.
package satlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger at the level implied by verbosity, following
// kissat's -v/-q convention: -1 is silent, 0 is warnings only, higher
// values add info/debug noise.
func New(verbosity int) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case verbosity < 0:
		l.SetOutput(io.Discard)
	case verbosity == 0:
		l.SetLevel(logrus.WarnLevel)
	case verbosity == 1:
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
