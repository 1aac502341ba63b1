package sat

import (
	"github.com/sirupsen/logrus"

	"github.com/rhartert/ksat/internal/satlog"
)

// newSatLogger adapts the CLI-facing satlog constructor to the engine's
// internal use (restart/reduce/inprocess summaries only - never called
// from propagate/analyze, spec §5).
func newSatLogger(verbosity int) *logrus.Logger {
	return satlog.New(verbosity)
}

// logFields is a local alias so call sites elsewhere in the package
// don't need their own logrus import just to build a field set.
type logFields = logrus.Fields
