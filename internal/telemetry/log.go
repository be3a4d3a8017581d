// Package telemetry wraps zerolog for the interpreter's optional
// debug tracing, grounded on tendermint/tendermint's per-subsystem
// zerolog loggers. It is intentionally tiny: the interpreter's hot
// path never touches it unless Config.Debug is set.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger traces operator dispatch during a single parse run.
type Logger struct {
	zl      zerolog.Logger
	enabled bool
}

// New creates a Logger. When enabled is false, every call is a no-op:
// zerolog's own Disabled level short-circuits formatting, so toggling
// tracing off costs nothing beyond a branch.
func New(enabled bool, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Logger()
	if !enabled {
		zl = zl.Level(zerolog.Disabled)
	}
	return Logger{zl: zl, enabled: enabled}
}

// Enabled reports whether tracing is active, so callers can skip
// building trace arguments entirely on the hot path.
func (l Logger) Enabled() bool { return l.enabled }

// Trace logs one interpreter event: a rule call, a backtrack, a
// successful match. runID correlates every line from a single Parse
// call (see driver.go, which stamps it with a uuid.New()).
func (l Logger) Trace(runID, event string, fields map[string]any) {
	if !l.enabled {
		return
	}
	e := l.zl.Debug().Str("run", runID).Str("event", event)
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(event)
}
