// Package rdplog centralizes the zerolog configuration shared by the
// tokenizer and the parse engine. Logging here is diagnostic only: nothing
// in the engine branches on whether a logger is attached, and the package
// never buffers or alters control flow based on log level.
package rdplog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Component names used as the "component" field on every log event emitted
// from this module.
const (
	ComponentEngine    = "engine"
	ComponentTokenizer = "tokenizer"
	ComponentGrammar   = "grammar"
)

// New creates a logger writing to w at the given level, tagged with
// component. If w is nil, os.Stderr is used. Passing zerolog.Disabled for
// level produces a logger that does no work at all.
func New(w io.Writer, level zerolog.Level, component string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Disabled returns a logger that discards everything, for callers such as
// tests that drive the engine directly and want no log output.
func Disabled(component string) zerolog.Logger {
	return New(io.Discard, zerolog.Disabled, component)
}
