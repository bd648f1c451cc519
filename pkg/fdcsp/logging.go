package fdcsp

import (
	"os"

	"github.com/rs/zerolog"
)

// newTraceLogger returns a zerolog.Logger writing to stderr when trace is
// enabled, or the no-op disabled logger otherwise — mirroring the source's
// trace=False default of emitting nothing.
func newTraceLogger(enabled bool) zerolog.Logger {
	if !enabled {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
