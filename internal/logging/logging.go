// Package logging wraps zerolog with the global-logger pattern used
// throughout the betterleaks/gitleaks family: a single process-wide
// logger, package-level helpers mirroring zerolog's event verbs, and a
// pretty console writer in interactive terminals.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. Replace it (e.g. in tests) via Init.
var Logger = zerolog.New(defaultWriter(os.Stderr)).With().Timestamp().Logger()

func defaultWriter(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return w
}

// isTerminal is a minimal, dependency-free TTY check good enough for
// picking a log format; it is not used for any security decision.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Init configures the global level and, when json is true, forces
// structured JSON output regardless of TTY detection (used by services
// and CI where a console writer would otherwise garble output).
func Init(level zerolog.Level, json bool) {
	zerolog.SetGlobalLevel(level)
	if json {
		Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func Trace() *zerolog.Event { return Logger.Trace() }
func Debug() *zerolog.Event { return Logger.Debug() }
func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }
func Fatal() *zerolog.Event { return Logger.Fatal() }

// With returns a logging context seeded from the global logger, for
// attaching per-scan fields (path, provider) before emitting a single
// event.
func With() zerolog.Context { return Logger.With() }
