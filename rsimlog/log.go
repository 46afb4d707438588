// Package rsimlog provides the kernel's structured logging setup, built
// on zerolog: a configurable level and output, console or JSON, with
// helpers to derive scoped child loggers.
//
// rsim is a library embedded into a host application that very likely
// already runs its own zerolog logger, so New returns an independent
// zerolog.Logger value that callers thread through the
// SimManager/SimDispatcher options rather than a package-level
// singleton.
package rsimlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level selects the minimum severity the constructed logger emits.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logger construction options.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// New builds a zerolog.Logger from cfg. A zero Config yields an
// info-level console logger writing to stdout.
func New(cfg Config) zerolog.Logger {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	case InfoLevel, "":
		level = zerolog.InfoLevel
	default:
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	base := zerolog.New(output).With().Timestamp()
	if !cfg.JSONOutput {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp()
	}

	return base.Logger().Level(level)
}

// Nop returns a logger that discards everything: the same zerolog.Nop
// logger SimManager and SimDispatcher fall back to when constructed
// without WithLogger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// WithComponent derives a child logger tagged with the emitting
// component's id.
func WithComponent(l zerolog.Logger, componentID string) zerolog.Logger {
	return l.With().Str("component", componentID).Logger()
}

// WithCycle derives a child logger tagged with the current simulated
// cycle.
func WithCycle(l zerolog.Logger, cycle uint64) zerolog.Logger {
	return l.With().Uint64("cycle", cycle).Logger()
}
