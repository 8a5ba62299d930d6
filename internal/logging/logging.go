// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zerolog logger shared by every stage.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Options configure the logger.
type Options struct {
	// Verbose lowers the level from info to debug.
	Verbose bool

	// JSON switches from the human console format to one JSON object per line.
	JSON bool
}

// New returns a logger writing to w. The level is set on the logger itself,
// not globally, so tests can build independent loggers.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("logger", "pdftotext").Logger()
}
