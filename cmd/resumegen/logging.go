package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrInvalidLogFormat indicates an unsupported --log-format value.
var ErrInvalidLogFormat = errors.New("invalid log format")

// newLogger builds the CLI logger: text or JSON on w, level from
// --verbose (debug) and --quiet (errors only).
func newLogger(w io.Writer, f commonFlags) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch f.logFormat {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q (use text or json)", ErrInvalidLogFormat, f.logFormat)
	}
}
