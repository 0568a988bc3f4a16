// Package logging builds the process logger from CLI options.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLevel indicates an unknown log level name.
var ErrInvalidLevel = errors.New("log level must be one of: debug, info, warn, error")

// Rotation defaults for --log-file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options selects the log destination and level.
type Options struct {
	// Debug logs to stderr at debug level unless File is set, in which case
	// it only forces the level.
	Debug bool
	File  string
	Level string
}

// ParseLevel accepts level names or numeric slog levels. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	// Numeric slog levels, e.g. -4 for debug.
	if n, err := strconv.Atoi(strings.TrimSpace(level)); err == nil {
		return slog.Level(n), nil
	}

	return slog.LevelInfo, fmt.Errorf("%w, got: %s", ErrInvalidLevel, level)
}

// New returns the logger and a closer for its output. Without Debug or File
// the logger discards everything.
func New(opts Options, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	switch {
	case strings.TrimSpace(opts.File) != "":
		writer := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
		}
		handler := slog.NewTextHandler(writer, &slog.HandlerOptions{AddSource: true, Level: level})
		return slog.New(handler), writer, nil
	case opts.Debug:
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
		return slog.New(handler), nopCloser{}, nil
	default:
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
