// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level slog.Level
	// File enables JSON logs with rotation at this path. Empty logs text to Stderr.
	File   string
	Stderr io.Writer
}

// New returns the logger and a close func for the rotated file, if any.
// The logger is also installed as the slog default.
func New(opts Options) (*slog.Logger, func() error, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	if opts.File == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(w, handlerOpts))
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	rotated := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logger := slog.New(slog.NewJSONHandler(rotated, handlerOpts))
	slog.SetDefault(logger)
	return logger, rotated.Close, nil
}
