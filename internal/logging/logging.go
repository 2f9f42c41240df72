// Package logging provides structured logging for lgrep's CLI and daemon-like
// long-running commands (watch).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls where and how lgrep logs.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file. Empty disables file logging.
	FilePath string
	// MaxSizeMB is the size threshold that triggers rotation.
	MaxSizeMB int
	// MaxFiles caps the number of rotated files retained.
	MaxFiles int
	// WriteToStderr additionally mirrors log lines to stderr.
	WriteToStderr bool
}

// DefaultConfig returns the default file-logging configuration, writing to
// lgrep.log inside the index directory.
func DefaultConfig(indexDir string) Config {
	return Config{
		Level:         "info",
		FilePath:      DefaultLogPath(indexDir),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	}
}

// DefaultLogPath returns "<indexDir>/lgrep.log".
func DefaultLogPath(indexDir string) string {
	return indexDir + string(os.PathSeparator) + "lgrep.log"
}

// Setup initializes a JSON slog.Logger per cfg and returns it along with a
// cleanup function that must be called to flush and close the log file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	if cfg.FilePath == "" {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
		return slog.New(handler), func() {}, nil
	}

	writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = writer
	if cfg.WriteToStderr {
		out = io.MultiWriter(writer, os.Stderr)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	logger := slog.New(handler)

	cleanup := func() {
		_ = writer.Close()
	}

	return logger, cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
