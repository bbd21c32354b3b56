package platform

import (
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile returns the log file location, relative paths resolved like the store path.
func (c *Config) LogFile() string {
	f := c.Log.File
	if f == "" || filepath.IsAbs(f) || c.File == "" {
		return f
	}
	return filepath.Join(filepath.Dir(c.File), f)
}

// NewLogger builds the CLI logger. With a log file configured, records are
// written as JSON to a size-rotated file; otherwise as text to console.
// The returned closer releases the file and is never nil.
func NewLogger(c *Config, console io.Writer, verbose bool) (*slog.Logger, io.Closer) {
	level := c.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if c.Log.File == "" {
		return slog.New(slog.NewTextHandler(console, opts)), nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   c.LogFile(),
		MaxSize:    c.Log.MaxSize, // Megabytes
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge, // Days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(rotator, opts)), rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
