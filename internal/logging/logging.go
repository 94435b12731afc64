package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and destination.
type Config struct {
	// Verbosity ranges from 0 (crit) to 5 (trace).
	Verbosity int `toml:"verbosity"`
	// File, when set, switches to JSON records in a rotating file.
	File       string `toml:"file,omitempty"`
	MaxSize    int    `toml:"maxsize"` // megabytes
	MaxBackups int    `toml:"maxbackups"`
	Compress   bool   `toml:"compress"`
}

// DefaultConfig logs at info level to the terminal.
var DefaultConfig = Config{
	Verbosity:  3,
	MaxSize:    100,
	MaxBackups: 10,
}

// FromVerbosity maps a 0..5 verbosity to a slog level. Out of range values
// are clamped.
func FromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return LevelCrit
	case v == 1:
		return slog.LevelError
	case v == 2:
		return slog.LevelWarn
	case v == 3:
		return slog.LevelInfo
	case v == 4:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Setup builds the logger described by cfg. The returned close function
// releases the log file, if any.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	level := FromVerbosity(cfg.Verbosity)

	if cfg.File != "" {
		if cfg.MaxSize < 0 || cfg.MaxBackups < 0 {
			return nil, nil, fmt.Errorf("invalid log rotation: maxsize=%d maxbackups=%d", cfg.MaxSize, cfg.MaxBackups)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		return slog.New(NewJSONHandler(rotator, level)), rotator.Close, nil
	}

	output := io.Writer(os.Stderr)
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	return slog.New(NewTerminalHandler(output, level, usecolor)), func() error { return nil }, nil
}

// NewJSONHandler returns a JSON handler that names the trace and crit
// levels instead of printing them as offsets.
func NewJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if l, ok := a.Value.Any().(slog.Level); ok {
					switch {
					case l <= LevelTrace:
						a.Value = slog.StringValue("TRACE")
					case l >= LevelCrit:
						a.Value = slog.StringValue("CRIT")
					}
				}
			}
			return a
		},
	})
}
