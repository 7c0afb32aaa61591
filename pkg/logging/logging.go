// Package logging configures zerolog for the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Level is one of "debug", "info", "warn", "error" and "off". Empty means "info".
	Level string `yaml:"level"`

	// Format is "json" (default) or "text".
	Format string `yaml:"format"`

	// File, when set, receives logs too, rotated by size.
	File string `yaml:"file"`
}

// ParseLevel converts the level name into zerolog.Level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level: %s", level)
}

// New builds a logger writing to out by the config.
func New(out io.Writer, config Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var w io.Writer = out
	switch config.Format {
	case "", "json":
	case "text":
		w = zerolog.ConsoleWriter{Out: out}
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unknown log format: %s", config.Format)
	}

	var closer io.Closer = nopCloser{}
	if config.File != "" {
		rotate := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = io.MultiWriter(w, rotate)
		closer = rotate
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closer, nil
}

// Setup replaces the global logger with one built by New on stderr.
func Setup(config Config) (io.Closer, error) {
	logger, closer, err := New(os.Stderr, config)
	if err != nil {
		return nil, err
	}
	log.Logger = logger
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
