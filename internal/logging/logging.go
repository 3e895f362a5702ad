// Package logging configures the zerolog logger shared by wablast components.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()
)

// Setup configures the global logger level and optional file sink.
// Level is one of trace, debug, info, warn, error; unknown values fall back
// to info. When filePath is non-empty, log lines are written there as JSON
// in addition to the console.
func Setup(level, filePath string) error {
	parsed := parseLevel(level)

	writers := []io.Writer{consoleWriter(os.Stderr)}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	mu.Lock()
	root = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parsed).
		With().
		Timestamp().
		Logger()
	mu.Unlock()
	return nil
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}

func consoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
