// Package logging holds the process-wide structured logger.
//
// Records go to stderr in console form and, when a file is configured, to a
// size-rotated JSON log. Every record of a run carries the same run_id.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()
)

// Options configures Init.
type Options struct {
	Level      string    // debug, info, warn, error (default warn)
	File       string    // optional rotated JSON log file
	MaxSizeMB  int       // rotate after this size (default 10)
	MaxBackups int       // rotated files kept (default 3)
	MaxAgeDays int       // days a rotated file is kept (default 28)
	Console    io.Writer // console sink (default os.Stderr, nil-safe)
	NoColor    bool
}

// Init replaces the process logger and returns the run identifier stamped
// on every record. The returned closer flushes the log file, if any.
func Init(opts Options) (runID string, closer io.Closer) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, NoColor: opts.NoColor, TimeFormat: "15:04:05"}}
	closer = nopCloser{}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   false,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	runID = xid.New().String()
	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(opts.Level)).
		With().Timestamp().Str("run_id", runID).Logger()

	mu.Lock()
	logger = l
	mu.Unlock()
	return runID, closer
}

// SetLoggerForTest swaps the process logger.
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// ValidLevel reports whether Init accepts level by name.
func ValidLevel(level string) bool {
	switch level {
	case "", "debug", "info", "warn", "error":
		return true
	}
	return false
}

func Debug(msg string, kv ...any) { emit(zerolog.DebugLevel, msg, kv) }
func Info(msg string, kv ...any)  { emit(zerolog.InfoLevel, msg, kv) }
func Warn(msg string, kv ...any)  { emit(zerolog.WarnLevel, msg, kv) }
func Error(msg string, kv ...any) { emit(zerolog.ErrorLevel, msg, kv) }

func emit(level zerolog.Level, msg string, kv []any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	e := l.WithLevel(level)
	if e == nil {
		return
	}
	if len(kv) > 0 {
		e = e.Fields(kv)
	}
	e.Msg(msg)
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
