package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Level is the minimum severity that gets written
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Unknown values are Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stdout)
}

// SetLevel changes the process-wide log level
func SetLevel(l Level) {
	level.Set(l.slogLevel())
}

// SetOutput redirects log output, mostly useful in tests
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger.Store(slog.New(h))
}

func log(l slog.Level, msg string, args ...any) {
	logger.Load().Log(context.Background(), l, msg, args...)
}

func Debug(msg string, args ...any) { log(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)  { log(slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any)  { log(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { log(slog.LevelError, msg, args...) }

func Debugf(format string, args ...any) { log(slog.LevelDebug, fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { log(slog.LevelInfo, fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { log(slog.LevelWarn, fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { log(slog.LevelError, fmt.Sprintf(format, args...)) }

// Fatal logs at error level and exits the process
func Fatal(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
	os.Exit(1)
}

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	log(slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}
