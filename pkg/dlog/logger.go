package dlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with convenience methods
type Logger struct {
	*slog.Logger
}

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// simpleHandler formats logs in a clean, terminal-friendly way
type simpleHandler struct {
	level  slog.Level
	output io.Writer
	attrs  []slog.Attr
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *simpleHandler) Handle(_ context.Context, r slog.Record) error {
	// Format: <icon> message key=value, key=value
	var b strings.Builder

	switch {
	case r.Level >= slog.LevelError:
		b.WriteString("❌ ")
	case r.Level >= slog.LevelWarn:
		b.WriteString("⚠️  ")
	case r.Level >= slog.LevelInfo:
		b.WriteString("ℹ️  ")
	default:
		b.WriteString("🔍 ")
	}

	b.WriteString(r.Message)

	first := true
	write := func(a slog.Attr) bool {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	b.WriteString("\n")
	_, err := io.WriteString(h.output, b.String())
	return err
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &simpleHandler{level: h.level, output: h.output, attrs: merged}
}

func (h *simpleHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened in this handler
	return h
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New creates a logger from Options. JSON output is meant for production
// log collectors, text output for terminals.
func New(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	level := ParseLevel(opts.Level)

	if strings.EqualFold(opts.Format, FormatJSON) {
		return &Logger{
			Logger: slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})),
		}
	}
	return NewLogger(level, output)
}

// NewLogger creates a new text logger with the specified level and output
func NewLogger(level slog.Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	handler := &simpleHandler{
		level:  level,
		output: output,
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewDefault creates a logger with INFO level
func NewDefault() *Logger {
	return NewLogger(slog.LevelInfo, os.Stdout)
}

// NewQuiet creates a logger with WARN level (suppresses info/debug)
func NewQuiet() *Logger {
	return NewLogger(slog.LevelWarn, os.Stdout)
}

// NewVerbose creates a logger with DEBUG level
func NewVerbose() *Logger {
	return NewLogger(slog.LevelDebug, os.Stdout)
}

// NewDiscard creates a logger that drops everything.
func NewDiscard() *Logger {
	return NewLogger(slog.LevelError+1, io.Discard)
}

// With returns a Logger that includes the given attributes in every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Fatalf formats and logs at ERROR level, then exits with code 1
func (l *Logger) Fatalf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
