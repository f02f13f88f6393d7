// Package log provides helpers for creating a configured slog.Logger and
// the per-message progress reporter used by the generate command.
//
// Without a log file, records below error level go to stdout and errors to
// stderr. With a log file, the console only receives errors and the file
// receives everything at the configured level.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LevelTrace defines a custom slog level below Debug for very verbose output.
const LevelTrace slog.Level = -8

// Options mirrors the --log.* flags.
type Options struct {
	Level  string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"MAVGEN_LOG_LEVEL"`
	Format string `help:"Log format" default:"text" enum:"text,json" env:"MAVGEN_LOG_FORMAT"`
	File   string `help:"Also write logs to this file" env:"MAVGEN_LOG_FILE"`
	Quiet  bool   `help:"Suppress per-message progress lines" env:"MAVGEN_QUIET"`
}

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter delegates to an underlying handler but filters which levels are
// passed to it using the provided predicate.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewLogger builds a logger writing to the given console streams.
func NewLogger(opts Options, stdout, stderr io.Writer) *slog.Logger {
	level := ParseLevel(opts.Level)
	belowError := func(l slog.Level) bool { return l < slog.LevelError }
	errorsOnly := func(l slog.Level) bool { return l >= slog.LevelError }

	return slog.New(MultiHandler{hs: []slog.Handler{
		LevelFilter{pass: belowError, h: newHandler(stdout, opts.Format, level)},
		LevelFilter{pass: errorsOnly, h: newHandler(stderr, opts.Format, slog.LevelError)},
	}})
}

// SetupLogger builds the process logger. The returned closers must be closed on exit.
func SetupLogger(opts Options) (*slog.Logger, []io.Closer, error) {
	if opts.File == "" {
		return NewLogger(opts, os.Stdout, os.Stderr), nil, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := ParseLevel(opts.Level)
	logger := slog.New(MultiHandler{hs: []slog.Handler{
		newHandler(os.Stderr, opts.Format, slog.LevelError),
		newHandler(f, opts.Format, level),
	}})
	return logger, []io.Closer{f}, nil
}
