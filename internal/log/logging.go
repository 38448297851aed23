// Package log builds the process-wide slog.Logger and the raw
// input_event hex-dumper that cmd/layerz wires up from its log-level,
// log-file and raw-log CLI flags, and is the single place that decides
// where each destination's bytes go.
//
// When a log file path is not provided, logs are written to stdout for
// non-error levels and to stderr for errors, so stderr can be used for
// error redirection while keeping normal logs on stdout. The raw dumper
// defaults to stdout whenever trace level is selected, so a single
// `--log-level trace` is enough to see the wire without a second flag;
// an explicit raw log file always wins over that default.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gwenzek/layerz/internal/ievent"
)

// LevelTrace sits below slog.LevelDebug: nothing above it cares about
// individual input_event records, only LevelTrace does.
const LevelTrace slog.Level = -8

// ParseLevel maps a CLI-facing level name to its slog.Level. An
// unrecognized name falls back to Info rather than refusing to start.
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

// tee fans a record out to every handler whose own Enabled reports
// true, so each destination keeps its own threshold instead of sharing
// one level gate.
type tee struct{ hs []slog.Handler }

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range t.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(t.hs))
	for i, h := range t.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return tee{hs: out}
}

func (t tee) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(t.hs))
	for i, h := range t.hs {
		out[i] = h.WithGroup(name)
	}
	return tee{hs: out}
}

// belowError wraps h so it only ever sees levels under Error, for the
// stdout side of the no-log-file console split.
type belowError struct{ h slog.Handler }

func (b belowError) Enabled(ctx context.Context, level slog.Level) bool {
	return level < slog.LevelError && b.h.Enabled(ctx, level)
}
func (b belowError) Handle(ctx context.Context, r slog.Record) error { return b.h.Handle(ctx, r) }
func (b belowError) WithAttrs(attrs []slog.Attr) slog.Handler       { return belowError{b.h.WithAttrs(attrs)} }
func (b belowError) WithGroup(name string) slog.Handler             { return belowError{b.h.WithGroup(name)} }

// atOrAboveError is belowError's complement, for the stderr side.
type atOrAboveError struct{ h slog.Handler }

func (a atOrAboveError) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelError && a.h.Enabled(ctx, level)
}
func (a atOrAboveError) Handle(ctx context.Context, r slog.Record) error { return a.h.Handle(ctx, r) }
func (a atOrAboveError) WithAttrs(attrs []slog.Attr) slog.Handler {
	return atOrAboveError{a.h.WithAttrs(attrs)}
}
func (a atOrAboveError) WithGroup(name string) slog.Handler { return atOrAboveError{a.h.WithGroup(name)} }

// SetupLogger builds the structured logger alone, for callers that have
// no use for the raw dumper (tests, mostly). Production entrypoints use
// SetupLogging instead.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	var handlers []slog.Handler

	if logFile == "" {
		handlers = append(handlers,
			belowError{slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})},
			atOrAboveError{slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})},
		)
		return slog.New(tee{hs: handlers}), nil, nil
	}

	handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return slog.New(tee{hs: handlers}), []io.Closer{f}, nil
}

// SetupLogging builds the structured logger and the raw wire-event
// dumper together, since the two CLI flags that configure them
// (log level/file, raw log file) interact: trace level alone is enough
// to enable the dumper even without an explicit raw log file.
func SetupLogging(logLevel, logFile, rawLogFile string) (*slog.Logger, RawLogger, []io.Closer, error) {
	logger, closers, err := SetupLogger(logLevel, logFile)
	if err != nil {
		return nil, nil, nil, err
	}

	var raw RawLogger
	switch {
	case rawLogFile != "":
		f, err := os.OpenFile(rawLogFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", rawLogFile, "error", err)
			raw = NewRaw(nil)
			break
		}
		closers = append(closers, f)
		raw = NewRaw(f)
	case ParseLevel(logLevel) <= LevelTrace:
		raw = NewRaw(os.Stdout)
	default:
		raw = NewRaw(nil)
	}
	return logger, raw, closers, nil
}

// RawLogger hex-dumps every event crossing the provider boundary, for
// trace-level diagnosis of a misbehaving layout or adapter.
type RawLogger interface {
	LogRead(e ievent.Event)
	LogWrite(e ievent.Event)
}

// rawLogger implements RawLogger with a thread-safe writer, since the
// evdev read side and the uinput write side may run on different
// goroutines in some adapters even though the core itself is single
// threaded.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing to w. If w is nil, the returned
// logger is a no-op.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

func (r *rawLogger) LogRead(e ievent.Event) { r.log(true, e) }

func (r *rawLogger) LogWrite(e ievent.Event) { r.log(false, e) }

func (r *rawLogger) log(in bool, e ievent.Event) {
	if r.w == nil {
		return
	}

	dir := "OUT"
	if in {
		dir = "IN "
	}

	b, err := e.MarshalBinary()
	if err != nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, c := range b {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[c>>4])
		hexbuf.WriteByte(hexdigits[c&0x0f])
	}

	line := fmt.Sprintf("%s %s %s hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05.000"),
		dir,
		e.String(),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
