package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonwraymond/simcache/clock"
)

// Logger is a minimal structured logging interface.
//
// Contract:
//   - Concurrency: safe for concurrent use, except that a logger bound with
//     WithTick reads its Source on every call and inherits the Source's
//     threading rules.
//   - Errors: logging is best-effort and never panics.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)

	// WithOp returns a logger that tags every line with meta.
	WithOp(meta OpMeta) Logger

	// WithTick returns a logger that stamps every line with src.Now().
	WithTick(src clock.Source) Logger
}

// Field is one structured log attribute.
type Field struct {
	Key   string
	Value any
}

// LogLevel is a logging threshold.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func lookupLevel(s string) (LogLevel, bool) {
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l), true
		}
	}
	return LevelInfo, false
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	l, _ := lookupLevel(s)
	return l
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return levelNames[LevelInfo]
	}
	return levelNames[l]
}

// jsonLogger writes one JSON object per line. Derived loggers share the
// writer and its lock.
type jsonLogger struct {
	level LogLevel
	out   *lockedWriter
	attrs []Field
	tick  clock.Source
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) write(p []byte) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, _ = lw.w.Write(p)
}

// NewLogger returns a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter returns a JSON logger writing to w.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &jsonLogger{level: ParseLogLevel(level), out: &lockedWriter{w: w}}
}

func (l *jsonLogger) derive(extra ...Field) *jsonLogger {
	attrs := make([]Field, 0, len(l.attrs)+len(extra))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, extra...)
	return &jsonLogger{level: l.level, out: l.out, attrs: attrs, tick: l.tick}
}

func (l *jsonLogger) WithOp(meta OpMeta) Logger {
	fields := []Field{{Key: "op.name", Value: meta.Name}}
	if meta.Kind != "" {
		fields = append(fields, Field{Key: "op.kind", Value: meta.Kind})
	}
	if meta.Axis != "" {
		fields = append(fields, Field{Key: "op.axis", Value: meta.Axis})
	}
	return l.derive(fields...)
}

func (l *jsonLogger) WithTick(src clock.Source) Logger {
	d := l.derive()
	d.tick = src
	return d
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *jsonLogger) log(_ context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.attrs)+len(fields)+4)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg
	if l.tick != nil {
		entry["tick"] = int64(l.tick.Now())
	}
	for _, f := range l.attrs {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.out.write(append(data, '\n'))
}

type nopLogger struct{}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Info(context.Context, string, ...Field)  {}
func (nopLogger) Warn(context.Context, string, ...Field)  {}
func (nopLogger) Error(context.Context, string, ...Field) {}
func (nopLogger) Debug(context.Context, string, ...Field) {}
func (l nopLogger) WithOp(OpMeta) Logger                  { return l }
func (l nopLogger) WithTick(clock.Source) Logger          { return l }

var (
	_ Logger = (*jsonLogger)(nil)
	_ Logger = nopLogger{}
)
