package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a named logger. All loggers share one output and format, which
// can be changed at runtime with SetOutput and SetJSON.
type Logger struct {
	name   string
	fields []field
}

type field struct {
	key   string
	value any
}

// writerHolder wraps an io.Writer so that atomic.Value always stores the same
// concrete type.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug  atomic.Bool
	jsonOutput   atomic.Bool
	serviceDebug sync.Map // map[string]*atomic.Bool
	loggers      sync.Map // map[string]*Logger
	outputWriter atomic.Value
)

func init() {
	outputWriter.Store(writerHolder{w: os.Stderr})
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// ForService returns (and memoizes) a named logger for the given service.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	actual, _ := loggers.LoadOrStore(name, &Logger{name: name})
	return actual.(*Logger)
}

// With returns a child logger carrying an extra structured field. Children
// are not memoized.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]field, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	return &Logger{name: l.name, fields: append(fields, field{key: key, value: value})}
}

// Name returns the service name of the logger.
func (l *Logger) Name() string {
	return l.name
}

// SetGlobalDebug enables or disables debug logging globally.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// GlobalDebug returns whether global debug logging is enabled.
func GlobalDebug() bool {
	return globalDebug.Load()
}

// EnableDebugFor enables debug logging for a specific service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	val, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	val.(*atomic.Bool).Store(true)
}

// DisableDebugFor disables debug logging for a specific service.
func DisableDebugFor(name string) {
	if name == "" {
		return
	}
	if val, ok := serviceDebug.Load(name); ok {
		val.(*atomic.Bool).Store(false)
	}
}

// DebugEnabledFor returns whether debug is enabled for the given service
// (either globally or specifically for the service).
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if val, ok := serviceDebug.Load(name); ok {
		return val.(*atomic.Bool).Load()
	}
	return false
}

// ResetDebug disables debug logging globally and for every service.
func ResetDebug() {
	globalDebug.Store(false)
	serviceDebug.Range(func(_, v any) bool {
		v.(*atomic.Bool).Store(false)
		return true
	})
}

// SetOutput sets the output writer for all loggers.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	outputWriter.Store(writerHolder{w: w})
}

// SetJSON switches between JSON lines (true) and console output (false).
func SetJSON(enabled bool) {
	jsonOutput.Store(enabled)
}

func (l *Logger) backend() zerolog.Logger {
	w := outputWriter.Load().(writerHolder).w
	if !jsonOutput.Load() {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: "2006/01/02 15:04:05.000000",
		}
	}
	ctx := zerolog.New(w).With().Timestamp().Str("service", l.name)
	for _, f := range l.fields {
		ctx = ctx.Interface(f.key, f.value)
	}
	return ctx.Logger()
}

func (l *Logger) prefix() string {
	return "[" + l.name + ">]"
}

func (l *Logger) emit(level zerolog.Level, msg string) {
	z := l.backend()
	if !jsonOutput.Load() {
		msg = l.prefix() + " " + msg
	}
	z.WithLevel(level).Msg(msg)
}

// Infof logs an informational message with fmt.Sprintf semantics.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(zerolog.InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(zerolog.WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(zerolog.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message if debug is enabled (globally or for this logger's service).
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(zerolog.DebugLevel, fmt.Sprintf(format, args...))
}
