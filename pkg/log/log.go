// Package log provides structured logging for the analysis pipeline,
// backed by zerolog.
//
// Components obtain a named Logger and attach context once:
//
//	logger := log.GetLoggerWithName("regression").With(
//	    log.ModelNameKey, "OLS",
//	)
//	logger.Info("fit complete", log.SamplesKey, n, log.FeaturesKey, p)
//
// The package-level logger writes to stderr so that report output on
// stdout stays machine-readable.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level aliases zerolog's level type.
type Level = zerolog.Level

// ToLogLevel parses a level name. Unknown names fall back to info.
func ToLogLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger is the leveled key/value logging interface used by estimators
// and pipeline stages. Keys come in pairs: key1, value1, key2, value2.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// With returns a child logger carrying the given fields on every entry.
	With(keysAndValues ...interface{}) Logger
}

// LoggerProvider hands out named loggers. Packages that must not depend
// on the global logger accept a provider instead.
type LoggerProvider interface {
	GetLoggerWithName(name string) Logger
}

type zerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider returns a LoggerProvider emitting JSON to stderr
// at the given level.
func NewZerologProvider(level Level) LoggerProvider {
	base := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return &zerologProvider{base: base}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	zl := p.base.With().Str(LoggerNameKey, name).Logger()
	return &zerologLogger{zl: zl}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, kv ...interface{}) { emit(l.zl.Debug(), msg, kv) }
func (l *zerologLogger) Info(msg string, kv ...interface{})  { emit(l.zl.Info(), msg, kv) }
func (l *zerologLogger) Warn(msg string, kv ...interface{})  { emit(l.zl.Warn(), msg, kv) }
func (l *zerologLogger) Error(msg string, kv ...interface{}) { emit(l.zl.Error(), msg, kv) }

func (l *zerologLogger) With(kv ...interface{}) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(kv); i += 2 {
		ctx = ctx.Interface(toKey(kv[i]), kv[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		ev = ev.Interface(toKey(kv[i]), kv[i+1])
	}
	ev.Msg(msg)
}

func toKey(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// SetupLogger configures the package-level logger for CLI use: console
// formatting on stderr at the named level. Call once at startup.
func SetupLogger(level string) {
	SetupLoggerWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination,
// used by tests to capture output.
func SetupLoggerWithWriter(level string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	global = zerolog.New(w).Level(ToLogLevel(level)).With().Timestamp().Logger()
}

// GetLogger returns a copy of the raw package-level zerolog logger for
// call sites that want zerolog's fluent API directly.
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := global
	return &l
}

// GetLoggerWithName returns a named Logger backed by the package-level
// logger.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	zl := global.With().Str(LoggerNameKey, name).Logger()
	return &zerologLogger{zl: zl}
}

// LogError logs err at error level with a short context message.
func LogError(err error, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	global.Error().Err(err).Msg(msg)
}
