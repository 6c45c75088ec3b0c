// Package log provides structured key/value logging for the whole binary.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/paularlott/logger"
	logzerolog "github.com/paularlott/logger/zerolog"
)

var (
	mu            sync.RWMutex
	defaultLogger = newLogger(os.Stderr, "info", "console")
)

// Configure sets the global log level and output format.
// Level is one of trace, debug, info, warn, error. Format is console or json.
func Configure(level, format string) {
	ConfigureOutput(os.Stderr, level, format)
}

// ConfigureOutput is Configure with an explicit writer.
func ConfigureOutput(w io.Writer, level, format string) {
	l := newLogger(w, level, format)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func newLogger(w io.Writer, level, format string) logger.Logger {
	format = strings.ToLower(format)
	if format != "json" {
		format = "console"
	}
	return logzerolog.New(logzerolog.Config{
		Level:  strings.ToLower(level),
		Format: format,
		Writer: w,
	})
}

// GetLogger returns the current global logger for components that take a
// logger.Logger.
func GetLogger() logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func Trace(msg string, keyvals ...any) { GetLogger().Trace(msg, fields(keyvals)...) }
func Debug(msg string, keyvals ...any) { GetLogger().Debug(msg, fields(keyvals)...) }
func Info(msg string, keyvals ...any)  { GetLogger().Info(msg, fields(keyvals)...) }
func Warn(msg string, keyvals ...any)  { GetLogger().Warn(msg, fields(keyvals)...) }
func Error(msg string, keyvals ...any) { GetLogger().Error(msg, fields(keyvals)...) }

func With(key string, value any) logger.Logger { return GetLogger().With(key, field(value)) }
func WithError(err error) logger.Logger        { return GetLogger().WithError(err) }
func WithGroup(group string) logger.Logger     { return GetLogger().WithGroup(group) }

// fields makes keyvals safe for the zerolog backend, which encodes values
// with encoding/json and drops non-string keys. Errors become their message
// and a trailing key without a value is logged under "!BADKEY".
func fields(keyvals []any) []any {
	out := make([]any, 0, len(keyvals)+1)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if i+1 >= len(keyvals) {
			out = append(out, "!BADKEY", key)
			break
		}
		out = append(out, key, field(keyvals[i+1]))
	}
	return out
}

func field(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}
