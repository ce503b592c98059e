// Package log provides a simple wrapper around logrus
// with a familiar API (Infof, Errorf, etc.) that reads request and thread ids from the context.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	logcontext "github.com/va6996/mcpworkshop/context"
)

// Logger is the global logger instance
var Logger = logrus.New()

// CustomFormatter implements logrus.Formatter for the desired output format
type CustomFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as [<time>] [LEVEL] [file:line] <message> [req:<id>] k=v
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "[%s] ", entry.Time.Format(f.TimestampFormat))
	fmt.Fprintf(b, "[%s] ", strings.ToUpper(entry.Level.String()))

	if file, line := callerFrame(); file != "" {
		fmt.Fprintf(b, "[%s:%d] ", file, line)
	}

	b.WriteString(entry.Message)

	if requestID, ok := entry.Data["request_id"].(string); ok && requestID != "" {
		fmt.Fprintf(b, " [req:%s]", requestID)
	}

	// Stable field order keeps lines diffable
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "request_id" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(b, " %s=%v", key, entry.Data[key])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// callerFrame walks the stack past logrus and this package to the real call site
func callerFrame() (string, int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		skip := strings.Contains(frame.File, "github.com/sirupsen/logrus") ||
			strings.HasSuffix(frame.File, "log/log.go") ||
			strings.Contains(frame.File, "runtime/")
		if !skip {
			parts := strings.Split(frame.File, "/")
			return parts[len(parts)-1], frame.Line
		}
		if !more {
			return "", 0
		}
	}
}

// entry builds a logrus entry carrying the ids found in ctx
func entry(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return logrus.NewEntry(Logger)
	}
	e := Logger.WithField("request_id", logcontext.RequestIDFromContext(ctx))
	if threadID, ok := ctx.Value(logcontext.ThreadIDKey).(string); ok && threadID != "" {
		e = e.WithField("thread", threadID)
	}
	return e
}

// Infof logs formatted message at info level
func Infof(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Infof(format, args...)
}

// Info logs a message at info level
func Info(ctx context.Context, args ...interface{}) {
	entry(ctx).Info(args...)
}

// Debugf logs formatted message at debug level
func Debugf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Debugf(format, args...)
}

// Debug logs a message at debug level
func Debug(ctx context.Context, args ...interface{}) {
	entry(ctx).Debug(args...)
}

// Warnf logs formatted message at warning level
func Warnf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Warnf(format, args...)
}

// Warn logs a message at warning level
func Warn(ctx context.Context, args ...interface{}) {
	entry(ctx).Warn(args...)
}

// Errorf logs formatted message at error level
func Errorf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Errorf(format, args...)
}

// Error logs a message at error level
func Error(ctx context.Context, args ...interface{}) {
	entry(ctx).Error(args...)
}

// Fatalf logs formatted message at fatal level and exits
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Fatalf(format, args...)
}

// SetLevel sets the global log level
func SetLevel(level logrus.Level) {
	Logger.SetLevel(level)
}

// SetLevelFromString parses a level name such as "debug" and applies it.
// Unknown names leave the logger at info.
func SetLevelFromString(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}

// SetOutput sets the global log output
func SetOutput(out io.Writer) {
	Logger.SetOutput(out)
}

// Init initializes the logger with default settings
func Init() {
	Logger.SetFormatter(&CustomFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(logrus.InfoLevel)
}

// WithField creates a logger with predefined field
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}
