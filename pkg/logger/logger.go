package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const LevelCritical = slog.Level(12)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError records an expected domain failure (bad input, missing
	// permission, expired invitation) at WARN.
	BusinessError(message string, err error, args ...any)
	// InternalError records an unexpected failure at ERROR.
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

var levelNames = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	base *slog.Logger
}

// NewFromEnv reads LOG_LEVEL, LOG_FORMAT and ENV. Development defaults to
// debug output, everything else to info.
func NewFromEnv() Logger {
	env := normalize(os.Getenv("ENV"))
	return New(os.Stdout, parseLevel(os.Getenv("LOG_LEVEL"), env), os.Getenv("LOG_FORMAT"))
}

// New builds a logger writing to output. Format "text" is the colored tint
// handler for terminals; anything else is JSON.
func New(output io.Writer, level slog.Level, format string) Logger {
	var handler slog.Handler
	if normalize(format) == "text" {
		handler = tint.NewHandler(output, &tint.Options{
			Level:       level,
			TimeFormat:  time.Kitchen,
			ReplaceAttr: labelCritical,
		})
	} else {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: labelCritical,
		})
	}
	return &slogLogger{base: slog.New(handler)}
}

func Nop() Logger {
	return New(io.Discard, LevelCritical+1, "json")
}

func (l *slogLogger) Debug(message string, args ...any) { l.log(slog.LevelDebug, message, args) }
func (l *slogLogger) Info(message string, args ...any)  { l.log(slog.LevelInfo, message, args) }
func (l *slogLogger) Warn(message string, args ...any)  { l.log(slog.LevelWarn, message, args) }
func (l *slogLogger) Error(message string, args ...any) { l.log(slog.LevelError, message, args) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.log(LevelCritical, message, args)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) log(level slog.Level, message string, args []any) {
	l.base.Log(context.Background(), level, message, args...)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.log(level, message, append([]any{"err", err}, args...))
}

func parseLevel(value, env string) slog.Level {
	if level, ok := levelNames[normalize(value)]; ok {
		return level
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func labelCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}
