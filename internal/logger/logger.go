package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the leveled logger used across the worker. Context is accepted
// on every call so implementations can pick up request-scoped values later
// without changing call sites.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
}

type implLogger struct {
	entry *logrus.Entry
}

// New creates a Logger backed by logrus. Local environments get a
// full-timestamp text formatter, everything else emits JSON for the log
// aggregator.
func New(level string) Logger {
	base := logrus.New()

	env := os.Getenv("APP_ENV")
	if env == "" || env == "dev" || env == "local" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	}

	base.SetOutput(os.Stdout)

	switch strings.ToLower(level) {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &implLogger{entry: logrus.NewEntry(base)}
}

// WithFields returns a Logger that attaches the given fields to every line.
// Used to bind job_id/user_id for the lifetime of a job.
func (l *implLogger) WithFields(fields map[string]interface{}) Logger {
	return &implLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry.Errorf(msg, args...)
}
