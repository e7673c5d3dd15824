// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the structured logger used across the engine.
// Call sites attach context as alternating key/value pairs.
package log

import (
	"io"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const timeLayout = "15:04:05.000000"

// Level is the logging verbosity level.
type Level logrus.Level

const (
	TraceLevel = Level(logrus.TraceLevel)
	DebugLevel = Level(logrus.DebugLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
)

func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return InfoLevel, errors.Errorf("unknown log level %q", s)
}

// Logger writes leveled log records with bound context.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// New returns a child logger with additional bound context.
	New(ctx ...any) Logger
}

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: timeLayout,
		FullTimestamp:   true,
		ForceColors:     isatty.IsTerminal(os.Stderr.Fd()),
	})
	return l
}

// SetLevel sets the global verbosity level.
func SetLevel(lvl Level) {
	root.SetLevel(logrus.Level(lvl))
}

// GetLevel returns the global verbosity level.
func GetLevel() Level {
	return Level(root.GetLevel())
}

// SetOutput redirects the log output.
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// WithContext returns a logger with the given context bound.
func WithContext(ctx ...any) Logger {
	return &logger{logrus.NewEntry(root).WithFields(fields(ctx))}
}

// Trace logs on the root logger.
func Trace(msg string, ctx ...any) { logrus.NewEntry(root).WithFields(fields(ctx)).Trace(msg) }

// Debug logs on the root logger.
func Debug(msg string, ctx ...any) { logrus.NewEntry(root).WithFields(fields(ctx)).Debug(msg) }

// Info logs on the root logger.
func Info(msg string, ctx ...any) { logrus.NewEntry(root).WithFields(fields(ctx)).Info(msg) }

// Warn logs on the root logger.
func Warn(msg string, ctx ...any) { logrus.NewEntry(root).WithFields(fields(ctx)).Warn(msg) }

// Error logs on the root logger.
func Error(msg string, ctx ...any) { logrus.NewEntry(root).WithFields(fields(ctx)).Error(msg) }

type logger struct {
	entry *logrus.Entry
}

func (l *logger) Trace(msg string, ctx ...any) { l.entry.WithFields(fields(ctx)).Trace(msg) }
func (l *logger) Debug(msg string, ctx ...any) { l.entry.WithFields(fields(ctx)).Debug(msg) }
func (l *logger) Info(msg string, ctx ...any)  { l.entry.WithFields(fields(ctx)).Info(msg) }
func (l *logger) Warn(msg string, ctx ...any)  { l.entry.WithFields(fields(ctx)).Warn(msg) }
func (l *logger) Error(msg string, ctx ...any) { l.entry.WithFields(fields(ctx)).Error(msg) }

func (l *logger) New(ctx ...any) Logger {
	return &logger{l.entry.WithFields(fields(ctx))}
}

// fields converts alternating key/value pairs into logrus fields.
func fields(ctx []any) logrus.Fields {
	f := make(logrus.Fields, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		f[key] = ctx[i+1]
	}
	if len(ctx)%2 != 0 {
		f["!DANGLING"] = ctx[len(ctx)-1]
	}
	return f
}
