package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"pdf-processing-service/internal/domain"
)

// AppLogger implements the domain.Logger interface on top of zerolog.
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance. format selects between
// "console" (human readable) and "json" output.
func NewLogger(levelStr, format string) domain.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if strings.ToLower(format) != "json" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"})
	}

	return &AppLogger{
		logger: out.Level(level).With().Timestamp().Logger(),
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.emit(l.logger.Info(), msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	l.emit(l.logger.Error().Err(err), msg, fields...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.emit(l.logger.Debug(), msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.emit(l.logger.Warn(), msg, fields...)
}

// emit attaches variadic key-value pairs to the event and fires it.
// Odd trailing keys are dropped rather than logged half-formed.
func (l *AppLogger) emit(event *zerolog.Event, msg string, fields ...interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}
