// Package obs wraps zerolog the way jhkimqd-chaos-utils's reporting
// package does: a small Logger type carrying level and format, built once
// at startup and threaded through the orchestrator and device layers
// instead of reached for globally.
package obs

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Level is a logging level, matching zerolog's own four in common use here.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the wire shape of emitted log lines.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format // zero value auto-detects: console on a TTY, JSON otherwise
	Output io.Writer
}

// Logger is a thin structured-logging wrapper around zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	format := cfg.Format
	if format == "" {
		format = autoFormat(out)
	}
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).With().Timestamp().Logger().Level(levelOf(cfg.Level))
	return &Logger{zl: zl}
}

func autoFormat(out io.Writer) Format {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return FormatConsole
	}
	return FormatJSON
}

func levelOf(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child Logger carrying one additional structured field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }

// Err logs msg at error level with err attached under the "error" key.
func (l *Logger) Err(err error, msg string) { l.zl.Error().Err(err).Msg(msg) }

// Zerolog exposes the underlying logger for callers that need an event
// builder with more fields than With's one-at-a-time form allows.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
