// Package logging provides the leveled logger used throughout desktopclean.
package logging

import (
	"fmt"
	"io"
	"log"
)

// Level is the severity of a log line
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the prefix printed for the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// Logger is what the cleaning stages log through
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// PrefixFunc renders the level prefix, e.g. to colour it
type PrefixFunc func(Level) string

// StdLogger writes "LEVEL: message" lines through a log.Logger
type StdLogger struct {
	out     *log.Logger
	verbose bool
	prefix  PrefixFunc
}

// New creates a logger writing to w. Debug lines are dropped unless verbose.
func New(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{
		out:     log.New(w, "", 0),
		verbose: verbose,
		prefix:  func(l Level) string { return l.String() },
	}
}

// WithPrefix returns a copy of the logger that renders prefixes with fn
func (l *StdLogger) WithPrefix(fn PrefixFunc) *StdLogger {
	cp := *l
	cp.prefix = fn
	return &cp
}

// Verbose reports whether debug lines are written
func (l *StdLogger) Verbose() bool {
	return l.verbose
}

func (l *StdLogger) logf(level Level, format string, args ...interface{}) {
	if level == LevelDebug && !l.verbose {
		return
	}
	l.out.Printf("%s: %s", l.prefix(level), fmt.Sprintf(format, args...))
}

func (l *StdLogger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *StdLogger) Infof(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *StdLogger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *StdLogger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Discard is a Logger that drops everything
var Discard Logger = New(io.Discard, false)
