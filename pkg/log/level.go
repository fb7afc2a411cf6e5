package log

import (
	"errors"
	"strings"
)

// Level is the severity of a log entry.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Fatal
)

var levelNames = map[Level]string{
	Trace: "TRACE",
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

// ErrInvalidLevel is returned when parsing an unknown level string.
var ErrInvalidLevel = errors.New("invalid log level")

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a case-insensitive level name. Unknown names yield Info and ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		name = "WARN"
	}
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return Info, ErrInvalidLevel
}

// Enables reports whether a logger at level l emits entries at target.
func (l Level) Enables(target Level) bool {
	return target >= l
}
