package log

import (
	"encoding/json"
	"time"
)

// Entry is a single structured log record.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RequestID string
	User      string // Handle of the acting user, if known
	Message   string
	Fields    map[string]any
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With sets alternating key/value pairs on the entry. Non-string keys are skipped.
func (e *Entry) With(keysAndValues ...any) *Entry {
	mergePairs(e.Fields, keysAndValues)
	return e
}

// MarshalJSON flattens fields into the top-level object and omits empty metadata.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+6)
	for k, v := range e.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[k] = v
	}

	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339Nano)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}
	if e.User != "" {
		m["user"] = e.User
	}

	return json.Marshal(m)
}

func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}
