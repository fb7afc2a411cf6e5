// Package log is a small leveled, structured logger that writes JSON lines
// through pluggable transporters and picks request metadata from context.
package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

const defaultBufferSize = 1000

// Logger writes entries at or above its level.
type Logger struct {
	level      *levelVar
	buffer     *Buffer
	baseFields map[string]any
}

type levelVar struct {
	mu    sync.RWMutex
	level Level
}

func (v *levelVar) get() Level {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.level
}

func (v *levelVar) set(l Level) {
	v.mu.Lock()
	v.level = l
	v.mu.Unlock()
}

// New creates a logger that sends entries to the given transporters.
func New(level Level, transporters ...Transporter) *Logger {
	return &Logger{
		level:      &levelVar{level: level},
		buffer:     NewBuffer(defaultBufferSize, transporters...),
		baseFields: map[string]any{},
	}
}

// SetLevel changes the minimum level for this logger and its children.
func (l *Logger) SetLevel(level Level) {
	l.level.set(level)
}

// With returns a child logger that adds the given pairs to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := make(map[string]any, len(l.baseFields)+len(keysAndValues)/2)
	for k, v := range l.baseFields {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return &Logger{level: l.level, buffer: l.buffer, baseFields: fields}
}

// Close flushes pending entries.
func (l *Logger) Close() {
	l.buffer.Close()
}

func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues []any) {
	if !l.level.get().Enables(level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = caller(3)
	for k, v := range l.baseFields {
		entry.Fields[k] = v
	}
	if ctx != nil {
		entry.RequestID = RequestIDFromContext(ctx)
		entry.User = UserFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}
	mergePairs(entry.Fields, keysAndValues)

	l.buffer.Send(*entry)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) Debug(msg string, kv ...any) { l.log(nil, Debug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(nil, Info, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(nil, Warn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(nil, Error, msg, kv) }

// Fatal logs at Fatal level. Exiting is left to the caller.
func (l *Logger) Fatal(msg string, kv ...any) { l.log(nil, Fatal, msg, kv) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Debug, msg, kv) }
func (l *Logger) InfoCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Info, msg, kv) }
func (l *Logger) WarnCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Warn, msg, kv) }
func (l *Logger) ErrorCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Error, msg, kv) }

// --- Global Logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	discard      = &Logger{
		level:      &levelVar{level: Fatal + 1},
		buffer:     NewBuffer(1),
		baseFields: map[string]any{},
	}
)

// SetDefault installs the process-wide logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the process-wide logger, or a logger that discards everything.
func Default() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return discard
	}
	return globalLogger
}

// Global helpers call log directly so the caller depth matches the Logger methods.

func GlobalDebug(msg string, kv ...any) { Default().log(nil, Debug, msg, kv) }
func GlobalInfo(msg string, kv ...any)  { Default().log(nil, Info, msg, kv) }
func GlobalWarn(msg string, kv ...any)  { Default().log(nil, Warn, msg, kv) }
func GlobalError(msg string, kv ...any) { Default().log(nil, Error, msg, kv) }
func GlobalFatal(msg string, kv ...any) { Default().log(nil, Fatal, msg, kv) }

func GlobalDebugCtx(ctx context.Context, msg string, kv ...any) {
	Default().log(ctx, Debug, msg, kv)
}

func GlobalInfoCtx(ctx context.Context, msg string, kv ...any) {
	Default().log(ctx, Info, msg, kv)
}

func GlobalWarnCtx(ctx context.Context, msg string, kv ...any) {
	Default().log(ctx, Warn, msg, kv)
}

func GlobalErrorCtx(ctx context.Context, msg string, kv ...any) {
	Default().log(ctx, Error, msg, kv)
}
