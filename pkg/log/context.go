package log

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	userKey
	fieldsKey
)

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" if unset or ctx is nil.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUser stores the acting user's handle in ctx.
func WithUser(ctx context.Context, handle string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userKey, handle)
}

// UserFromContext returns the acting user's handle, or "".
func UserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	handle, _ := ctx.Value(userKey).(string)
	return handle
}

// WithFields returns a context carrying the existing fields plus the given pairs.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	fields := make(map[string]any)
	for k, v := range FieldsFromContext(ctx) {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return context.WithValue(ctx, fieldsKey, fields)
}

// FieldsFromContext returns the fields stored in ctx, or nil.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}
