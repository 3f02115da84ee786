package logging

import (
	"context"
	"maps"

	"github.com/google/uuid"
)

type contextKey string

const contextFieldsKey contextKey = "capa.logging.fields"

// FieldCorrelationID is the structured field carrying a per-operation ID.
const FieldCorrelationID = "correlation_id"

// ContextWithFields returns a context carrying structured logging fields that
// loggers merge into subsequent entries. Existing fields are kept and
// overridden key by key.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts the logging fields stored on ctx. The returned map
// is a copy.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// WithCorrelationID annotates ctx with a fresh correlation ID unless one is
// already present, and returns the ID in use.
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	if existing, ok := ContextFields(ctx)[FieldCorrelationID].(string); ok && existing != "" {
		return ctx, existing
	}
	id := uuid.NewString()
	return ContextWithFields(ctx, map[string]any{FieldCorrelationID: id}), id
}
