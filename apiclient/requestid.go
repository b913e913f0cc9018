package apiclient

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// ContextWithRequestID returns a context whose requests are sent with the
// given request id instead of a generated one.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by
// ContextWithRequestID. Returns an empty string if no id is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// requestID returns the id from ctx, or a new UUID v4.
//
// See: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func requestID(ctx context.Context) string {
	if id := RequestIDFromContext(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}
