package httputil

import (
	"context"
	"net/http"
)

type requestIDKey struct{}

// WithRequestID returns r carrying the request id
func WithRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(ContextWithRequestID(r.Context(), requestID))
}

// ContextWithRequestID is WithRequestID for code holding only a context
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the request id set by the request log middleware, or ""
func GetRequestID(r *http.Request) string {
	return RequestIDFrom(r.Context())
}

// RequestIDFrom reads the request id from ctx
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
