package observability

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out of the API.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const RequestIDKey contextKey = "request_id"

func NewRequestID() string {
	return uuid.NewString()
}

// RequestIDFromHeader returns the incoming id when it is a UUID, and a fresh
// one otherwise, so callers cannot inject arbitrary text into logs.
func RequestIDFromHeader(v string) string {
	if _, err := uuid.Parse(v); err != nil {
		return NewRequestID()
	}
	return v
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
