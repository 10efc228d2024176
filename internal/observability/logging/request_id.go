package logging

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ValidateAndExtractRequestID returns id when it is a UUID, otherwise a new
// UUIDv7.
func ValidateAndExtractRequestID(id string) string {
	if id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}

	return uuid.NewString()
}
