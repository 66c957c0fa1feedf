package middleware

import "context"

type contextKey string

const (
	requestIDKey  contextKey = "requestID"
	responseIDKey contextKey = "responseID"
)

// SetResponseID returns a context carrying the response ID an edit token authorized.
func SetResponseID(ctx context.Context, responseID string) context.Context {
	return context.WithValue(ctx, responseIDKey, responseID)
}

// ResponseIDFromContext returns the response ID authorized by the edit token, if present.
func ResponseIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(responseIDKey).(string)
	return id, ok
}
