package ctxutil

import "context"

type ctxKey string

const (
	learnerIDKey ctxKey = "learner_id"
	requestIDKey ctxKey = "request_id"
)

// WithLearnerID stores the authenticated learner ID in the context.
func WithLearnerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, learnerIDKey, id)
}

// LearnerIDFromCtx extracts the learner ID from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func LearnerIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(learnerIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
