package httpx

import (
	"context"
	"net/http"

	"pokecatcher/internal/entity"
)

type contextKey string

const (
	trainerKey   contextKey = "trainer"
	requestIDKey contextKey = "requestID"
)

// TrainerFrom retrieves the authenticated trainer from the request context.
func TrainerFrom(r *http.Request) (entity.Trainer, bool) {
	t, ok := r.Context().Value(trainerKey).(entity.Trainer)
	return t, ok && t.ID != ""
}

// TrainerIDFrom is TrainerFrom reduced to the id, "" when anonymous.
func TrainerIDFrom(r *http.Request) string {
	t, _ := TrainerFrom(r)
	return t.ID
}

// ContextWithTrainer returns a new context carrying the trainer.
func ContextWithTrainer(ctx context.Context, t entity.Trainer) context.Context {
	return context.WithValue(ctx, trainerKey, t)
}

// RequestIDFrom retrieves the request id set by RequestIDMiddleware.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
