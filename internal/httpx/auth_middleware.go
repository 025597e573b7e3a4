package httpx

import (
	"net/http"
	"strings"

	"pokecatcher/internal/entity"
)

// TokenVerifier turns a bearer token issued by the identity provider into
// the trainer it was issued for.
type TokenVerifier interface {
	Verify(token string) (entity.Trainer, error)
}

func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			trainer, err := verifier.Verify(token)
			if err != nil {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
				return
			}

			ctx := ContextWithTrainer(r.Context(), trainer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTrainer fetches the trainer set by AuthMiddleware, writing a 401 and
// returning ok == false when there is none.
func RequireTrainer(w http.ResponseWriter, r *http.Request) (entity.Trainer, bool) {
	trainer, ok := TrainerFrom(r)
	if !ok {
		JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
	}
	return trainer, ok
}
