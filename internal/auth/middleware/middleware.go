package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/stayfinder/stayfinder/internal/auth/session"
	"github.com/stayfinder/stayfinder/internal/logger"
	"go.uber.org/zap"
)

// WithSession attaches the session record to the request context when a
// valid cookie is present. Requests without one pass through untouched.
func WithSession(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := sessions.Read(r); ok {
				r = r.WithContext(session.NewContext(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects sessionless requests with a 401. Intended for the
// JSON API routes; browser pages handle the login redirect themselves.
func RequireSession(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := sessions.Read(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		})
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": message,
	}); err != nil {
		logger.Error("Failed to encode error response", zap.Error(err))
	}
}
