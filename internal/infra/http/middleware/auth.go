package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/max-knopp/intellio/internal/infra/auth"
	"github.com/max-knopp/intellio/internal/usecase"
)

type contextKey string

const sessionKey contextKey = "session"

// Auth validates the bearer token and stores the caller's session in the
// request context. Everything behind it can rely on SessionFrom returning a
// real identity.
func Auth(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := manager.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			session := usecase.Session{UserID: claims.Sub, Email: claims.Email}
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom extracts the authenticated session placed by Auth.
func SessionFrom(ctx context.Context) (usecase.Session, bool) {
	session, ok := ctx.Value(sessionKey).(usecase.Session)
	return session, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
