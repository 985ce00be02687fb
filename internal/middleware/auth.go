package middleware

import (
	"net/http"
	"strings"

	"evlanka/ampere/internal/auth"
	"evlanka/ampere/internal/logging"
)

// AuthMiddleware validates the bearer session token and places the resolved
// Session in the request context. Identity resolution itself (which email, if
// any, the session maps to) is the favorites synchronizer's concern; a valid
// token with no usable email still passes through here.
func AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			session, err := auth.ParseSessionToken(token)
			if err != nil {
				logging.Debug("Rejected session token", "error", err.Error())
				http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
