package middleware

import (
	"net/http"
	"strings"

	"instruks/internal/auth"
	"instruks/internal/httputil"

	"instruks/internal/domain/models"
)

// AuthMiddleware verifies the bearer token on every request and stores
// the resolved role flags in the request context. Handlers and services
// only ever see those flags; no role is re-derived downstream.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithAuth(r, models.FromClaims(claims)))
		})
	}
}
