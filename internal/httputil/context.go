package httputil

import (
	"context"
	"net/http"

	"instruks/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const authKey contextKey = "auth"

// WithAuth adds the resolved authorization context to the request.
func WithAuth(r *http.Request, auth models.AuthContext) *http.Request {
	ctx := context.WithValue(r.Context(), authKey, auth)
	return r.WithContext(ctx)
}

// GetAuth retrieves the authorization context; the zero value (no roles)
// comes back when the middleware never ran.
func GetAuth(r *http.Request) models.AuthContext {
	auth, _ := r.Context().Value(authKey).(models.AuthContext)
	return auth
}
