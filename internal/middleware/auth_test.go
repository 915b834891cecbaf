package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"instruks/internal/domain/models"
	"instruks/internal/httputil"
)

// mockVerifier returns fixed claims or a fixed error.
type mockVerifier struct {
	claims *models.Claims
	err    error
}

func (m *mockVerifier) VerifyToken(string) (*models.Claims, error) {
	return m.claims, m.err
}

func (m *mockVerifier) Close() error { return nil }

func doctorClaims() *models.Claims {
	return &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Email:            "doc@example.com",
		Role:             models.RoleDoctor,
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var got models.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httputil.GetAuth(r)
		w.WriteHeader(http.StatusOK)
	})

	mw := AuthMiddleware(&mockVerifier{claims: doctorClaims()})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/instruks", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.UserID != "user-1" || !got.IsDoctor || got.IsNurse {
		t.Errorf("wrong auth context: %+v", got)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run without a token")
	})
	mw := AuthMiddleware(&mockVerifier{claims: doctorClaims()})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/instruks", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	mw := AuthMiddleware(&mockVerifier{err: errors.New("bad signature")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run with a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/instruks", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_HealthBypass(t *testing.T) {
	ran := false
	mw := AuthMiddleware(&mockVerifier{err: errors.New("never called")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if !ran || rec.Code != http.StatusOK {
		t.Errorf("health check must bypass auth: ran=%v code=%d", ran, rec.Code)
	}
}
