package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studymesh-backend/pkg/auth"
)

const (
	testSecret = "middleware-test-secret"
	testIssuer = "studymesh-backend"
)

func newGate(t *testing.T) (http.Handler, *auth.JWTGenerator) {
	t.Helper()

	cfg := auth.JWTConfig{SecretKey: testSecret, Issuer: testIssuer}
	validator, err := auth.NewJWTValidator(cfg)
	require.NoError(t, err)
	generator, err := auth.NewJWTGenerator(cfg, time.Hour)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err, "authenticated request must carry a user context")
		w.Write([]byte("hello " + user.UserID))
	})

	logger := zap.NewNop()
	gate := Authenticate(validator, logger)(RequireRole("admin")(next))
	return gate, generator
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/data/materials", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticateMissingToken(t *testing.T) {
	gate, _ := newGate(t)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authentication token")
}

func TestAuthenticateMalformedToken(t *testing.T) {
	gate, _ := newGate(t)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request("not-a-jwt"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	gate, _ := newGate(t)

	claims := auth.Claims{
		UserID: "admin-1",
		Roles:  []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "admin-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token has expired")
}

func TestAuthenticateWrongSignature(t *testing.T) {
	gate, _ := newGate(t)

	other, err := auth.NewJWTGenerator(auth.JWTConfig{SecretKey: "another-secret", Issuer: testIssuer}, time.Hour)
	require.NoError(t, err)
	token, err := other.GenerateToken("admin-1", "admin@example.com", []string{"admin"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	gate, generator := newGate(t)

	token, err := generator.GenerateToken("student-1", "student@example.com", []string{"student"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient permissions")
}

func TestRequireRoleAdmitsAdmin(t *testing.T) {
	gate, generator := newGate(t)

	token, err := generator.GenerateToken("admin-1", "admin@example.com", []string{"admin"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello admin-1", rec.Body.String())
}

func TestAuthenticateCookieFallback(t *testing.T) {
	gate, generator := newGate(t)

	token, err := generator.GenerateToken("admin-2", "admin2@example.com", []string{"admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/data/materials", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
