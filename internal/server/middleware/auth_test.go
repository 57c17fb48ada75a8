package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/handlers"
	"github.com/iudanet/niplan/pkg/api"
)

var testJWTConfig = handlers.JWTConfig{
	Secret:          []byte("test-secret-key"),
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 7 * 24 * time.Hour,
}

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(role string) *models.User {
	return &models.User{ID: "user123", Phone: "+243812345678", Role: role, BusinessSlug: "chez-mama"}
}

func signedToken(t *testing.T, cfg handlers.JWTConfig, role string, now time.Time) string {
	t.Helper()
	token, err := handlers.GenerateAccessToken(cfg, testUser(role), now)
	require.NoError(t, err)
	return token
}

// claimsHandler проверяет, что middleware положил claims в контекст
func claimsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserID(r.Context())
		require.True(t, ok, "user_id should be in context")
		assert.Equal(t, "user123", userID)

		role, ok := handlers.GetRole(r.Context())
		require.True(t, ok, "role should be in context")
		assert.Equal(t, models.RoleVendor, role)

		assert.Equal(t, "chez-mama", r.Context().Value(handlers.BusinessSlugKey))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	handler := AuthMiddleware(setupTestLogger(), testJWTConfig)(claimsHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/my-products/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testJWTConfig, models.RoleVendor, time.Now()))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	otherSecret := testJWTConfig
	otherSecret.Secret = []byte("another-secret")

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, handlers.Claims{UserID: "user123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + signedToken(t, testJWTConfig, models.RoleVendor, time.Now().Add(-time.Hour))},
		{name: "wrong secret", header: "Bearer " + signedToken(t, otherSecret, models.RoleVendor, time.Now())},
		{name: "alg none", header: "Bearer " + noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(setupTestLogger(), testJWTConfig)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/my-products/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "unauthorized", resp.Error)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "superadmin allowed", role: models.RoleSuperadmin, wantStatus: http.StatusOK},
		{name: "vendor forbidden", role: models.RoleVendor, wantStatus: http.StatusForbidden},
		{name: "unknown role forbidden", role: "hacker", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := setupTestLogger()
			handler := AuthMiddleware(logger, testJWTConfig)(
				RequireRole(logger, models.RoleSuperadmin)(okHandler()),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users/", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, testJWTConfig, tt.role, time.Now()))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	handler := RequireRole(setupTestLogger(), models.RoleSuperadmin)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/users/", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
