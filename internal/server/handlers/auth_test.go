package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/niplan/internal/crypto"
	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
	"github.com/iudanet/niplan/pkg/api"
)

func decodeError(t *testing.T, body []byte) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestAuthHandler_RequestOTP(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(env.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", api.RequestOTPRequest{PhoneWhatsapp: "+243812345678"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RequestOTPResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(300), resp.ExpiresIn)
	assert.Empty(t, resp.CodeDebug, "code must not leak outside debug mode")

	code := env.sender.code("+243812345678")
	assert.Regexp(t, `^\d{6}$`, code)

	otp, err := env.store.GetLatestOTP(context.Background(), "+243812345678")
	require.NoError(t, err)
	assert.NotEqual(t, code, otp.CodeHash)
	assert.NoError(t, crypto.VerifyOTP(code, otp.CodeHash))
}

func TestAuthHandler_RequestOTP_DebugReturnsCode(t *testing.T) {
	env := newTestEnv(t)
	env.auth.cfg.Debug = true

	w := doJSON(env.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", api.RequestOTPRequest{PhoneWhatsapp: "+243812345678"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RequestOTPResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, env.sender.code("+243812345678"), resp.CodeDebug)
}

func TestAuthHandler_RequestOTP_BadRequests(t *testing.T) {
	tests := []struct {
		body    any
		name    string
		message string
	}{
		{name: "invalid json", body: "{not json", message: "invalid request body"},
		{name: "unknown field", body: `{"phone":"+243812345678"}`, message: "invalid request body"},
		{name: "missing phone", body: api.RequestOTPRequest{}, message: "phone_whatsapp: failed on required"},
		{name: "local format", body: api.RequestOTPRequest{PhoneWhatsapp: "0812345678"}, message: "phone_whatsapp: failed on e164"},
		{name: "short drc number", body: api.RequestOTPRequest{PhoneWhatsapp: "+24381234567"}, message: "invalid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := doJSON(env.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w.Body.Bytes())
			assert.Equal(t, "bad_request", resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestAuthHandler_RequestOTP_SenderFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sender.err = errors.New("whatsapp is down")

	w := doJSON(env.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", api.RequestOTPRequest{PhoneWhatsapp: "+243812345678"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAuthHandler_VerifyOTP_FirstLoginCreatesUserAndBusiness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login := env.login(t, "+243812345678")

	assert.Equal(t, models.RoleVendor, login.Role)
	assert.Regexp(t, `^boutique-[0-9a-f]{6}$`, login.BusinessSlug)
	assert.NotEmpty(t, login.Refresh)
	assert.Equal(t, login.BusinessSlug, login.claims.BusinessSlug)

	user, err := env.store.GetUserByPhone(ctx, "+243812345678")
	require.NoError(t, err)
	assert.Equal(t, login.claims.UserID, user.ID)
	assert.Equal(t, login.BusinessSlug, user.BusinessSlug)

	business, err := env.store.GetBusinessBySlug(ctx, login.BusinessSlug)
	require.NoError(t, err)
	assert.Equal(t, api.BusinessTypeSale, business.BusinessType)

	// Второй вход не создает нового пользователя
	again := env.login(t, "+243812345678")
	assert.Equal(t, login.claims.UserID, again.claims.UserID)
	assert.Equal(t, login.BusinessSlug, again.BusinessSlug)

	users, err := env.store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthHandler_VerifyOTP_Superadmin(t *testing.T) {
	env := newTestEnv(t)

	login := env.login(t, testSuperadmin)
	assert.Equal(t, models.RoleSuperadmin, login.Role)
	assert.Equal(t, models.RoleSuperadmin, login.claims.Role)
}

func TestAuthHandler_VerifyOTP_PromotesExistingUser(t *testing.T) {
	env := newTestEnv(t)

	first := env.login(t, "+243812345678")
	require.Equal(t, models.RoleVendor, first.Role)

	env.auth.cfg.IsSuperadmin = func(string) bool { return true }

	second := env.login(t, "+243812345678")
	assert.Equal(t, models.RoleSuperadmin, second.Role)

	user, err := env.store.GetUserByID(context.Background(), first.claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperadmin, user.Role)
}

func TestAuthHandler_VerifyOTP_Rejections(t *testing.T) {
	const number = "+243812345678"

	tests := []struct {
		prepare func(t *testing.T, env *testEnv) string
		name    string
		status  int
	}{
		{
			name:    "no code issued",
			prepare: func(t *testing.T, env *testEnv) string { return "123456" },
			status:  http.StatusBadRequest,
		},
		{
			name: "wrong code",
			prepare: func(t *testing.T, env *testEnv) string {
				requestCode(t, env, number)
				code := env.sender.code(number)
				if code == "000000" {
					return "111111"
				}
				return "000000"
			},
			status: http.StatusBadRequest,
		},
		{
			name: "code already used",
			prepare: func(t *testing.T, env *testEnv) string {
				env.login(t, number)
				return env.sender.code(number)
			},
			status: http.StatusBadRequest,
		},
		{
			name: "code expired",
			prepare: func(t *testing.T, env *testEnv) string {
				requestCode(t, env, number)
				env.auth.now = func() time.Time { return time.Now().UTC().Add(6 * time.Minute) }
				return env.sender.code(number)
			},
			status: http.StatusBadRequest,
		},
		{
			name: "only the latest code counts",
			prepare: func(t *testing.T, env *testEnv) string {
				requestCode(t, env, number)
				old := env.sender.code(number)
				requestCode(t, env, number)
				if old == env.sender.code(number) {
					t.Skip("codes collided")
				}
				return old
			},
			status: http.StatusBadRequest,
		},
		{
			name: "malformed code",
			prepare: func(t *testing.T, env *testEnv) string {
				requestCode(t, env, number)
				return "12ab56"
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			code := tt.prepare(t, env)

			w := doJSON(env.auth.VerifyOTP, http.MethodPost, "/api/auth/verify-otp/", api.VerifyOTPRequest{
				PhoneWhatsapp: number,
				Code:          code,
			})

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthHandler_VerifyOTP_InactiveUser(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "+243812345678")

	_, err := env.store.DB().Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, login.claims.UserID)
	require.NoError(t, err)

	requestCode(t, env, "+243812345678")
	w := doJSON(env.auth.VerifyOTP, http.MethodPost, "/api/auth/verify-otp/", api.VerifyOTPRequest{
		PhoneWhatsapp: "+243812345678",
		Code:          env.sender.code("+243812345678"),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Refresh для заблокированного пользователя тоже закрыт
	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_RotatesToken(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "+243812345678")

	w := doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: login.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RefreshResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.NotEqual(t, login.Refresh, resp.Refresh)

	claims, err := ValidateAccessToken(testJWT, resp.Access)
	require.NoError(t, err)
	assert.Equal(t, login.claims.UserID, claims.UserID)
	assert.Equal(t, login.BusinessSlug, claims.BusinessSlug)

	// Старый refresh token больше не действует
	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Новый действует
	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: resp.Refresh})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Refresh_Rejections(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "+243812345678")

	w := doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: "unknown"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.auth.now = func() time.Time { return time.Now().UTC().Add(8 * 24 * time.Hour) }
	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "refresh token expired", decodeError(t, w.Body.Bytes()).Message)

	// Истекший токен удален
	_, err := env.store.GetRefreshToken(context.Background(), crypto.HashToken(login.Refresh))
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "+243812345678")

	w := doJSON(env.auth.Logout, http.MethodPost, "/api/auth/logout/", api.LogoutRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(env.auth.Refresh, http.MethodPost, "/api/token/refresh/", api.RefreshRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Повторный logout не ошибка
	w = doJSON(env.auth.Logout, http.MethodPost, "/api/auth/logout/", api.LogoutRequest{Refresh: login.Refresh})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// failingTokenStorage отдает ошибку на каждое сохранение
type failingTokenStorage struct {
	storage.TokenStorage
}

func (f *failingTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return errors.New("disk full")
}

func TestAuthHandler_VerifyOTP_TokenStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.auth.tokenStorage = &failingTokenStorage{TokenStorage: env.store}

	requestCode(t, env, "+243812345678")
	w := doJSON(env.auth.VerifyOTP, http.MethodPost, "/api/auth/verify-otp/", api.VerifyOTPRequest{
		PhoneWhatsapp: "+243812345678",
		Code:          env.sender.code("+243812345678"),
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w.Body.Bytes()).Message)
}

func requestCode(t *testing.T, env *testEnv, number string) {
	t.Helper()
	w := doJSON(env.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", api.RequestOTPRequest{PhoneWhatsapp: number})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
