package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/niplan/internal/server/storage/sqlite"
)

const testSuperadmin = "+243899000000"

var testJWT = JWTConfig{
	Secret:          []byte("test-secret"),
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 7 * 24 * time.Hour,
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingSender запоминает отправленные коды
type recordingSender struct {
	codes map[string]string
	err   error
	mu    sync.Mutex
}

func (s *recordingSender) SendOTP(ctx context.Context, phoneNumber, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.codes == nil {
		s.codes = make(map[string]string)
	}
	s.codes[phoneNumber] = code
	return nil
}

func (s *recordingSender) code(phoneNumber string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phoneNumber]
}

// testEnv хендлеры поверх in-memory SQLite
type testEnv struct {
	store    *sqlite.Storage
	sender   *recordingSender
	auth     *AuthHandler
	business *BusinessHandler
	products *ProductHandler
	admin    *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := setupTestLogger()
	sender := &recordingSender{}

	return &testEnv{
		store:  store,
		sender: sender,
		auth: NewAuthHandler(logger, store, store, store, sender, AuthConfig{
			JWT:          testJWT,
			OTPTTL:       5 * time.Minute,
			IsSuperadmin: func(phone string) bool { return phone == testSuperadmin },
		}),
		business: NewBusinessHandler(logger, store),
		products: NewProductHandler(logger, store),
		admin:    NewAdminHandler(logger, store),
	}
}

// login проходит request-otp и verify-otp и возвращает токены
func (e *testEnv) login(t *testing.T, phoneNumber string) *loginResult {
	t.Helper()

	w := doJSON(e.auth.RequestOTP, http.MethodPost, "/api/auth/request-otp/", map[string]string{"phone_whatsapp": phoneNumber})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(e.auth.VerifyOTP, http.MethodPost, "/api/auth/verify-otp/", map[string]string{
		"phone_whatsapp": phoneNumber,
		"code":           e.sender.code(phoneNumber),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp loginResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	claims, err := ValidateAccessToken(testJWT, resp.Access)
	require.NoError(t, err)
	resp.claims = claims

	return &resp
}

type loginResult struct {
	claims       *Claims
	Access       string `json:"access"`
	Refresh      string `json:"refresh"`
	Role         string `json:"role"`
	BusinessSlug string `json:"business_slug"`
}

// ctx контекст запроса аутентифицированного пользователя
func (l *loginResult) ctx() context.Context {
	return WithClaims(context.Background(), l.claims)
}

func doJSON(handler http.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(context.Background(), handler, method, path, body, nil)
}

func doRequest(ctx context.Context, handler http.HandlerFunc, method, path string, body any, vars map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}
