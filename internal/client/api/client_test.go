package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/client/storage/memory"
	"github.com/iudanet/niplan/internal/client/transport"
	"github.com/iudanet/niplan/pkg/api"
)

// newTestClient создает клиент, направленный на тестовый сервер
func newTestClient(t *testing.T, handler http.HandlerFunc, store storage.CredentialStorage) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	if store == nil {
		store = memory.New()
	}
	coordinator := transport.NewCoordinator(transport.Config{BaseURL: server.URL + "/api"}, store, nil,
		transport.WithHTTPClient(server.Client()),
	)
	return NewClient(coordinator)
}

func loggedInStore(t *testing.T) *memory.Storage {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.SetSession(context.Background(), &storage.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Role:         storage.RoleVendor,
		BusinessSlug: "chez-mama",
	}))
	return store
}

func TestClient_RequestOTP_NormalizesPhone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/request-otp/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RequestOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+243812345678", req.PhoneWhatsapp)

		_ = json.NewEncoder(w).Encode(api.RequestOTPResponse{Message: "code sent", ExpiresIn: 300})
	}, nil)

	resp, err := client.RequestOTP(context.Background(), "081 234 5678")
	require.NoError(t, err)
	assert.Equal(t, int64(300), resp.ExpiresIn)
}

func TestClient_RequestOTP_InvalidPhone(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, nil)

	for _, raw := range []string{"", "12", "0812", "+2438123456789"} {
		_, err := client.RequestOTP(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", raw)
	}
	assert.False(t, called)
}

func TestClient_VerifyOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/verify-otp/", r.URL.Path)

		var req api.VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+243812345678", req.PhoneWhatsapp)
		assert.Equal(t, "123456", req.Code)

		_ = json.NewEncoder(w).Encode(api.VerifyOTPResponse{
			Access:       "a",
			Refresh:      "r",
			Role:         "vendor",
			BusinessSlug: "chez-mama",
		})
	}, nil)

	resp, err := client.VerifyOTP(context.Background(), "+243812345678", "123456")
	require.NoError(t, err)
	assert.Equal(t, "a", resp.Access)
	assert.Equal(t, "chez-mama", resp.BusinessSlug)
}

// TestClient_ErrorResponses проверяет разбор ошибок сервера
func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		responseBody any
		name         string
		wantErr      string
		statusCode   int
	}{
		{
			name:         "message field",
			statusCode:   http.StatusBadRequest,
			responseBody: api.ErrorResponse{Error: "validation_error", Message: "invalid code"},
			wantErr:      "server error (400): invalid code",
		},
		{
			name:         "error field only",
			statusCode:   http.StatusTooManyRequests,
			responseBody: api.ErrorResponse{Error: "rate limit exceeded"},
			wantErr:      "server error (429): rate limit exceeded",
		},
		{
			name:         "plain text",
			statusCode:   http.StatusBadGateway,
			responseBody: "upstream down",
			wantErr:      "request failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if s, ok := tt.responseBody.(string); ok {
					_, _ = w.Write([]byte(s))
					return
				}
				_ = json.NewEncoder(w).Encode(tt.responseBody)
			}, nil)

			_, err := client.VerifyOTP(context.Background(), "+243812345678", "000000")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, IsStatus(err, tt.statusCode))
		})
	}
}

func TestClient_UpdateMyBusiness_RefreshesOnce(t *testing.T) {
	refreshes := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			refreshes++
			_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "access-2"})
		case "/api/my-business/update/":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, http.MethodPatch, r.Method)
			var req api.BusinessUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Name)
			_ = json.NewEncoder(w).Encode(api.Business{Name: *req.Name, Slug: "chez-mama"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, loggedInStore(t))

	name := "Chez Mama"
	business, err := client.UpdateMyBusiness(context.Background(), api.BusinessUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Chez Mama", business.Name)
	assert.Equal(t, 1, refreshes)
}

func TestClient_SecondUnauthorizedMatchesAuthExpired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "access-2"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unauthorized", Message: "token revoked"})
	}, loggedInStore(t))

	_, err := client.ListMyProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrAuthExpired)
	assert.NotErrorIs(t, err, transport.ErrRefreshFailed)
}

func TestClient_ProtectedWithoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL.Path)
	}, nil)

	_, err := client.GetMyBusiness(context.Background())
	assert.ErrorIs(t, err, transport.ErrNoCredential)

	_, err = client.AdminUsers(context.Background())
	assert.ErrorIs(t, err, transport.ErrNoCredential)
}

func TestClient_ProductCRUD(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]api.Product{{Name: "Pagne", Slug: "pagne-1a2b"}})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			var req api.ProductRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(api.Product{Name: *req.Name, Slug: "pagne-1a2b"})
		}
	}, loggedInStore(t))

	ctx := context.Background()
	name := "Pagne"

	created, err := client.CreateProduct(ctx, api.ProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "pagne-1a2b", created.Slug)

	_, err = client.EditProduct(ctx, created.Slug, api.ProductRequest{Name: &name})
	require.NoError(t, err)

	products, err := client.ListMyProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, client.DeleteProduct(ctx, created.Slug))

	assert.Equal(t, []string{
		"POST /api/my-products/create/",
		"PATCH /api/my-products/pagne-1a2b/edit/",
		"GET /api/my-products/",
		"DELETE /api/my-products/pagne-1a2b/delete/",
	}, calls)
}

func TestClient_PublicCatalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/products/":
			assert.Equal(t, "wax", r.URL.Query().Get("q"))
			_ = json.NewEncoder(w).Encode([]api.Product{{Name: "Wax"}})
		case "/api/business/chez-mama/":
			_ = json.NewEncoder(w).Encode(api.Business{
				Name:     "Chez Mama",
				Slug:     "chez-mama",
				Products: []api.Product{{Name: "Wax"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, nil)

	ctx := context.Background()
	products, err := client.ListProducts(ctx, url.Values{"q": {"wax"}})
	require.NoError(t, err)
	assert.Len(t, products, 1)

	business, err := client.GetBusiness(ctx, "chez-mama")
	require.NoError(t, err)
	assert.Len(t, business.Products, 1)

	_, err = client.GetBusiness(ctx, "missing")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	coordinator := transport.NewCoordinator(transport.Config{BaseURL: server.URL}, memory.New(), nil,
		transport.WithHTTPClient(server.Client()))
	server.Close()

	_, err := NewClient(coordinator).ListProducts(context.Background(), nil)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestStatusError(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusUnauthorized}
	assert.ErrorIs(t, err, transport.ErrAuthExpired)
	assert.Equal(t, "request failed with status 401", err.Error())

	forbidden := &StatusError{StatusCode: http.StatusForbidden, Message: "superadmin only"}
	assert.NotErrorIs(t, forbidden, transport.ErrAuthExpired)
	assert.Equal(t, "server error (403): superadmin only", forbidden.Error())
}
