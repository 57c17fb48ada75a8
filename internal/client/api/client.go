package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/iudanet/niplan/internal/client/transport"
	"github.com/iudanet/niplan/internal/phone"
	"github.com/iudanet/niplan/pkg/api"
)

// maxResponseBody ограничение на размер ответа сервера
const maxResponseBody = 10 << 20

// Requester отправляет запросы с учётными данными (transport.Coordinator)
type Requester interface {
	Do(ctx context.Context, req *transport.Request) (*http.Response, error)
}

// Client представляет HTTP клиент для взаимодействия с Niplan API
type Client struct {
	requester Requester
}

// NewClient создает новый API клиент поверх координатора
func NewClient(requester Requester) *Client {
	return &Client{requester: requester}
}

// RequestOTP запрашивает одноразовый код для номера WhatsApp
func (c *Client) RequestOTP(ctx context.Context, rawPhone string) (*api.RequestOTPResponse, error) {
	normalized, err := canonicalPhone(rawPhone)
	if err != nil {
		return nil, err
	}

	var resp api.RequestOTPResponse
	err = c.doRequest(ctx, http.MethodPost, "/auth/request-otp/", nil, api.RequestOTPRequest{PhoneWhatsapp: normalized}, &resp)
	if err != nil {
		return nil, fmt.Errorf("request otp failed: %w", err)
	}
	return &resp, nil
}

// VerifyOTP проверяет код и возвращает токены сессии
func (c *Client) VerifyOTP(ctx context.Context, rawPhone, code string) (*api.VerifyOTPResponse, error) {
	normalized, err := canonicalPhone(rawPhone)
	if err != nil {
		return nil, err
	}

	var resp api.VerifyOTPResponse
	req := api.VerifyOTPRequest{PhoneWhatsapp: normalized, Code: code}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/verify-otp/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("verify otp failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout/", nil, api.LogoutRequest{Refresh: refreshToken}, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// GetMyBusiness возвращает бутик текущего пользователя вместе с товарами
func (c *Client) GetMyBusiness(ctx context.Context) (*api.Business, error) {
	var resp api.Business
	if err := c.doRequest(ctx, http.MethodGet, "/my-business/update/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get my business failed: %w", err)
	}
	return &resp, nil
}

// UpdateMyBusiness частично обновляет бутик текущего пользователя
func (c *Client) UpdateMyBusiness(ctx context.Context, req api.BusinessUpdateRequest) (*api.Business, error) {
	var resp api.Business
	if err := c.doRequest(ctx, http.MethodPatch, "/my-business/update/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("update my business failed: %w", err)
	}
	return &resp, nil
}

// ListMyProducts возвращает товары текущего пользователя
func (c *Client) ListMyProducts(ctx context.Context) ([]api.Product, error) {
	var resp []api.Product
	if err := c.doRequest(ctx, http.MethodGet, "/my-products/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list my products failed: %w", err)
	}
	return resp, nil
}

// CreateProduct создает товар в бутике текущего пользователя
func (c *Client) CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error) {
	var resp api.Product
	if err := c.doRequest(ctx, http.MethodPost, "/my-products/create/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create product failed: %w", err)
	}
	return &resp, nil
}

// EditProduct частично изменяет товар
func (c *Client) EditProduct(ctx context.Context, slug string, req api.ProductRequest) (*api.Product, error) {
	var resp api.Product
	path := fmt.Sprintf("/my-products/%s/edit/", url.PathEscape(slug))
	if err := c.doRequest(ctx, http.MethodPatch, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("edit product failed: %w", err)
	}
	return &resp, nil
}

// DeleteProduct удаляет товар
func (c *Client) DeleteProduct(ctx context.Context, slug string) error {
	path := fmt.Sprintf("/my-products/%s/delete/", url.PathEscape(slug))
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete product failed: %w", err)
	}
	return nil
}

// ListProducts возвращает публичный каталог
func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]api.Product, error) {
	var resp []api.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products/", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	return resp, nil
}

// GetBusiness возвращает публичную витрину по slug
func (c *Client) GetBusiness(ctx context.Context, slug string) (*api.Business, error) {
	var resp api.Business
	path := fmt.Sprintf("/business/%s/", url.PathEscape(slug))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get business failed: %w", err)
	}
	return &resp, nil
}

// AdminUsers возвращает список пользователей (только superadmin)
func (c *Client) AdminUsers(ctx context.Context) ([]api.AdminUser, error) {
	var resp []api.AdminUser
	if err := c.doRequest(ctx, http.MethodGet, "/admin/users/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("admin users request failed: %w", err)
	}
	return resp, nil
}

// AdminOTPs возвращает выданные одноразовые коды (только superadmin)
func (c *Client) AdminOTPs(ctx context.Context) ([]api.AdminOTP, error) {
	var resp []api.AdminOTP
	if err := c.doRequest(ctx, http.MethodGet, "/admin/otps/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("admin otps request failed: %w", err)
	}
	return resp, nil
}

// doRequest выполняет запрос через координатор
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	req := transport.NewRequest(method, path, payload)
	req.Query = query
	req.Header.Set("Accept", "application/json")

	resp, err := c.requester.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newStatusError(code int, body []byte) *StatusError {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &StatusError{StatusCode: code, Message: msg}
	}
	return &StatusError{StatusCode: code}
}

func canonicalPhone(raw string) (string, error) {
	normalized := phone.Normalize(raw)
	if !phone.IsValid(raw) || !phone.IsInternational(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return normalized, nil
}
