package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/client/transport"
	"github.com/iudanet/niplan/internal/validation"
	pkgapi "github.com/iudanet/niplan/pkg/api"
)

var (
	// ErrNoExpiry access token не содержит claim exp
	ErrNoExpiry = errors.New("access token has no expiry")
	// ErrIncompleteSession сервер вернул ответ без одного из токенов
	ErrIncompleteSession = errors.New("server returned incomplete session")
)

var _ Service = (*AuthService)(nil)

// AuthService предоставляет функции авторизации
type AuthService struct {
	apiClient APIClient
	store     storage.CredentialStorage
	logger    *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, store storage.CredentialStorage, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
	}
}

// RequestOTP запрашивает одноразовый код
func (s *AuthService) RequestOTP(ctx context.Context, phone string) (*pkgapi.RequestOTPResponse, error) {
	normalized, err := validation.ValidatePhone(phone)
	if err != nil {
		return nil, fmt.Errorf("invalid phone: %w", err)
	}

	resp, err := s.apiClient.RequestOTP(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to request code: %w", err)
	}
	return resp, nil
}

// VerifyOTP проверяет код и сохраняет токены и метаданные сессии одной операцией
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*storage.Session, error) {
	normalized, err := validation.ValidatePhone(phone)
	if err != nil {
		return nil, fmt.Errorf("invalid phone: %w", err)
	}
	if err := validation.ValidateOTPCode(code); err != nil {
		return nil, fmt.Errorf("invalid code: %w", err)
	}

	resp, err := s.apiClient.VerifyOTP(ctx, normalized, code)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if transport.IsTrivialToken(resp.Access) || transport.IsTrivialToken(resp.Refresh) {
		return nil, ErrIncompleteSession
	}

	role := storage.Role(resp.Role)
	if role != storage.RoleSuperadmin {
		// Неизвестная роль не дает прав администратора
		role = storage.RoleVendor
	}

	session := &storage.Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		Role:         role,
		BusinessSlug: resp.BusinessSlug,
	}
	if err := s.store.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.DebugContext(ctx, "logged in", slog.String("role", string(role)), slog.String("business", resp.BusinessSlug))
	return session, nil
}

// Logout выполняет выход из системы.
// Удаляет локальные данные авторизации и уведомляет сервер, если есть refresh token.
func (s *AuthService) Logout(ctx context.Context) error {
	// 1. Пытаемся получить refresh token для отзыва на сервере
	refreshToken, err := s.store.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		s.logger.DebugContext(ctx, "no refresh token found during logout", slog.Any("error", err))
	} else if !transport.IsTrivialToken(refreshToken) {
		// 2. Уведомляем сервер (best effort)
		if logoutErr := s.apiClient.Logout(ctx, refreshToken); logoutErr != nil {
			s.logger.WarnContext(ctx, "failed to logout on server", slog.Any("error", logoutErr))
		}
	}

	// 3. Всегда удаляем локальные данные, даже если сервер недоступен
	if _, err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}

	return nil
}

// Session возвращает текущую сессию
func (s *AuthService) Session(ctx context.Context) (*storage.Session, error) {
	return s.store.GetSession(ctx)
}

// IsAuthenticated проверяет наличие токена, с которым можно выполнить запрос.
// Истекший access token не считается выходом: координатор обновит его по refresh token.
func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}

	return !transport.IsTrivialToken(session.AccessToken) || !transport.IsTrivialToken(session.RefreshToken), nil
}

// TokenExpiry читает exp из access token без проверки подписи: ключ есть только у сервера
func (s *AuthService) TokenExpiry(ctx context.Context) (time.Time, error) {
	access, err := s.store.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return time.Time{}, err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}
