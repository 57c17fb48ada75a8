package auth

import (
	"context"
	"time"

	"github.com/iudanet/niplan/internal/client/storage"
	pkgapi "github.com/iudanet/niplan/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service defines the main interface for authentication operations.
// Login is a two-step flow: RequestOTP sends a code over WhatsApp,
// VerifyOTP exchanges it for a session which is stored atomically.
type Service interface {
	// RequestOTP запрашивает одноразовый код для номера
	RequestOTP(ctx context.Context, phone string) (*pkgapi.RequestOTPResponse, error)

	// VerifyOTP проверяет код и сохраняет сессию целиком
	VerifyOTP(ctx context.Context, phone, code string) (*storage.Session, error)

	// Logout выполняет выход из системы.
	// Удаляет локальные данные и уведомляет сервер (best effort)
	Logout(ctx context.Context) error

	// Session возвращает текущую сессию.
	// Returns storage.ErrSessionNotFound if logged out
	Session(ctx context.Context) (*storage.Session, error)

	// IsAuthenticated checks if a usable credential exists
	IsAuthenticated(ctx context.Context) (bool, error)

	// TokenExpiry возвращает срок действия access token (без проверки подписи)
	TokenExpiry(ctx context.Context) (time.Time, error)
}

//go:generate moq -out apiclient_mock.go . APIClient

// APIClient часть HTTP клиента, используемая сервисом
type APIClient interface {
	RequestOTP(ctx context.Context, phone string) (*pkgapi.RequestOTPResponse, error)
	VerifyOTP(ctx context.Context, phone, code string) (*pkgapi.VerifyOTPResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
