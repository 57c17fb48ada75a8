package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/niplan/internal/catalog"
	"github.com/iudanet/niplan/internal/crypto"
	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/phone"
	"github.com/iudanet/niplan/internal/server/storage"
	"github.com/iudanet/niplan/pkg/api"
)

const (
	msgInvalidCode  = "invalid or expired code"
	msgInternal     = "internal server error"
	defaultShopName = "boutique"
)

// AuthConfig настройки входа по одноразовому коду
type AuthConfig struct {
	// IsSuperadmin сообщает, получает ли канонический номер роль superadmin
	IsSuperadmin func(phone string) bool
	JWT          JWTConfig
	OTPTTL       time.Duration
	// Debug возвращает код в ответе request-otp
	Debug bool
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	otpStorage   storage.OTPStorage
	tokenStorage storage.TokenStorage
	sender       OTPSender
	now          func() time.Time
	cfg          AuthConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	otpStorage storage.OTPStorage,
	tokenStorage storage.TokenStorage,
	sender OTPSender,
	cfg AuthConfig,
) *AuthHandler {
	if cfg.IsSuperadmin == nil {
		cfg.IsSuperadmin = func(string) bool { return false }
	}
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		otpStorage:   otpStorage,
		tokenStorage: tokenStorage,
		sender:       sender,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RequestOTP обрабатывает POST /api/auth/request-otp/
// Выдает одноразовый код и отправляет его в WhatsApp
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RequestOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}

	number := phone.Normalize(req.PhoneWhatsapp)
	if !phone.IsValid(number) {
		sendError(w, h.logger, http.StatusBadRequest, "invalid phone number")
		return
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate otp", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	codeHash, err := crypto.HashOTP(code)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash otp", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	now := h.now()
	otp := &models.OTP{
		ID:        newID(),
		Phone:     number,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(h.cfg.OTPTTL),
		CreatedAt: now,
	}
	if err := h.otpStorage.CreateOTP(ctx, otp); err != nil {
		h.logger.ErrorContext(ctx, "failed to save otp", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := h.sender.SendOTP(ctx, number, code); err != nil {
		h.logger.ErrorContext(ctx, "failed to send otp", slog.Any("error", err))
		sendError(w, h.logger, http.StatusBadGateway, "failed to deliver code")
		return
	}

	resp := api.RequestOTPResponse{
		Message:   "code sent",
		ExpiresIn: int64(h.cfg.OTPTTL.Seconds()),
	}
	if h.cfg.Debug {
		resp.CodeDebug = code
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// VerifyOTP обрабатывает POST /api/auth/verify-otp/
// Проверяет код; при первом входе создает пользователя и пустой бутик
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}
	number := phone.Normalize(req.PhoneWhatsapp)
	masked := slog.String("phone", phone.Mask(number))

	otp, err := h.otpStorage.GetLatestOTP(ctx, number)
	if err != nil {
		if errors.Is(err, storage.ErrOTPNotFound) {
			h.logger.WarnContext(ctx, "verify without issued code", masked)
			sendError(w, h.logger, http.StatusBadRequest, msgInvalidCode)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get otp", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	now := h.now()
	if otp.Used || otp.Expired(now) {
		h.logger.WarnContext(ctx, "otp used or expired", masked)
		sendError(w, h.logger, http.StatusBadRequest, msgInvalidCode)
		return
	}

	if err := crypto.VerifyOTP(req.Code, otp.CodeHash); err != nil {
		if !errors.Is(err, crypto.ErrOTPMismatch) {
			h.logger.ErrorContext(ctx, "failed to verify otp", slog.Any("error", err))
		}
		h.logger.WarnContext(ctx, "otp mismatch", masked)
		sendError(w, h.logger, http.StatusBadRequest, msgInvalidCode)
		return
	}

	if err := h.otpStorage.MarkOTPUsed(ctx, otp.ID); err != nil {
		if errors.Is(err, storage.ErrOTPAlreadyUsed) {
			sendError(w, h.logger, http.StatusBadRequest, msgInvalidCode)
			return
		}
		h.logger.ErrorContext(ctx, "failed to mark otp used", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	user, err := h.loadOrCreateUser(r, number, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load user", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	if !user.IsActive {
		h.logger.WarnContext(ctx, "inactive user tried to log in", slog.String("user_id", user.ID))
		sendError(w, h.logger, http.StatusForbidden, "account disabled")
		return
	}

	resp, err := h.issueTokens(r, user, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role))

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// loadOrCreateUser находит пользователя по номеру или регистрирует его.
// Роль superadmin выдается по списку номеров из конфигурации.
func (h *AuthHandler) loadOrCreateUser(r *http.Request, number string, now time.Time) (*models.User, error) {
	ctx := r.Context()

	user, err := h.userStorage.GetUserByPhone(ctx, number)
	switch {
	case err == nil:
		if h.cfg.IsSuperadmin(number) && user.Role != models.RoleSuperadmin {
			if err := h.userStorage.UpdateUserRole(ctx, user.ID, models.RoleSuperadmin); err != nil {
				return nil, err
			}
			user.Role = models.RoleSuperadmin
		}
		return user, nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return nil, err
	}

	user = &models.User{
		ID:        newID(),
		Phone:     number,
		Role:      models.RoleVendor,
		IsActive:  true,
		CreatedAt: now,
	}
	if h.cfg.IsSuperadmin(number) {
		user.Role = models.RoleSuperadmin
	}
	business := &models.Business{
		ID:           newID(),
		Slug:         catalog.Slugify(defaultShopName) + "-" + slugSuffix(),
		BusinessType: api.BusinessTypeSale,
		CreatedAt:    now,
	}

	if err := h.userStorage.CreateUserWithBusiness(ctx, user, business); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			// Параллельный первый вход с того же номера
			return h.userStorage.GetUserByPhone(ctx, number)
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("business_slug", business.Slug))

	return user, nil
}

func (h *AuthHandler) issueTokens(r *http.Request, user *models.User, now time.Time) (*api.VerifyOTPResponse, error) {
	access, err := GenerateAccessToken(h.cfg.JWT, user, now)
	if err != nil {
		return nil, err
	}

	refresh, token, err := NewRefreshToken(h.cfg.JWT, user.ID, now)
	if err != nil {
		return nil, err
	}
	if err := h.tokenStorage.SaveRefreshToken(r.Context(), token); err != nil {
		return nil, err
	}

	return &api.VerifyOTPResponse{
		Access:       access,
		Refresh:      refresh,
		Role:         user.Role,
		BusinessSlug: user.BusinessSlug,
	}, nil
}

// Refresh обрабатывает POST /api/token/refresh/
// Выдает новый access token и ротирует refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}

	tokenHash := crypto.HashToken(req.Refresh)
	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(w, h.logger, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	now := h.now()
	if !now.Before(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		if err := h.tokenStorage.DeleteRefreshToken(ctx, tokenHash); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "failed to delete expired refresh token", slog.Any("error", err))
		}
		sendError(w, h.logger, http.StatusUnauthorized, "refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(w, h.logger, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}
	if !user.IsActive {
		sendError(w, h.logger, http.StatusUnauthorized, "account disabled")
		return
	}

	// Старый токен удаляется первым: повторное использование того же refresh token получит 401
	if err := h.tokenStorage.DeleteRefreshToken(ctx, tokenHash); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			sendError(w, h.logger, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	tokens, err := h.issueTokens(r, user, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID))

	sendJSON(w, h.logger, api.RefreshResponse{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout/
// Отзывает refresh token; повторный logout не является ошибкой
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LogoutRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}

	err := h.tokenStorage.DeleteRefreshToken(ctx, crypto.HashToken(req.Refresh))
	if err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		h.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.InfoContext(ctx, "refresh token revoked", slog.Bool("existed", err == nil))

	w.WriteHeader(http.StatusNoContent)
}
