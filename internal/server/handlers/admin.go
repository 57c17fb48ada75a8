package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/niplan/internal/server/storage"
	"github.com/iudanet/niplan/pkg/api"
)

// adminOTPLimit сколько последних кодов показывает панель
const adminOTPLimit = 100

// AdminStorage хранилища, которые читает панель администратора
type AdminStorage interface {
	storage.UserStorage
	storage.OTPStorage
}

// AdminHandler обрабатывает запросы панели администратора
type AdminHandler struct {
	logger  *slog.Logger
	storage AdminStorage
}

// NewAdminHandler создает новый handler администратора
func NewAdminHandler(logger *slog.Logger, storage AdminStorage) *AdminHandler {
	return &AdminHandler{
		logger:  logger,
		storage: storage,
	}
}

// Users обрабатывает GET /api/admin/users/
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list users", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	resp := make([]api.AdminUser, 0, len(users))
	for _, u := range users {
		resp = append(resp, api.AdminUser{
			ID:           u.ID,
			Phone:        u.Phone,
			Role:         u.Role,
			BusinessSlug: u.BusinessSlug,
			IsActive:     u.IsActive,
			CreatedAt:    u.CreatedAt,
		})
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// OTPs обрабатывает GET /api/admin/otps/
// Хеш кода не отдается
func (h *AdminHandler) OTPs(w http.ResponseWriter, r *http.Request) {
	otps, err := h.storage.ListOTPs(r.Context(), adminOTPLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list otps", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	resp := make([]api.AdminOTP, 0, len(otps))
	for _, o := range otps {
		resp = append(resp, api.AdminOTP{
			ID:        o.ID,
			Phone:     o.Phone,
			Used:      o.Used,
			ExpiresAt: o.ExpiresAt,
			CreatedAt: o.CreatedAt,
		})
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}
