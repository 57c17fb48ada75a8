package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
	"github.com/iudanet/niplan/pkg/api"
)

// MarketStorage объединяет хранилища бутиков и товаров
type MarketStorage interface {
	storage.BusinessStorage
	storage.ProductStorage
}

// BusinessHandler обрабатывает запросы бутиков
type BusinessHandler struct {
	logger  *slog.Logger
	storage MarketStorage
}

// NewBusinessHandler создает новый handler бутиков
func NewBusinessHandler(logger *slog.Logger, storage MarketStorage) *BusinessHandler {
	return &BusinessHandler{
		logger:  logger,
		storage: storage,
	}
}

// GetMyBusiness обрабатывает GET /api/my-business/update/
func (h *BusinessHandler) GetMyBusiness(w http.ResponseWriter, r *http.Request) {
	business, ok := h.ownBusiness(w, r)
	if !ok {
		return
	}

	products, err := h.storage.ListBusinessProducts(r.Context(), business.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list products", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	sendJSON(w, h.logger, toAPIBusiness(business, products), http.StatusOK)
}

// UpdateMyBusiness обрабатывает PATCH /api/my-business/update/
// Частичное обновление: отсутствующие поля не меняются
func (h *BusinessHandler) UpdateMyBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.BusinessUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}

	business, ok := h.ownBusiness(w, r)
	if !ok {
		return
	}

	applyBusinessRequest(business, &req)
	if err := h.storage.UpdateBusiness(ctx, business); err != nil {
		h.logger.ErrorContext(ctx, "failed to update business", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.InfoContext(ctx, "business updated", slog.String("business_slug", business.Slug))

	sendJSON(w, h.logger, toAPIBusiness(business, nil), http.StatusOK)
}

// GetBusiness обрабатывает GET /api/business/{slug}/
// Публичная витрина вместе с товарами
func (h *BusinessHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	business, err := h.storage.GetBusinessBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrBusinessNotFound) {
			sendError(w, h.logger, http.StatusNotFound, "business not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get business", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	products, err := h.storage.ListBusinessProducts(ctx, business.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	sendJSON(w, h.logger, toAPIBusiness(business, products), http.StatusOK)
}

// ownBusiness возвращает бутик текущего пользователя или пишет ответ с ошибкой
func (h *BusinessHandler) ownBusiness(w http.ResponseWriter, r *http.Request) (*models.Business, bool) {
	return loadOwnBusiness(w, r, h.logger, h.storage)
}

func loadOwnBusiness(w http.ResponseWriter, r *http.Request, logger *slog.Logger, s storage.BusinessStorage) (*models.Business, bool) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(w, logger, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	business, err := s.GetBusinessByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrBusinessNotFound) {
			sendError(w, logger, http.StatusNotFound, "business not found")
			return nil, false
		}
		logger.ErrorContext(ctx, "failed to get business", slog.Any("error", err))
		sendError(w, logger, http.StatusInternalServerError, msgInternal)
		return nil, false
	}

	return business, true
}
