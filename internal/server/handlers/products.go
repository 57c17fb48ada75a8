package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/niplan/internal/catalog"
	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
	"github.com/iudanet/niplan/pkg/api"
)

const (
	defaultProductName = "produit"
	// slugAttempts число попыток подобрать свободный slug
	slugAttempts = 3
)

// ProductHandler обрабатывает запросы каталога и товаров продавца
type ProductHandler struct {
	logger  *slog.Logger
	storage MarketStorage
	now     func() time.Time
}

// NewProductHandler создает новый handler товаров
func NewProductHandler(logger *slog.Logger, storage MarketStorage) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListProducts обрабатывает GET /api/products/?q=&business=&currency=&available=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := models.ProductFilter{
		Query:        query.Get("q"),
		BusinessSlug: query.Get("business"),
		Currency:     query.Get("currency"),
	}
	if raw := query.Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(w, h.logger, http.StatusBadRequest, "available must be a boolean")
			return
		}
		filter.OnlyAvailable = available
	}

	products, err := h.storage.ListProducts(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	sendJSON(w, h.logger, toAPIProducts(products), http.StatusOK)
}

// ListMyProducts обрабатывает GET /api/my-products/
func (h *ProductHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	business, ok := loadOwnBusiness(w, r, h.logger, h.storage)
	if !ok {
		return
	}

	products, err := h.storage.ListBusinessProducts(r.Context(), business.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list products", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	sendJSON(w, h.logger, toAPIProducts(products), http.StatusOK)
}

// CreateProduct обрабатывает POST /api/my-products/create/
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}
	if req.Name == nil {
		sendError(w, h.logger, http.StatusBadRequest, "name: failed on required")
		return
	}

	business, ok := loadOwnBusiness(w, r, h.logger, h.storage)
	if !ok {
		return
	}

	now := h.now()
	product := &models.Product{
		ID:           newID(),
		BusinessID:   business.ID,
		Currency:     "USD",
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
		BusinessName: business.Name,
		BusinessSlug: business.Slug,
		OwnerPhone:   business.OwnerPhone,
	}
	applyProductRequest(product, &req)

	base := catalog.Slugify(product.Name)
	if base == "" {
		base = defaultProductName
	}

	var err error
	for range slugAttempts {
		product.Slug = base + "-" + slugSuffix()
		err = h.storage.CreateProduct(ctx, product)
		if !errors.Is(err, storage.ErrSlugTaken) {
			break
		}
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.String("business_slug", business.Slug),
		slog.String("product_slug", product.Slug))

	sendJSON(w, h.logger, toAPIProduct(product), http.StatusCreated)
}

// EditProduct обрабатывает PATCH /api/my-products/{slug}/edit/
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		sendDecodeError(w, h.logger, err)
		return
	}

	business, ok := loadOwnBusiness(w, r, h.logger, h.storage)
	if !ok {
		return
	}

	product, err := h.storage.GetProduct(ctx, business.ID, mux.Vars(r)["slug"])
	if err != nil {
		h.sendProductError(w, r, err)
		return
	}

	applyProductRequest(product, &req)
	product.UpdatedAt = h.now()

	if err := h.storage.UpdateProduct(ctx, product); err != nil {
		h.sendProductError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "product updated", slog.String("product_slug", product.Slug))

	sendJSON(w, h.logger, toAPIProduct(product), http.StatusOK)
}

// DeleteProduct обрабатывает DELETE /api/my-products/{slug}/delete/
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := loadOwnBusiness(w, r, h.logger, h.storage)
	if !ok {
		return
	}

	slug := mux.Vars(r)["slug"]
	if err := h.storage.DeleteProduct(ctx, business.ID, slug); err != nil {
		h.sendProductError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.String("product_slug", slug))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) sendProductError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrProductNotFound) {
		sendError(w, h.logger, http.StatusNotFound, "product not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "product storage failed", slog.Any("error", err))
	sendError(w, h.logger, http.StatusInternalServerError, msgInternal)
}
