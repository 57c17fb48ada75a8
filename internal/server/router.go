// Package server собирает HTTP API маркетплейса: маршруты, middleware и handlers.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/handlers"
	"github.com/iudanet/niplan/internal/server/middleware"
	"github.com/iudanet/niplan/internal/server/storage"
)

const (
	APIPrefix  = "/api"
	healthPath = APIPrefix + "/health/"
)

// Storage все хранилища, с которыми работает API
type Storage interface {
	storage.UserStorage
	storage.OTPStorage
	storage.TokenStorage
	storage.BusinessStorage
	storage.ProductStorage
	handlers.Pinger
}

// Config настройки API
type Config struct {
	// IsSuperadmin сообщает, получает ли номер роль superadmin
	IsSuperadmin func(phone string) bool
	Version      string
	JWT          handlers.JWTConfig
	OTPTTL       time.Duration
	// OTPRate запросов к request-otp и verify-otp с одного IP за OTPWindow
	OTPRate   int
	OTPWindow time.Duration
	Debug     bool
}

// NewRouter создает маршрутизатор API
func NewRouter(logger *slog.Logger, store Storage, sender handlers.OTPSender, cfg Config) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, store, store, sender, handlers.AuthConfig{
		IsSuperadmin: cfg.IsSuperadmin,
		JWT:          cfg.JWT,
		OTPTTL:       cfg.OTPTTL,
		Debug:        cfg.Debug,
	})
	businessHandler := handlers.NewBusinessHandler(logger, store)
	productHandler := handlers.NewProductHandler(logger, store)
	adminHandler := handlers.NewAdminHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, cfg.Version)

	router := mux.NewRouter()
	router.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingWithSkip(logger, []string{healthPath}),
		middleware.RateLimitByPathMiddleware([]middleware.PathRateLimit{
			{Path: APIPrefix + "/auth/request-otp/", Rate: cfg.OTPRate, Window: cfg.OTPWindow},
			{Path: APIPrefix + "/auth/verify-otp/", Rate: cfg.OTPRate, Window: cfg.OTPWindow},
		}, logger),
	)

	api := router.PathPrefix(APIPrefix).Subrouter()

	// Публичные маршруты
	api.HandleFunc("/health/", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/auth/request-otp/", authHandler.RequestOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp/", authHandler.VerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout/", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/token/refresh/", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/products/", productHandler.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/business/{slug}/", businessHandler.GetBusiness).Methods(http.MethodGet)

	// Защищенные маршруты регистрируются прямо на api, без вложенных subrouter:
	// иначе gorilla/mux отвечает 404 вместо 405 на несовпадение метода
	requireAuth := middleware.AuthMiddleware(logger, cfg.JWT)
	requireAdmin := middleware.RequireRole(logger, models.RoleSuperadmin)

	vendor := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }
	superadmin := func(h http.HandlerFunc) http.Handler { return requireAuth(requireAdmin(h)) }

	api.Handle("/my-business/update/", vendor(businessHandler.GetMyBusiness)).Methods(http.MethodGet)
	api.Handle("/my-business/update/", vendor(businessHandler.UpdateMyBusiness)).Methods(http.MethodPatch)

	api.Handle("/my-products/", vendor(productHandler.ListMyProducts)).Methods(http.MethodGet)
	api.Handle("/my-products/create/", vendor(productHandler.CreateProduct)).Methods(http.MethodPost)
	api.Handle("/my-products/{slug}/edit/", vendor(productHandler.EditProduct)).Methods(http.MethodPatch)
	api.Handle("/my-products/{slug}/delete/", vendor(productHandler.DeleteProduct)).Methods(http.MethodDelete)

	api.Handle("/admin/users/", superadmin(adminHandler.Users)).Methods(http.MethodGet)
	api.Handle("/admin/otps/", superadmin(adminHandler.OTPs)).Methods(http.MethodGet)

	return router
}
