// Package config загружает настройки клиента и сервера из окружения (NIPLAN_*).
// Необязательный .env файл подгружается через godotenv; флаги бинарников
// переопределяют значения после загрузки.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iudanet/niplan/internal/client/transport"
	"github.com/iudanet/niplan/internal/phone"
)

// ErrMissingJWTSecret сервер не может выдавать токены без секрета
var ErrMissingJWTSecret = errors.New("NIPLAN_JWT_SECRET is required")

const (
	DefaultClientDB   = "niplan-client.db"
	DefaultKeyFile    = "niplan.key"
	DefaultShopOrigin = "http://localhost:5173"

	DefaultServerAddr = ":8000"
	DefaultServerDB   = "niplan-server.db"
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
	DefaultOTPTTL     = 5 * time.Minute
	DefaultOTPRate    = 5
	DefaultOTPWindow  = time.Minute
)

// ClientConfig настройки CLI клиента
type ClientConfig struct {
	APIURL         string
	DBPath         string
	KeyPath        string
	ShopOrigin     string
	RefreshTimeout time.Duration
	LogLevel       slog.Level
}

// ServerConfig настройки API сервера
type ServerConfig struct {
	Addr             string
	DBPath           string
	JWTSecret        string
	SuperadminPhones []string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTPTTL           time.Duration
	OTPWindow        time.Duration
	OTPRate          int
	LogLevel         slog.Level
	// Debug возвращает код OTP в ответе request-otp
	Debug bool
}

// LoadDotEnv подгружает .env из текущей директории (или указанные файлы).
// Отсутствие файла не является ошибкой.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadClient читает настройки клиента из окружения
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		APIURL:     getEnv("NIPLAN_API_URL", transport.DefaultBaseURL),
		DBPath:     getEnv("NIPLAN_DB", DefaultClientDB),
		KeyPath:    getEnv("NIPLAN_KEY_FILE", DefaultKeyFile),
		ShopOrigin: getEnv("NIPLAN_SHOP_ORIGIN", DefaultShopOrigin),
	}

	var err error
	if cfg.RefreshTimeout, err = getDurationEnv("NIPLAN_REFRESH_TIMEOUT", transport.DefaultRefreshTimeout); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = getLevelEnv("NIPLAN_LOG_LEVEL", slog.LevelWarn); err != nil {
		return nil, err
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

// LoadServer читает настройки сервера из окружения
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:      getEnv("NIPLAN_ADDR", DefaultServerAddr),
		DBPath:    getEnv("NIPLAN_DB", DefaultServerDB),
		JWTSecret: os.Getenv("NIPLAN_JWT_SECRET"),
	}

	for _, raw := range getStringSliceEnv("NIPLAN_SUPERADMIN_PHONES") {
		cfg.SuperadminPhones = append(cfg.SuperadminPhones, phone.Normalize(raw))
	}

	var err error
	if cfg.AccessTTL, err = getDurationEnv("NIPLAN_ACCESS_TTL", DefaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = getDurationEnv("NIPLAN_REFRESH_TTL", DefaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = getDurationEnv("NIPLAN_OTP_TTL", DefaultOTPTTL); err != nil {
		return nil, err
	}
	if cfg.OTPWindow, err = getDurationEnv("NIPLAN_OTP_WINDOW", DefaultOTPWindow); err != nil {
		return nil, err
	}
	if cfg.OTPRate, err = getIntEnv("NIPLAN_OTP_RATE", DefaultOTPRate); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getBoolEnv("NIPLAN_DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = getLevelEnv("NIPLAN_LOG_LEVEL", slog.LevelInfo); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля. Вызывается после применения флагов.
func (c *ServerConfig) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.OTPRate <= 0 {
		return fmt.Errorf("invalid NIPLAN_OTP_RATE: %d", c.OTPRate)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 || c.OTPTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

// IsSuperadmin проверяет номер (в канонической форме) по списку NIPLAN_SUPERADMIN_PHONES
func (c *ServerConfig) IsSuperadmin(canonical string) bool {
	for _, p := range c.SuperadminPhones {
		if p == canonical {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getLevelEnv(key string, fallback slog.Level) (slog.Level, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return level, nil
}

// getStringSliceEnv разбирает список через запятую, пустые элементы отбрасываются
func getStringSliceEnv(key string) []string {
	var result []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
