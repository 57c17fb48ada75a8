package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/niplan/internal/crypto"
	"github.com/iudanet/niplan/internal/models"
)

const tokenIssuer = "niplan"

// ErrInvalidToken access token не прошел проверку
var ErrInvalidToken = errors.New("invalid token")

// Claims представляет JWT claims access token
type Claims struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	BusinessSlug string `json:"business_slug"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GenerateAccessToken создает новый JWT access token для пользователя
func GenerateAccessToken(cfg JWTConfig, user *models.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:       user.ID,
		Role:         user.Role,
		BusinessSlug: user.BusinessSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken валидирует и парсит JWT access token
func ValidateAccessToken(cfg JWTConfig, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// NewRefreshToken создает случайный refresh token.
// Клиенту уходит raw, в хранилище попадает только хеш.
func NewRefreshToken(cfg JWTConfig, userID string, now time.Time) (string, *models.RefreshToken, error) {
	raw, err := crypto.GenerateRefreshToken()
	if err != nil {
		return "", nil, err
	}

	return raw, &models.RefreshToken{
		ID:        newID(),
		UserID:    userID,
		TokenHash: crypto.HashToken(raw),
		ExpiresAt: now.Add(cfg.RefreshTokenTTL),
		CreatedAt: now,
	}, nil
}
