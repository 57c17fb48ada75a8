package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// OTPLength количество цифр одноразового кода
	OTPLength = 6
	// RefreshTokenSize размер refresh token в байтах до кодирования
	RefreshTokenSize = 32
)

// ErrOTPMismatch код не совпадает с сохраненным хешем
var ErrOTPMismatch = errors.New("otp code mismatch")

// GenerateOTP генерирует криптографически случайный код из OTPLength цифр
func GenerateOTP() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// HashOTP хеширует код с использованием bcrypt
func HashOTP(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("otp code cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return string(hash), nil
}

// VerifyOTP проверяет код против bcrypt хеша
func VerifyOTP(code, hash string) error {
	if code == "" || hash == "" {
		return ErrOTPMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrOTPMismatch
		}
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	return nil
}

// GenerateRefreshToken генерирует случайный refresh token (base64 URL encoding)
func GenerateRefreshToken() (string, error) {
	b := make([]byte, RefreshTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken возвращает hex SHA256 токена.
// Сервер хранит только хеш refresh token, поиск идет по хешу.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
