package validation

import (
	"fmt"
	"regexp"

	"github.com/iudanet/niplan/internal/phone"
)

// OTPPattern одноразовый код: ровно 6 цифр
var OTPPattern = regexp.MustCompile(`^\d{6}$`)

// SlugPattern slug бутика или товара: строчные латинские буквы, цифры и дефисы
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	// MaxSlugLen максимальная длина slug
	MaxSlugLen = 80
)

// ValidateOTPCode проверяет формат одноразового кода
func ValidateOTPCode(code string) error {
	if code == "" {
		return fmt.Errorf("code cannot be empty")
	}
	if !OTPPattern.MatchString(code) {
		return fmt.Errorf("code must be exactly 6 digits")
	}
	return nil
}

// ValidatePhone проверяет номер WhatsApp и возвращает его каноническую форму
func ValidatePhone(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}

	normalized := phone.Normalize(raw)
	if !phone.IsValid(raw) {
		return "", fmt.Errorf("phone number %s must have 9 digits after %s", normalized, phone.DefaultCountryCode)
	}
	if !phone.IsInternational(normalized) {
		return "", fmt.Errorf("phone number must look like +243812345678")
	}

	return normalized, nil
}

// ValidateSlug проверяет slug из командной строки перед подстановкой в URL
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(slug) > MaxSlugLen {
		return fmt.Errorf("slug must not exceed %d characters", MaxSlugLen)
	}
	if !SlugPattern.MatchString(slug) {
		return fmt.Errorf("slug can only contain lowercase letters, digits and dashes")
	}
	return nil
}
