package models

import "time"

// Роли пользователей
const (
	RoleVendor     = "vendor"
	RoleSuperadmin = "superadmin"
)

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time `json:"created_at"`    // время создания
	ID           string    `json:"id"`            // UUID пользователя
	Phone        string    `json:"phone"`         // номер WhatsApp в канонической форме
	Role         string    `json:"role"`          // vendor | superadmin
	BusinessSlug string    `json:"business_slug"` // slug бутика (заполняется при чтении)
	IsActive     bool      `json:"is_active"`     // заблокированный пользователь не может войти
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	ID        string    `json:"id"`         // UUID токена
	UserID    string    `json:"user_id"`    // ID пользователя
	TokenHash string    `json:"token_hash"` // SHA-256 хеш токена (hex)
}

// OTP представляет выданный одноразовый код
type OTP struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"-"` // bcrypt хеш кода
	Used      bool      `json:"used"`
}

// Expired проверяет, истек ли код к моменту now
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
