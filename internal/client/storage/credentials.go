package storage

import (
	"context"
)

// Key names a single value in the credential store.
// The set of keys is fixed; storages reject anything else with ErrUnknownKey.
type Key string

const (
	KeyAccessToken  Key = "accessToken"
	KeyRefreshToken Key = "refreshToken"
	KeyRole         Key = "role"
	KeyBusinessSlug Key = "businessSlug"
)

// Keys возвращает все ключи хранилища в фиксированном порядке
func Keys() []Key {
	return []Key{KeyAccessToken, KeyRefreshToken, KeyRole, KeyBusinessSlug}
}

// Valid reports whether k belongs to the fixed key set.
func (k Key) Valid() bool {
	switch k {
	case KeyAccessToken, KeyRefreshToken, KeyRole, KeyBusinessSlug:
		return true
	}
	return false
}

// Role роль пользователя, выданная сервером при входе
type Role string

const (
	RoleVendor     Role = "vendor"
	RoleSuperadmin Role = "superadmin"
)

// CredentialStorage defines interface for storing credentials and session metadata on client.
// All methods are synchronous and every multi-key operation is atomic:
// a reader never observes a half-written or half-cleared session.
type CredentialStorage interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key Key) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key Key, value string) error

	// Clear removes every key in one step and reports how many were present
	Clear(ctx context.Context) (int, error)

	// SetSession writes the credential pair and session metadata together (login)
	SetSession(ctx context.Context, session *Session) error

	// GetSession reads all keys at once.
	// Returns ErrSessionNotFound if neither token is stored.
	GetSession(ctx context.Context) (*Session, error)
}

// Session represents credential pair plus session metadata.
// IMPORTANT: the same struct is used above and below auth.SealedStore:
// - in memory (business logic): tokens are plaintext
// - in BoltDB behind SealedStore: tokens are encrypted (base64-encoded ciphertext)
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         Role   `json:"role"`
	BusinessSlug string `json:"business_slug"`
}

// Values раскладывает сессию по ключам хранилища
func (s *Session) Values() map[Key]string {
	return map[Key]string{
		KeyAccessToken:  s.AccessToken,
		KeyRefreshToken: s.RefreshToken,
		KeyRole:         string(s.Role),
		KeyBusinessSlug: s.BusinessSlug,
	}
}

// SessionFromValues собирает сессию из значений по ключам.
// Отсутствующие ключи дают пустые поля.
func SessionFromValues(values map[Key]string) (*Session, error) {
	_, hasAccess := values[KeyAccessToken]
	_, hasRefresh := values[KeyRefreshToken]
	if !hasAccess && !hasRefresh {
		return nil, ErrSessionNotFound
	}

	return &Session{
		AccessToken:  values[KeyAccessToken],
		RefreshToken: values[KeyRefreshToken],
		Role:         Role(values[KeyRole]),
		BusinessSlug: values[KeyBusinessSlug],
	}, nil
}
