package auth

import (
	"context"
	"fmt"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/crypto"
)

// SealedStore implements storage.CredentialStorage and provides encryption layer
// between business logic and storage. Token values are sealed with AES-256-GCM
// before saving and opened when retrieved; session metadata is stored as is.
type SealedStore struct {
	inner storage.CredentialStorage
	key   []byte
}

// Compile-time check that SealedStore implements storage.CredentialStorage
var _ storage.CredentialStorage = (*SealedStore)(nil)

// NewSealedStore creates a new SealedStore.
// key must be exactly 32 bytes (see crypto.LoadOrCreateKey)
func NewSealedStore(inner storage.CredentialStorage, key []byte) (*SealedStore, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &SealedStore{inner: inner, key: key}, nil
}

func (s *SealedStore) Get(ctx context.Context, key storage.Key) (string, error) {
	value, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return s.open(key, value)
}

func (s *SealedStore) Set(ctx context.Context, key storage.Key, value string) error {
	sealed, err := s.seal(key, value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) Clear(ctx context.Context) (int, error) {
	return s.inner.Clear(ctx)
}

// SetSession шифрует токены и сохраняет сессию целиком
func (s *SealedStore) SetSession(ctx context.Context, session *storage.Session) error {
	sealedAccess, err := s.seal(storage.KeyAccessToken, session.AccessToken)
	if err != nil {
		return err
	}
	sealedRefresh, err := s.seal(storage.KeyRefreshToken, session.RefreshToken)
	if err != nil {
		return err
	}

	// копируем структуру, чтобы не менять входящую
	sessionCopy := *session
	sessionCopy.AccessToken = sealedAccess
	sessionCopy.RefreshToken = sealedRefresh

	return s.inner.SetSession(ctx, &sessionCopy)
}

// GetSession загружает сессию и расшифровывает токены
func (s *SealedStore) GetSession(ctx context.Context) (*storage.Session, error) {
	stored, err := s.inner.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	access, err := s.open(storage.KeyAccessToken, stored.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.open(storage.KeyRefreshToken, stored.RefreshToken)
	if err != nil {
		return nil, err
	}

	session := *stored
	session.AccessToken = access
	session.RefreshToken = refresh
	return &session, nil
}

func isSealed(key storage.Key) bool {
	return key == storage.KeyAccessToken || key == storage.KeyRefreshToken
}

// seal шифрует значение токена. Пустые значения хранятся как есть.
func (s *SealedStore) seal(key storage.Key, value string) (string, error) {
	if !isSealed(key) || value == "" {
		return value, nil
	}
	sealed, err := crypto.SealToBase64(value, s.key, string(key))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return sealed, nil
}

func (s *SealedStore) open(key storage.Key, value string) (string, error) {
	if !isSealed(key) || value == "" {
		return value, nil
	}
	plain, err := crypto.OpenFromBase64(value, s.key, string(key))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", key, err)
	}
	return plain, nil
}
