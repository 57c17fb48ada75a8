// Package memory implements storage.CredentialStorage in process memory.
// It backs tests and the client's --ephemeral mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iudanet/niplan/internal/client/storage"
)

var _ storage.CredentialStorage = (*Storage)(nil)

// Storage хранит значения в map под RWMutex
type Storage struct {
	values map[storage.Key]string
	mu     sync.RWMutex
}

// New creates an empty in-memory storage
func New() *Storage {
	return &Storage{values: make(map[storage.Key]string)}
}

func (s *Storage) Get(ctx context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", storage.ErrUnknownKey, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key storage.Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", storage.ErrUnknownKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *Storage) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.values)
	clear(s.values)
	return removed, nil
}

func (s *Storage) SetSession(ctx context.Context, session *storage.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range session.Values() {
		s.values[key] = value
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[storage.Key]string, len(s.values))
	for key, value := range s.values {
		values[key] = value
	}
	return storage.SessionFromValues(values)
}
