package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/niplan/internal/client/storage"
)

var _ storage.CredentialStorage = (*Storage)(nil)

// Get returns value stored under key
func (s *Storage) Get(ctx context.Context, key storage.Key) (string, error) {
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", storage.ErrUnknownKey, key)
	}

	var value string
	err := s.view(func(bucket *bbolt.Bucket) error {
		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}
		// Get возвращает срез, живущий только внутри транзакции
		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// Set stores value under key
func (s *Storage) Set(ctx context.Context, key storage.Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", storage.ErrUnknownKey, key)
	}

	return s.update(func(bucket *bbolt.Bucket) error {
		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

// Clear removes all credential keys in a single transaction
func (s *Storage) Clear(ctx context.Context) (int, error) {
	removed := 0
	err := s.update(func(bucket *bbolt.Bucket) error {
		for _, key := range storage.Keys() {
			if bucket.Get([]byte(key)) == nil {
				continue
			}
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// SetSession stores credential pair and session metadata in one transaction
func (s *Storage) SetSession(ctx context.Context, session *storage.Session) error {
	return s.update(func(bucket *bbolt.Bucket) error {
		for key, value := range session.Values() {
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

// GetSession reads all keys from one consistent snapshot
func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	values := make(map[storage.Key]string, len(storage.Keys()))
	err := s.view(func(bucket *bbolt.Bucket) error {
		for _, key := range storage.Keys() {
			if data := bucket.Get([]byte(key)); data != nil {
				values[key] = string(data)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return storage.SessionFromValues(values)
}

func (s *Storage) view(fn func(bucket *bbolt.Bucket) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}
		return fn(bucket)
	})
}

func (s *Storage) update(fn func(bucket *bbolt.Bucket) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}
		return fn(bucket)
	})
}
