// Package boltdb хранит сессию клиента в файле BoltDB.
// Все ключи лежат в одном bucket; каждая операция над несколькими ключами выполняется одной транзакцией.
package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// openTimeout сколько ждать файловую блокировку, если база открыта другим процессом niplan
const openTimeout = 2 * time.Second

// ErrLocked база сессии занята другим процессом
var ErrLocked = errors.New("session database is locked by another niplan process")

// bucketCredentials единственный bucket клиента: токены и метаданные сессии
var bucketCredentials = []byte("credentials")

// Storage BoltDB реализация storage.CredentialStorage
type Storage struct {
	db *bbolt.DB
}

// New открывает (или создает) файл сессии dbPath с правами 0600
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dbPath)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}
	if err := s.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close закрывает базу; повторный вызов ничего не делает
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return fmt.Errorf("failed to create credentials bucket: %w", err)
		}
		return nil
	})
}
