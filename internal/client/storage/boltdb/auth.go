package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/avdeyev/authgate/internal/client/storage"
)

// keyAuthData ключ записи сессии внутри bucket auth
var keyAuthData = []byte("session")

// Compile-time check that Storage implements AuthStorage
var _ storage.AuthStorage = (*Storage)(nil)

// SaveAuth stores session data, replacing any previous session
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}

	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		return bucket.Put(keyAuthData, data)
	})
}

// GetAuth retrieves the saved session
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(keyAuthData)
		if data == nil {
			return storage.ErrAuthNotFound
		}

		return json.Unmarshal(data, &auth)
	})
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// DeleteAuth removes the saved session
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		return bucket.Delete(keyAuthData)
	})
}
