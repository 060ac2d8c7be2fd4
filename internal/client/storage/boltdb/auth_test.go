package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/authgate/internal/client/storage"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSaveAndGetAuth(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	auth := &storage.AuthData{
		Email:     "a@b.com",
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}

	require.NoError(t, s.SaveAuth(ctx, auth))

	got, err := s.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.Email, got.Email)
	assert.Equal(t, auth.Token, got.Token)
	assert.Equal(t, auth.ExpiresAt, got.ExpiresAt)
}

func TestGetAuth_NotFound(t *testing.T) {
	s := setupStorage(t)

	_, err := s.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestSaveAuth_Replaces(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Email: "a@b.com", Token: "first"}))
	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Email: "b@b.com", Token: "second"}))

	got, err := s.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b@b.com", got.Email)
	assert.Equal(t, "second", got.Token)
}

func TestSaveAuth_Nil(t *testing.T) {
	s := setupStorage(t)

	assert.Error(t, s.SaveAuth(context.Background(), nil))
}

func TestDeleteAuth(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Email: "a@b.com", Token: "token"}))
	require.NoError(t, s.DeleteAuth(ctx))

	_, err := s.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestDeleteAuth_Empty(t *testing.T) {
	s := setupStorage(t)

	// Удаление без сохраненной сессии не ошибка
	assert.NoError(t, s.DeleteAuth(context.Background()))
}

func TestAuthPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Email: "a@b.com", Token: "token"}))
	require.NoError(t, s.Close())

	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token", got.Token)
}
