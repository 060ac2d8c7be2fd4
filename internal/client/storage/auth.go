package storage

import "context"

// AuthData представляет сохраненную сессию пользователя
type AuthData struct {
	Email     string `json:"email"`      // email пользователя
	Token     string `json:"token"`      // сессионный JWT
	ExpiresAt int64  `json:"expires_at"` // unix time истечения токена
}

// AuthStorage defines interface for session persistence on the client
type AuthStorage interface {
	// SaveAuth stores session data, replacing any previous session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the saved session
	// Returns ErrAuthNotFound if no session is saved
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the saved session
	DeleteAuth(ctx context.Context) error
}
