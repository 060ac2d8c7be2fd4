package handlers

import (
	"context"

	"github.com/avdeyev/authgate/internal/models"
)

// contextKey тип для ключей контекста запроса
type contextKey string

const (
	// UserKey ключ для хранения аутентифицированного пользователя в контексте
	UserKey contextKey = "user"
)

// ContextWithUser возвращает контекст с привязанным пользователем.
// Используется Access Guard middleware после валидации токена.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext извлекает аутентифицированного пользователя из контекста
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
