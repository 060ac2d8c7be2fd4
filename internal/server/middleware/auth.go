package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avdeyev/authgate/internal/server/handlers"
	"github.com/avdeyev/authgate/internal/server/session"
	"github.com/avdeyev/authgate/internal/server/storage"
)

// extractToken извлекает сессионный токен из запроса.
// Основной канал — HttpOnly cookie, Authorization: Bearer
// поддерживается для не-браузерных клиентов.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// AuthMiddleware создает middleware проверки сессии (Access Guard).
// Валидирует токен, загружает пользователя из хранилища
// и привязывает его к контексту запроса.
func AuthMiddleware(logger *slog.Logger, sessions *session.Service, users storage.UserStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				logger.Warn("missing session token")
				writeUnauthorized(w, "Unauthorized: missing token")
				return
			}

			claims, err := sessions.Validate(tokenString)
			if err != nil {
				logger.Warn("invalid session token", "error", err)
				writeUnauthorized(w, "Unauthorized: invalid token")
				return
			}

			// Токен валиден, но пользователь мог быть удален после выдачи
			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrUserNotFound) {
					logger.Warn("session user not found", "user_id", claims.UserID)
					writeUnauthorized(w, "Unauthorized: unknown user")
					return
				}
				logger.Error("failed to load session user", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			logger.Debug("user authenticated", "user_id", user.ID, "email", user.Email)

			ctx := handlers.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized отправляет 401 в формате конверта API
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"msg":"` + message + `"}`))
}
