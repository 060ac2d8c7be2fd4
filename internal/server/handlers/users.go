package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avdeyev/authgate/internal/models"
	"github.com/avdeyev/authgate/internal/server/storage"
)

// GetUser обрабатывает GET /api/v1/auth/user/{id}
// Пользователь с ролью admin через этот lookup не отдается:
// для вызывающего он неотличим от несуществующего
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if userID == "" {
		h.sendError(w, "id is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err != nil || user.Role == models.RoleAdmin {
		h.sendError(w, fmt.Sprintf("No user found for id %s", userID), http.StatusNotFound)
		return
	}

	h.sendData(w, user, http.StatusOK)
}

// GetUsers обрабатывает GET /api/v1/auth/user
// Возвращает всех пользователей без пагинации
func (h *AuthHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.userStorage.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendData(w, users, http.StatusOK)
}

// GetMe обрабатывает GET /api/v1/auth/me
// Возвращает пользователя, уже привязанного к контексту Access Guard-ом
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	h.sendData(w, user, http.StatusOK)
}
