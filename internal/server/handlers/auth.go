package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avdeyev/authgate/internal/config"
	"github.com/avdeyev/authgate/internal/crypto"
	"github.com/avdeyev/authgate/internal/models"
	"github.com/avdeyev/authgate/internal/server/session"
	"github.com/avdeyev/authgate/internal/server/storage"
	"github.com/avdeyev/authgate/internal/validation"
	"github.com/avdeyev/authgate/pkg/api"
)

// AuthHandler обрабатывает запросы учетных записей и сессий
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	sessions    *session.Service
	cfg         *config.Config
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, sessions *session.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		sessions:    sessions,
		cfg:         cfg,
	}
}

// issueSession строит свежую сессию для пользователя и отправляет ее:
// HttpOnly cookie плюс токен в теле ответа.
// Построение сессии и запись ответа разделены: Issue ничего не пишет.
func (h *AuthHandler) issueSession(w http.ResponseWriter, user *models.User, statusCode int) {
	sess, err := h.sessions.Issue(user.ID, user.Role)
	if err != nil {
		h.logger.Error("failed to issue session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, sess.Cookie)
	h.sendData(w, api.SessionData{Token: sess.Token}, statusCode)
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация полей, включая недопустимую роль: такой запрос
	// отклоняется до создания записи, а не игнорируется молча
	if errs := validation.ValidateRegister(req); len(errs) > 0 {
		h.logger.WarnContext(ctx, "invalid register request", slog.String("email", req.Email))
		h.sendValidationErrors(w, errs)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	// Пароль хешируется явно до записи в хранилище,
	// в БД plaintext не попадает никогда
	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New().String(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		Role:           role,
		ProfilePicture: h.cfg.DefaultProfilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Уникальность email гарантирует само хранилище: одновременные
	// регистрации с одним email не создадут дубликат
	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", req.Email))
			h.sendError(w, fmt.Sprintf("User already exists for email: %s", req.Email), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	h.sendData(w, user, http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
// Аутентификация пользователя и выдача сессии
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		h.sendValidationErrors(w, errs)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			h.sendError(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !crypto.MatchPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: incorrect password", slog.String("email", req.Email))
		h.sendError(w, "Incorrect password", http.StatusUnauthorized)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	h.issueSession(w, user, http.StatusOK)
}

// Logout обрабатывает GET /api/v1/auth/logout
// Сессии stateless, на сервере отзывать нечего: клиенту
// отправляется истекшая cookie, чтобы он удалил токен
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, h.sessions.ClearCookie())

	h.logger.InfoContext(r.Context(), "user logged out", slog.String("user_id", user.ID))

	h.sendJSON(w, api.Response{Success: true}, http.StatusOK)
}

// UpdateProfile обрабатывает PUT /api/v1/auth/profile
// Частичное обновление профиля: применяются только переданные поля
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validation.ValidateProfileUpdate(req); len(errs) > 0 {
		h.sendValidationErrors(w, errs)
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	// Пароль не менялся, хеш сохраняется как есть
	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			h.sendError(w, fmt.Sprintf("User already exists for email: %s", req.Email), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("user_id", user.ID))

	h.sendJSON(w, api.Response{Success: true}, http.StatusOK)
}

// UpdatePassword обрабатывает PUT /api/v1/auth/password
// Смена пароля с проверкой текущего, по успеху выдается свежая сессия
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authUser, ok := UserFromContext(ctx)
	if !ok {
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req api.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode password request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Перечитываем пользователя вместе с хешем пароля
	user, err := h.userStorage.GetUserByID(ctx, authUser.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !crypto.MatchPassword(req.CurrentPassword, user.PasswordHash) {
		h.logger.WarnContext(ctx, "password change failed: incorrect current password",
			slog.String("user_id", user.ID))
		h.sendError(w, "Current password is incorrect", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		h.sendValidationErrors(w, []api.FieldError{{Field: "newPassword", Message: err.Error()}})
		return
	}

	if err := h.setPassword(ctx, user, req.NewPassword); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password updated", slog.String("user_id", user.ID))

	h.issueSession(w, user, http.StatusOK)
}

// ForgotPassword обрабатывает POST /api/v1/auth/password
// Выдача reset-токена по email: сырое значение возвращается вызывающему,
// в хранилище попадает только SHA256 хеш и срок действия
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode forgot password request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "forgot password: user not found", slog.String("email", req.Email))
			h.sendError(w, fmt.Sprintf("No user found for email: %s", req.Email), http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resetToken, err := crypto.IssueResetToken(h.cfg.ResetTokenValidity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user.SetResetToken(resetToken.Hash, resetToken.ExpiresAt)

	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to save reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "reset token issued", slog.String("user_id", user.ID))

	h.sendData(w, api.ResetTokenData{ResetToken: resetToken.Raw}, http.StatusOK)
}

// ResetPassword обрабатывает PUT /api/v1/auth/password/{token}
// Установка нового пароля по reset-токену. Токен одноразовый:
// по успеху оба reset-поля сбрасываются
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawToken := r.PathValue("token")
	if rawToken == "" {
		h.sendError(w, "token is required", http.StatusBadRequest)
		return
	}

	var req api.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode reset password request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Ищем пользователя по хешу предъявленного токена с непросроченным сроком
	tokenHash := crypto.HashResetToken(rawToken)
	user, err := h.userStorage.GetUserByResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "reset password: invalid or expired token")
			h.sendError(w, "Invalid or expired token", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user by reset token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendValidationErrors(w, []api.FieldError{{Field: "password", Message: err.Error()}})
		return
	}

	user.ClearResetToken()

	if err := h.setPassword(ctx, user, req.Password); err != nil {
		h.logger.ErrorContext(ctx, "failed to reset password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password reset", slog.String("user_id", user.ID))

	h.issueSession(w, user, http.StatusOK)
}

// setPassword хеширует новый пароль и сохраняет пользователя
func (h *AuthHandler) setPassword(ctx context.Context, user *models.User, password string) error {
	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash

	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}
