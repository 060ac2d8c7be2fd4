package models

import "time"

// Role values allowed for a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет учетную запись пользователя.
// PasswordHash и reset-поля никогда не сериализуются в ответах API.
type User struct {
	ID                  string     `json:"id"`             // UUID пользователя
	FirstName           string     `json:"firstName"`      // имя
	LastName            string     `json:"lastName"`       // фамилия
	Email               string     `json:"email"`          // уникальный email
	PasswordHash        string     `json:"-"`              // bcrypt хеш пароля
	Role                string     `json:"role"`           // "user" | "admin"
	ProfilePicture      string     `json:"profilePicture"` // URL аватара
	ResetTokenHash      *string    `json:"-"`              // SHA256 хеш reset-токена
	ResetTokenExpiresAt *time.Time `json:"-"`              // срок действия reset-токена
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ValidRole reports whether role is one of the allowed role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// SetResetToken записывает хеш reset-токена и срок его действия.
// Оба поля всегда устанавливаются вместе.
func (u *User) SetResetToken(hash string, expiresAt time.Time) {
	u.ResetTokenHash = &hash
	u.ResetTokenExpiresAt = &expiresAt
}

// ClearResetToken сбрасывает оба reset-поля.
// Вызывается после успешного reset password.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
}
