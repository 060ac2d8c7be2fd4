package validation

import (
	"fmt"
	"regexp"

	"github.com/avdeyev/authgate/internal/models"
	"github.com/avdeyev/authgate/pkg/api"
)

// EmailPattern определяет допустимый формат email адреса
var EmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 254
)

// ValidateEmail проверяет, что email непустой и соответствует формату
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid email address")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 8 символов
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateRegister проверяет все поля запроса регистрации.
// Возвращает список ошибок по полям; пустой список означает валидный запрос.
func ValidateRegister(req api.RegisterRequest) []api.FieldError {
	var errs []api.FieldError

	if req.FirstName == "" {
		errs = append(errs, api.FieldError{Field: "firstName", Message: "Firstname is required."})
	}
	if req.LastName == "" {
		errs = append(errs, api.FieldError{Field: "lastName", Message: "Lastname is required."})
	}
	if err := ValidateEmail(req.Email); err != nil {
		errs = append(errs, api.FieldError{Field: "email", Message: err.Error()})
	}
	if err := ValidatePassword(req.Password); err != nil {
		errs = append(errs, api.FieldError{Field: "password", Message: err.Error()})
	}
	// Отсутствующая роль допустима (по умолчанию "user"), любое другое
	// значение кроме разрешенных отклоняется до создания записи
	if req.Role != "" && !models.ValidRole(req.Role) {
		errs = append(errs, api.FieldError{Field: "role", Message: "Invalid role"})
	}

	return errs
}

// ValidateLogin проверяет поля запроса аутентификации
func ValidateLogin(req api.LoginRequest) []api.FieldError {
	var errs []api.FieldError

	if err := ValidateEmail(req.Email); err != nil {
		errs = append(errs, api.FieldError{Field: "email", Message: err.Error()})
	}
	if req.Password == "" {
		errs = append(errs, api.FieldError{Field: "password", Message: "Password is required."})
	}

	return errs
}

// ValidateProfileUpdate проверяет только переданные поля частичного обновления
func ValidateProfileUpdate(req api.UpdateProfileRequest) []api.FieldError {
	var errs []api.FieldError

	if req.Email != "" {
		if err := ValidateEmail(req.Email); err != nil {
			errs = append(errs, api.FieldError{Field: "email", Message: err.Error()})
		}
	}

	return errs
}
