package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost стоимость bcrypt для хеширования паролей
const BcryptCost = 10

// HashPassword хеширует пароль с использованием bcrypt (соль встроена в хеш).
// Вызывается сервисом явно перед записью пользователя в хранилище,
// сам хеш при повторном сохранении без смены пароля не пересчитывается.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// MatchPassword проверяет, соответствует ли plaintext пароль сохраненному хешу.
// Возвращает true только для того пароля, из которого хеш был получен.
func MatchPassword(password, passwordHash string) bool {
	if password == "" || passwordHash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
