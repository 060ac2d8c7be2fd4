package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenSize размер сырого reset-токена в байтах
const ResetTokenSize = 20

// ResetToken содержит обе формы reset-токена:
// сырое значение возвращается клиенту ровно один раз,
// в хранилище попадает только Hash.
type ResetToken struct {
	Raw       string    // hex-encoded случайные байты
	Hash      string    // SHA256 хеш сырого значения (hex)
	ExpiresAt time.Time // срок действия
}

// IssueResetToken генерирует криптографически случайный reset-токен
// со сроком действия now + validity
func IssueResetToken(validity time.Duration) (*ResetToken, error) {
	tokenBytes := make([]byte, ResetTokenSize)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random token: %w", err)
	}

	raw := hex.EncodeToString(tokenBytes)

	return &ResetToken{
		Raw:       raw,
		Hash:      HashResetToken(raw),
		ExpiresAt: time.Now().Add(validity),
	}, nil
}

// HashResetToken вычисляет сохраняемую форму reset-токена.
// Детерминированный SHA256, позволяет искать пользователя по хешу
// предъявленного сырого токена.
func HashResetToken(raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// VerifyResetToken проверяет сырой токен против сохраненного хеша и срока действия
func VerifyResetToken(raw, storedHash string, expiresAt, now time.Time) bool {
	if raw == "" || storedHash == "" {
		return false
	}
	if !now.Before(expiresAt) {
		return false
	}

	return HashResetToken(raw) == storedHash
}
