package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeyev/authgate/internal/client/storage"
)

// RunStatus выполняет команду status: показывает сохраненную сессию
func RunStatus(ctx context.Context, authStorage storage.AuthStorage) error {
	auth, err := authStorage.GetAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			fmt.Println("Not authenticated.")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	fmt.Println("=== Session ===")
	fmt.Printf("Email: %s\n", auth.Email)

	if auth.ExpiresAt > 0 {
		expiresAt := time.Unix(auth.ExpiresAt, 0)
		if time.Now().After(expiresAt) {
			fmt.Printf("Token expired at: %s\n", expiresAt.Format(time.RFC3339))
		} else {
			fmt.Printf("Token expires at: %s\n", expiresAt.Format(time.RFC3339))
		}
	}

	return nil
}
