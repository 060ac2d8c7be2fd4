package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
)

// RunLogout выполняет команду logout
func RunLogout(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	if _, err := loadSession(ctx, apiClient, authStorage); err != nil {
		return err
	}

	// Сервер инструктирует браузерных клиентов удалить cookie;
	// локальную сессию удаляем в любом случае
	if err := apiClient.Logout(ctx); err != nil {
		fmt.Printf("Warning: server logout failed: %v\n", err)
	}

	if err := authStorage.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Println("✓ Logged out.")

	return nil
}
