package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
	"github.com/avdeyev/authgate/pkg/api"
)

// RunPasswd выполняет команду passwd: смена пароля
func RunPasswd(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	auth, err := loadSession(ctx, apiClient, authStorage)
	if err != nil {
		return err
	}

	fmt.Println("=== Change password ===")
	fmt.Println()

	currentPassword, err := readPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read current password: %w", err)
	}

	newPassword, err := readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read new password: %w", err)
	}

	confirm, err := readPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	token, err := apiClient.UpdatePassword(ctx, api.UpdatePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}

	// По смене пароля сервер выдает свежую сессию
	auth.Token = token
	auth.ExpiresAt = sessionExpiry(token)
	if err := authStorage.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Password changed.")

	return nil
}
