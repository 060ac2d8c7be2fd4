package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
	"github.com/avdeyev/authgate/pkg/api"
)

// RunProfile выполняет команду profile: частичное обновление профиля.
// Пустой ввод оставляет поле без изменений.
func RunProfile(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	auth, err := loadSession(ctx, apiClient, authStorage)
	if err != nil {
		return err
	}

	fmt.Println("=== Update profile ===")
	fmt.Println("Leave a field empty to keep the current value.")
	fmt.Println()

	firstName, err := readInput("First name: ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}

	lastName, err := readInput("Last name: ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	if firstName == "" && lastName == "" && email == "" {
		fmt.Println("Nothing to update.")
		return nil
	}

	err = apiClient.UpdateProfile(ctx, api.UpdateProfileRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		return err
	}

	// Email в сохраненной сессии обновляем вслед за профилем
	if email != "" && email != auth.Email {
		auth.Email = email
		if err := authStorage.SaveAuth(ctx, auth); err != nil {
			return fmt.Errorf("failed to update saved session: %w", err)
		}
	}

	fmt.Println()
	fmt.Println("✓ Profile updated.")

	return nil
}
