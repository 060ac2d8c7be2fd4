package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
	"github.com/avdeyev/authgate/pkg/api"
)

// RunLogin выполняет команду login
func RunLogin(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	token, err := apiClient.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	// Сохраняем сессию локально
	authData := &storage.AuthData{
		Email:     email,
		Token:     token,
		ExpiresAt: sessionExpiry(token),
	}

	if err := authStorage.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	fmt.Printf("Email: %s\n", email)
	fmt.Println()
	fmt.Println("Your session has been saved.")

	return nil
}
