package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
)

// RunForgot выполняет команду forgot: запрос reset-токена.
// Токен печатается вызывающему, доставка по email вне этой системы.
func RunForgot(ctx context.Context, apiClient *clientapi.Client) error {
	fmt.Println("=== Forgot password ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	resetToken, err := apiClient.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("✓ Reset token issued. It is shown only once:")
	fmt.Println()
	fmt.Printf("  %s\n", resetToken)
	fmt.Println()
	fmt.Println("Use it with 'authgate reset <token>' before it expires.")

	return nil
}

// RunReset выполняет команду reset <token>: установка нового пароля
func RunReset(ctx context.Context, args []string, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: authgate reset <token>")
	}
	resetToken := args[0]

	fmt.Println("=== Reset password ===")
	fmt.Println()

	password, err := readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := readPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	token, err := apiClient.ResetPassword(ctx, resetToken, password)
	if err != nil {
		return err
	}

	// Сервер выдает свежую сессию, сохраняем ее вместо старой
	email, err := readInput("Email (to label the saved session): ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	authData := &storage.AuthData{
		Email:     email,
		Token:     token,
		ExpiresAt: sessionExpiry(token),
	}

	if err := authStorage.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Password reset. You are now logged in.")

	return nil
}
