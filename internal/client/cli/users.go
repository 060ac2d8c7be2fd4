package cli

import (
	"context"
	"fmt"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
	"github.com/avdeyev/authgate/internal/models"
)

// printUser выводит профиль пользователя
func printUser(user *models.User) {
	fmt.Printf("ID:      %s\n", user.ID)
	fmt.Printf("Name:    %s %s\n", user.FirstName, user.LastName)
	fmt.Printf("Email:   %s\n", user.Email)
	fmt.Printf("Role:    %s\n", user.Role)
	fmt.Printf("Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
}

// RunMe выполняет команду me: профиль аутентифицированного пользователя
func RunMe(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) error {
	if _, err := loadSession(ctx, apiClient, authStorage); err != nil {
		return err
	}

	user, err := apiClient.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Println("=== Profile ===")
	printUser(user)

	return nil
}

// RunUsers выполняет команду users: список всех пользователей
func RunUsers(ctx context.Context, apiClient *clientapi.Client) error {
	users, err := apiClient.GetUsers(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("=== Users (%d) ===\n", len(users))
	for _, user := range users {
		fmt.Printf("%s  %s %s  <%s>\n", user.ID, user.FirstName, user.LastName, user.Email)
	}

	return nil
}

// RunGetUser выполняет команду user <id>
func RunGetUser(ctx context.Context, args []string, apiClient *clientapi.Client) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: authgate user <id>")
	}

	user, err := apiClient.GetUser(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println("=== User ===")
	printUser(user)

	return nil
}
