package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/term"

	clientapi "github.com/avdeyev/authgate/internal/client/api"
	"github.com/avdeyev/authgate/internal/client/storage"
)

// readInput читает строку ввода с приглашением
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

// readPassword читает пароль без эха в терминале
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	return string(passwordBytes), nil
}

// loadSession загружает сохраненную сессию и устанавливает токен в API клиент
func loadSession(ctx context.Context, apiClient *clientapi.Client, authStorage storage.AuthStorage) (*storage.AuthData, error) {
	auth, err := authStorage.GetAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'authgate login' first")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	apiClient.SetToken(auth.Token)
	return auth, nil
}

// sessionExpiry извлекает unix time истечения из JWT без проверки подписи.
// Подпись проверяет сервер, клиенту expiry нужен только для status
func sessionExpiry(token string) int64 {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Unix()
}

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println("Usage: authgate [flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register          Register a new account")
	fmt.Println("  login             Log in and save the session")
	fmt.Println("  logout            Log out and remove the saved session")
	fmt.Println("  status            Show the saved session")
	fmt.Println("  me                Show your profile")
	fmt.Println("  users             List all users")
	fmt.Println("  user <id>         Show a user by id")
	fmt.Println("  profile           Update your profile")
	fmt.Println("  passwd            Change your password")
	fmt.Println("  forgot            Request a password reset token")
	fmt.Println("  reset <token>     Reset password with a token")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server string    Server URL (default \"http://localhost:8080\")")
	fmt.Println("  -db string        Path to local database (default \"authgate-client.db\")")
	fmt.Println("  -version          Show version information")
}
