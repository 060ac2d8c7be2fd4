package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avdeyev/authgate/internal/models"
	"github.com/avdeyev/authgate/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// envelope повторяет конверт ответа API с отложенным разбором data
type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Errors  []api.FieldError `json:"errors"`
	Msg     string           `json:"msg"`
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken устанавливает сессионный токен для аутентифицированных запросов
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &user); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &user, nil
}

// Login выполняет аутентификацию и возвращает сессионный токен
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (string, error) {
	var data api.SessionData
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &data); err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	return data.Token, nil
}

// Logout завершает текущую сессию на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает профиль аутентифицированного пользователя
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &user, nil
}

// GetUser возвращает пользователя по id
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	path := "/api/v1/auth/user/" + userID
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, fmt.Errorf("get user request failed: %w", err)
	}
	return &user, nil
}

// GetUsers возвращает всех пользователей
func (c *Client) GetUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/user", nil, &users); err != nil {
		return nil, fmt.Errorf("get users request failed: %w", err)
	}
	return users, nil
}

// UpdateProfile частично обновляет профиль пользователя
func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/auth/profile", req, nil); err != nil {
		return fmt.Errorf("update profile request failed: %w", err)
	}
	return nil
}

// UpdatePassword меняет пароль и возвращает свежий сессионный токен
func (c *Client) UpdatePassword(ctx context.Context, req api.UpdatePasswordRequest) (string, error) {
	var data api.SessionData
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/auth/password", req, &data); err != nil {
		return "", fmt.Errorf("update password request failed: %w", err)
	}
	return data.Token, nil
}

// ForgotPassword запрашивает reset-токен для email
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var data api.ResetTokenData
	req := api.ForgotPasswordRequest{Email: email}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/password", req, &data); err != nil {
		return "", fmt.Errorf("forgot password request failed: %w", err)
	}
	return data.ResetToken, nil
}

// ResetPassword устанавливает новый пароль по reset-токену
// и возвращает свежий сессионный токен
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	var data api.SessionData
	path := "/api/v1/auth/password/" + resetToken
	req := api.ResetPasswordRequest{Password: password}
	if err := c.doRequest(ctx, http.MethodPut, path, req, &data); err != nil {
		return "", fmt.Errorf("reset password request failed: %w", err)
	}
	return data.Token, nil
}

// doRequest выполняет HTTP запрос и разбирает конверт ответа
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response (%d): %s", resp.StatusCode, string(respBody))
	}

	// Ошибки приходят в том же конверте: msg либо список ошибок валидации
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		if len(env.Errors) > 0 {
			msgs := make([]string, 0, len(env.Errors))
			for _, fe := range env.Errors {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
			}
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, strings.Join(msgs, "; "))
		}
		if env.Msg != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, env.Msg)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
