package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/authgate/pkg/api"
)

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"session-token"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "a@b.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
}

func TestClient_Login_IncorrectPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"msg":"Incorrect password"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "a@b.com",
		Password: "wrongpassword",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect password")
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Register_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"errors":[` +
			`{"field":"email","message":"Please provide a valid email address"},` +
			`{"field":"password","message":"Password must be at least 8 characters"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Register(context.Background(), api.RegisterRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: Please provide a valid email address")
	assert.Contains(t, err.Error(), "password: Password must be at least 8 characters")
}

func TestClient_Register_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"user-1","email":"a@b.com","role":"user"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, err := client.Register(context.Background(), api.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "a@b.com",
		Password:  "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestClient_Me_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"user-1","email":"a@b.com"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("my-token")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestClient_Me_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"msg":"Unauthorized: missing token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_GetUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/user", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"u1"},{"id":"u2"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	users, err := client.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
}

func TestClient_ForgotPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/password", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"resetToken":"deadbeef"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", token)
}

func TestClient_ResetPassword_TokenInPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/auth/password/deadbeef", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"fresh-token"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.ResetPassword(context.Background(), "deadbeef", "newpassword1")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestClient_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"user-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	_, err := client.Me(context.Background())
	assert.NoError(t, err)
}
