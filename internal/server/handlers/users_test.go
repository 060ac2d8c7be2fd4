package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/authgate/internal/models"
)

// getUserRequest выполняет GET /api/v1/auth/user/{id} через ServeMux
func getUserRequest(t *testing.T, handler *AuthHandler, id string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/user/{id}", handler.GetUser)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/user/"+id, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_GetUser_Found(t *testing.T) {
	users := newMockUserStorage()
	user := addUser(t, users, "a@b.com", "password1", models.RoleUser)
	handler := newTestHandler(users)

	w := getUserRequest(t, handler, user.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var found models.User
	require.NoError(t, json.Unmarshal(data, &found))
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "a@b.com", found.Email)
}

func TestAuthHandler_GetUser_NotFound(t *testing.T) {
	handler := newTestHandler(newMockUserStorage())

	w := getUserRequest(t, handler, "missing-id")
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "No user found for id missing-id", resp.Msg)
}

func TestAuthHandler_GetUser_AdminHidden(t *testing.T) {
	users := newMockUserStorage()
	admin := addUser(t, users, "admin@b.com", "password1", models.RoleAdmin)
	handler := newTestHandler(users)

	// Админ через lookup неотличим от несуществующего пользователя
	w := getUserRequest(t, handler, admin.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "No user found for id "+admin.ID, resp.Msg)
}

func TestAuthHandler_GetUsers(t *testing.T) {
	users := newMockUserStorage()
	addUser(t, users, "a@b.com", "password1", models.RoleUser)
	addUser(t, users, "b@b.com", "password1", models.RoleUser)
	handler := newTestHandler(users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil)
	w := httptest.NewRecorder()
	handler.GetUsers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var list []*models.User
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Len(t, list, 2)
}

func TestAuthHandler_GetUsers_Empty(t *testing.T) {
	handler := newTestHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil)
	w := httptest.NewRecorder()
	handler.GetUsers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	// Пустой список, не null
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var list []*models.User
	require.NoError(t, json.Unmarshal(data, &list))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAuthHandler_GetMe(t *testing.T) {
	users := newMockUserStorage()
	user := addUser(t, users, "a@b.com", "password1", models.RoleUser)
	handler := newTestHandler(users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(ContextWithUser(req.Context(), user))

	w := httptest.NewRecorder()
	handler.GetMe(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var me models.User
	require.NoError(t, json.Unmarshal(data, &me))
	assert.Equal(t, user.ID, me.ID)

	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestAuthHandler_GetMe_Unauthenticated(t *testing.T) {
	handler := newTestHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	handler.GetMe(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
