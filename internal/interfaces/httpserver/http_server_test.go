package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"user-api/internal/config"
	"user-api/internal/domain/bootstrap"
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/infrastructure/database/repository/userrepo"
)

func testServer(t *testing.T) (*HTTPServer, *userrepo.InMemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:        "user-api",
		Environment:        "test",
		SecretKey:          "integration-test-secret",
		AccessTokenTTL:     time.Minute,
		AdminEmail:         "admin@example.com",
		AdminPassword:      "supersecurepassword",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		ShutdownTimeout:    time.Second,
	}

	repo := userrepo.NewInMemoryRepository()
	result, err := bootstrap.EnsureAdmin(context.Background(), repo, cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, bootstrap.AdminCreated, result)

	tokens := auth.NewTokenManager(cfg, zerolog.Nop())
	service := user.NewService(repo, zerolog.Nop())

	server, err := New(cfg, zerolog.Nop(), service, tokens)
	require.NoError(t, err)
	return server, repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, engine *gin.Engine, email, password string) string {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestUnknownVersionPrefixIs404(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Engine(), http.MethodGet, "/v3/users", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginAndListUsersV1(t *testing.T) {
	server, _ := testServer(t)
	token := login(t, server.Engine(), "admin@example.com", "supersecurepassword")

	rec := doJSON(t, server.Engine(), http.MethodGet, "/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Equal(t, "admin@example.com", users[0]["email"])
	require.Equal(t, "admin", users[0]["role"])
	_, hasHash := users[0]["password_hash"]
	require.False(t, hasHash, "password hash must never be serialized")
}

func TestV2ListEnvelopeDiffersFromV1(t *testing.T) {
	server, _ := testServer(t)
	token := login(t, server.Engine(), "admin@example.com", "supersecurepassword")

	rec := doJSON(t, server.Engine(), http.MethodGet, "/v2/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Len(t, body.Data, 1)
	require.Equal(t, "admin@example.com", body.Data[0]["email"])
}

func TestRegisterThenDuplicateConflicts(t *testing.T) {
	server, _ := testServer(t)

	payload := gin.H{"email": "new@example.com", "password": "longenoughpassword"}
	rec := doJSON(t, server.Engine(), http.MethodPost, "/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, server.Engine(), http.MethodPost, "/v1/auth/register", "", payload)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUsersRequireAuthentication(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Engine(), http.MethodGet, "/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestViewerCannotCreateUsers(t *testing.T) {
	server, _ := testServer(t)

	rec := doJSON(t, server.Engine(), http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":    "viewer@example.com",
		"password": "longenoughpassword",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	token := login(t, server.Engine(), "viewer@example.com", "longenoughpassword")
	rec = doJSON(t, server.Engine(), http.MethodPost, "/v1/users", token, gin.H{
		"email":    "other@example.com",
		"password": "longenoughpassword",
		"role":     "editor",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	server, _ := testServer(t)
	token := login(t, server.Engine(), "admin@example.com", "supersecurepassword")

	rec := doJSON(t, server.Engine(), http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "admin@example.com", body["email"])
}

func TestDisabledUserCannotLogin(t *testing.T) {
	server, repo := testServer(t)

	rec := doJSON(t, server.Engine(), http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":    "locked@example.com",
		"password": "longenoughpassword",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	repo.SetDisabled("locked@example.com", true)

	rec = doJSON(t, server.Engine(), http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "locked@example.com",
		"password": "longenoughpassword",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPreflightFromDisallowedOriginNeverReachesHandlers(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/users", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	server.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
