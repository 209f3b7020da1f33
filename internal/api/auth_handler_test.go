package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideiatech/smartleader-api/internal/api"
	"github.com/ideiatech/smartleader-api/internal/config"
	"github.com/ideiatech/smartleader-api/internal/mocks"
	"github.com/ideiatech/smartleader-api/internal/service/auth"
)

func newAuthFixture(t *testing.T) (*api.AuthHandler, *mocks.MockPersonStore) {
	t.Helper()

	authConfig := config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-32-characters!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
	jwtService, err := auth.NewJWTService(authConfig)
	require.NoError(t, err)

	personStore := mocks.NewMockPersonStore()
	handler := api.NewAuthHandler(personStore, jwtService, auth.NewBcryptHasher(), authConfig)
	return handler, personStore
}

func TestRegisterAndLogin(t *testing.T) {
	handler, personStore := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	// The stored person carries only the hash.
	person, err := personStore.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, person.Password)
	assert.NotEmpty(t, person.HashedPassword)
	assert.NotEqual(t, "a-long-enough-password", person.HashedPassword)

	rec = postJSON(t, handler.Login, "/api/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "a-long-enough-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	assert.Equal(t, person.ID, loggedIn.PersonID)
	assert.NotNil(t, person.LastLogin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler, _ := newAuthFixture(t)

	payload := map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	}
	rec := postJSON(t, handler.Register, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload["username"] = "ana2"
	rec = postJSON(t, handler.Register, "/api/auth/register", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Login, "/api/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "not-the-right-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postJSON(t, handler.Login, "/api/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "a-long-enough-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginInactiveAccount(t *testing.T) {
	handler, personStore := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	person, err := personStore.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	person.IsActive = false

	rec = postJSON(t, handler.Login, "/api/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "a-long-enough-password",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]any{
		"refresh_token": registered.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed api.RefreshTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", map[string]any{
		"email":     "ana@example.com",
		"username":  "ana",
		"full_name": "Ana Souza",
		"password":  "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]any{
		"refresh_token": registered.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
