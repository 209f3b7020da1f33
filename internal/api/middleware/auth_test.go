package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideiatech/smartleader-api/internal/api/middleware"
	"github.com/ideiatech/smartleader-api/internal/mocks"
	"github.com/ideiatech/smartleader-api/internal/service/auth"
)

func runAuthenticated(t *testing.T, jwtService *mocks.MockJWTService, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/work-items", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	middleware.NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)
	return rec, called
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec, called := runAuthenticated(t, &mocks.MockJWTService{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	rec, called := runAuthenticated(t, &mocks.MockJWTService{}, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	jwtService := &mocks.MockJWTService{Err: auth.ErrExpiredToken}

	rec, called := runAuthenticated(t, jwtService, "Bearer expired-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
	assert.False(t, called)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	jwtService := &mocks.MockJWTService{Err: auth.ErrInvalidToken}

	rec, called := runAuthenticated(t, jwtService, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticatePropagatesPersonID(t *testing.T) {
	personID := uuid.New()
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			require.Equal(t, "good-token", tokenString)
			return &auth.Claims{PersonID: personID}, nil
		},
	}

	var gotID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = middleware.GetPersonID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/work-items", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	middleware.NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, personID, gotID)
}
