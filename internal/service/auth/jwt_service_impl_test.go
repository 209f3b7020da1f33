package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideiatech/smartleader-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-32-characters!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	personID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), personID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, personID, claims.PersonID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, personID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSigningKey(t *testing.T) {
	svc := newTestJWTService(t)
	other := newTestJWTService(t)
	other.signingKey = []byte("another-secret-key-32-characters!!!!")

	token, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(t)
	personID := uuid.New()

	// Issue the token far enough in the past to clear the clock skew
	// allowance.
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(context.Background(), personID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	svc := newTestJWTService(t)
	personID := uuid.New()

	// Expired one minute ago, inside the two-minute skew allowance.
	issuedAt := time.Now().Add(-61 * time.Minute)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(context.Background(), personID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := newTestJWTService(t)
	personID := uuid.New()

	accessToken, err := svc.GenerateToken(context.Background(), personID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), personID)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(context.Background(), accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	svc := newTestJWTService(t)
	svc.refreshTokenLifetime = time.Minute

	issuedAt := time.Now().Add(-time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateRefreshToken(context.Background(), uuid.New())
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateRefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)

	assert.NoError(t, hasher.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hashed, "wrong password"))
}
