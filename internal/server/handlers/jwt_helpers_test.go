package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/niplan/internal/crypto"
	"github.com/iudanet/niplan/internal/models"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: "user-1", Role: models.RoleSuperadmin, BusinessSlug: "chez-mama"}
	now := time.Now()

	token, err := GenerateAccessToken(testJWT, user, now)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(testJWT, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleSuperadmin, claims.Role)
	assert.Equal(t, "chez-mama", claims.BusinessSlug)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.WithinDuration(t, now.Add(testJWT.AccessTokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	user := &models.User{ID: "user-1", Role: models.RoleVendor}

	expired, err := GenerateAccessToken(testJWT, user, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	other := testJWT
	other.Secret = []byte("other-secret")
	foreign, err := GenerateAccessToken(other, user, time.Now())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"garbage":      "a.b.c",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateAccessToken(testJWT, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewRefreshToken(t *testing.T) {
	now := time.Now().UTC()

	raw, token, err := NewRefreshToken(testJWT, "user-1", now)
	require.NoError(t, err)

	assert.NotEmpty(t, raw)
	assert.Equal(t, crypto.HashToken(raw), token.TokenHash)
	assert.NotEqual(t, raw, token.TokenHash)
	assert.Equal(t, "user-1", token.UserID)
	assert.Equal(t, now.Add(testJWT.RefreshTokenTTL), token.ExpiresAt)

	other, _, err := NewRefreshToken(testJWT, "user-1", now)
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}
