package auth

import (
	"testing"

	"nepshift_backend/internal/config"
	"nepshift_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 15
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	token, err := GenerateToken("user-123", models.UserRoleHelper)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.UserRoleHelper, claims.Role)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("user-123", models.UserRoleHirer)
		require.NoError(t, err)

		setTestConfig(t, "a-different-secret")
		_, err = ParseToken(token)
		assert.Error(t, err)
	})
}
