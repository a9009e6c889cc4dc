package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxworks_backend/internal/config"
)

func setTestConfig(t *testing.T, secret string, ttlMinutes int) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = ttlMinutes
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(t, "unit-test-secret", 60)

	token, err := GenerateToken("user-123", "studio")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "studio", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(t, "unit-test-secret", 60)

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t, "unit-test-secret", 60)
	token, err := GenerateToken("user-123", "artist")
	require.NoError(t, err)

	setTestConfig(t, "a-different-secret", 60)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	setTestConfig(t, "unit-test-secret", 60)

	claims := Claims{
		UserID: "user-123",
		Role:   "artist",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
