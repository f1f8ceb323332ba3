package auth

import (
	"context"
	"testing"
	"time"

	"github.com/eujim/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-for-hs256",
		AccessTokenExpiration: time.Hour,
		Issuer:                "attachment-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Run("round trips claims", func(t *testing.T) {
		svc := newTestJWTService()
		userID := uuid.New()

		token, err := svc.GenerateToken(userID, "coordinator")
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 2*time.Second)

		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "coordinator", claims.Username)
		assert.NotEmpty(t, claims.ID)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		svc := newTestJWTService()
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-keyyyyyyyyyy",
			AccessTokenExpiration: time.Hour,
			Issuer:                "attachment-backend",
		})

		token, err := other.GenerateToken(uuid.New(), "coordinator")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		svc := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-that-is-long-enough-for-hs256",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "attachment-backend",
		})

		token, err := svc.GenerateToken(uuid.New(), "coordinator")
		require.NoError(t, err)

		_, err = newTestJWTService().ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := newTestJWTService().ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(uuid.New(), "coordinator")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	t.Run("blacklists a jti until its ttl lapses", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		ctx := context.Background()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

		blocked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = blacklist.IsBlacklisted(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("expired entries fall out", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()
		ctx := context.Background()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))

		blocked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})
}
