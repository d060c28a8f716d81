package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret", TTL: time.Hour})
	ctx := context.Background()

	token, err := svc.GenerateTokenHMAC(ctx, domain.AuthPayload{UserID: "u-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	payload, err := svc.VerifyTokenHMAC(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", payload.UserID)
	assert.Equal(t, domain.RoleAdmin, payload.Role)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret", TTL: time.Hour})
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateTokenHMAC(context.Background(), domain.AuthPayload{UserID: "u-1", Role: domain.RoleUser})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyTokenHMAC(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	other := NewJWTService(&config.JwtConfig{Secret: "other", TTL: time.Hour})
	token, err := other.GenerateTokenHMAC(context.Background(), domain.AuthPayload{UserID: "u-1"})
	require.NoError(t, err)

	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret", TTL: time.Hour})
	_, err = svc.VerifyTokenHMAC(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret"})
	ctx := context.Background()

	hash, err := svc.EncryptPassword(ctx, "correct horse")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
