package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "alice@example.com",
		[]string{"manager"}, []string{"sales:create"},
		false,
	)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "alice@example.com", uc.Email)
	assert.Equal(t, []string{"manager"}, uc.Roles)
	assert.Equal(t, []string{"sales:create"}, uc.Permissions)
	assert.False(t, uc.IsAdmin)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret-a"))
	other := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.c", nil, nil, false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.c", nil, nil, false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestUser_LoginLockout(t *testing.T) {
	u := NewUser("bob@example.com", "hash")
	require.NoError(t, u.CanLogin())

	for i := 0; i < 4; i++ {
		u.RecordFailedLogin(5, 15*time.Minute)
	}
	require.NoError(t, u.CanLogin(), "below the threshold the account stays open")

	u.RecordFailedLogin(5, 15*time.Minute)
	assert.Error(t, u.CanLogin())
	assert.True(t, u.IsLocked())

	u.RecordSuccessfulLogin()
	assert.NoError(t, u.CanLogin())
	assert.Equal(t, 0, u.FailedLoginAttempts)
	assert.NotNil(t, u.LastLoginAt)
}

func TestRefreshToken_IsValid(t *testing.T) {
	token := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, token.IsValid())

	expired := &RefreshToken{ExpiresAt: time.Now().Add(-time.Hour)}
	assert.False(t, expired.IsValid())

	now := time.Now()
	revoked := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour), RevokedAt: &now}
	assert.False(t, revoked.IsValid())
}
