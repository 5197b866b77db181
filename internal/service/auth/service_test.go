package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{}) {}

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return New("admin", string(hash), ttl, nopLogger{})
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	t.Run("успешный вход", func(t *testing.T) {
		token, err := svc.Login(ctx, "admin", "secret")
		require.NoError(t, err)
		// 32 байта в hex
		assert.Len(t, token, 64)
		assert.NoError(t, svc.Validate(ctx, token))
	})

	t.Run("неверный логин", func(t *testing.T) {
		_, err := svc.Login(ctx, "root", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("токены уникальны", func(t *testing.T) {
		first, err := svc.Login(ctx, "admin", "secret")
		require.NoError(t, err)
		second, err := svc.Login(ctx, "admin", "secret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestService_Validate_Expiry(t *testing.T) {
	svc := newTestService(t, 24*time.Hour)
	ctx := context.Background()

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	// В пределах TTL токен действителен
	svc.now = func() time.Time { return base.Add(23 * time.Hour) }
	assert.NoError(t, svc.Validate(ctx, token))

	// После TTL токен отвергается и удаляется
	svc.now = func() time.Time { return base.Add(25 * time.Hour) }
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidToken)

	svc.now = func() time.Time { return base }
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidToken)
}

func TestService_Validate_UnknownToken(t *testing.T) {
	svc := newTestService(t, time.Hour)
	assert.ErrorIs(t, svc.Validate(context.Background(), "deadbeef"), ErrInvalidToken)
}

func TestService_Logout(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	svc.Logout(ctx, token)
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidToken)

	// Повторный logout не паникует
	svc.Logout(ctx, token)
}

func TestService_Sweep(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	expired, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	fresh, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(90 * time.Minute) }
	svc.sweep()

	assert.ErrorIs(t, svc.Validate(ctx, expired), ErrInvalidToken)
	assert.NoError(t, svc.Validate(ctx, fresh))
}
