package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/pkg/jwt"
)

func TestManager_RoundTrip(t *testing.T) {
	m := jwt.NewManager("secret")

	token, err := m.GenerateAccessToken("user-1", "abai@example.kz", time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "abai@example.kz", claims.Email)
}

func TestManager_ValidateToken(t *testing.T) {
	t.Run("WrongSecret", func(t *testing.T) {
		token, err := jwt.NewManager("one").GenerateAccessToken("user-1", "", time.Hour)
		require.NoError(t, err)

		_, err = jwt.NewManager("two").ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		m := jwt.NewManager("secret")
		token, err := m.GenerateAccessToken("user-1", "", -time.Minute)
		require.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		m := jwt.NewManager("secret")
		token, err := m.GenerateAccessToken("", "", time.Hour)
		require.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrMissingSubject)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := jwt.NewManager("secret").ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestInspect(t *testing.T) {
	token, err := jwt.NewManager("provider-secret").GenerateAccessToken("user-1", "abai@example.kz", time.Hour)
	require.NoError(t, err)

	claims, err := jwt.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "abai@example.kz", claims.Email)
	require.NotNil(t, claims.ExpiresAt)

	_, err = jwt.Inspect("garbage")
	assert.Error(t, err)
}
