package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestCreateAndVerifyToken(t *testing.T) {
	t.Parallel()

	svc, err := NewPasetoService(testKey, time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.CreateToken(userID)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Parallel()

	svc, err := NewPasetoService(testKey, -time.Minute)
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	t.Parallel()

	issuer, err := NewPasetoService(testKey, time.Hour)
	require.NoError(t, err)
	verifier, err := NewPasetoService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)

	token, err := issuer.CreateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	t.Parallel()

	svc, err := NewPasetoService(testKey, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken("not-a-paseto-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewPasetoServiceRejectsShortKey(t *testing.T) {
	t.Parallel()

	_, err := NewPasetoService([]byte("short"), time.Hour)
	require.Error(t, err)
}
