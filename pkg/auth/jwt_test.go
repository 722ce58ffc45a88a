package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(model.Session{
		Email:       "ana@clinic.test",
		Name:        "Ana",
		TherapistID: 3,
	})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.Session{Email: "ana@clinic.test", Name: "Ana", TherapistID: 3}, claims.Session())
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("one", time.Hour).GenerateAccessToken(model.Session{Email: "a"})
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, _, err := svc.GenerateAccessToken(model.Session{Email: "a"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, _, err := svc.GenerateAccessToken(model.Session{Email: "admin", IsAdmin: true})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	svc.Revoke(claims)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrRevokedToken)
}
