package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, now time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret: "test-secret",
		Issuer: "granja-api",
		TTL:    time.Hour,
		Clock:  func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()
	svc := newService(t, now)

	token, err := svc.Issue(Identity{UserID: 12, RoleID: 3, Email: "op@granja.co"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 12, RoleID: 3, Email: "op@granja.co"}, claims.Identity())
	assert.Equal(t, "12", claims.Subject)
	assert.Equal(t, "granja-api", claims.Issuer)
}

func TestValidateExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := newService(t, issued).Issue(Identity{UserID: 1, RoleID: 1})
	require.NoError(t, err)

	_, err = newService(t, time.Now()).Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRejectsForeignSecretAndIssuer(t *testing.T) {
	now := time.Now()
	other, err := NewJWTService(JWTConfig{Secret: "other", Issuer: "granja-api", TTL: time.Hour, Clock: func() time.Time { return now }})
	require.NoError(t, err)
	token, err := other.Issue(Identity{UserID: 1, RoleID: 1})
	require.NoError(t, err)

	_, err = newService(t, now).Validate(token)
	assert.Error(t, err)

	foreign, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else", TTL: time.Hour, Clock: func() time.Time { return now }})
	require.NoError(t, err)
	token, err = foreign.Issue(Identity{UserID: 1, RoleID: 1})
	require.NoError(t, err)

	_, err = newService(t, now).Validate(token)
	assert.Error(t, err)
}

func TestNewJWTServiceValidation(t *testing.T) {
	_, err := NewJWTService(JWTConfig{TTL: time.Hour})
	assert.Error(t, err)

	_, err = NewJWTService(JWTConfig{Secret: "s"})
	assert.Error(t, err)

	svc := newService(t, time.Now())
	_, err = svc.Issue(Identity{})
	assert.Error(t, err)
	_, err = svc.Validate("")
	assert.Error(t, err)
}
