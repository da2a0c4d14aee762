package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/library-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, exp, err := tm.GenerateToken("member-1", "ada@example.com", domain.UserTypeStudent, false)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.UserTypeStudent, claims.UserType)
	assert.False(t, claims.IsAdmin)
}

func TestTokenCarriesAdminFlag(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, _, err := tm.GenerateToken("", "admin@example.com", domain.UserTypeAdmin, true)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Empty(t, claims.UserID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 5).GenerateToken("member-1", "a@b.c", domain.UserTypeStudent, false)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
