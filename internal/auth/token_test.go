package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/license-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 1, 1)

	token, exp, err := tm.GenerateToken("acct-1", domain.SubjectTypeAccount)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeAccount, claims.Subject)
}

func TestAdminTokensUseAdminTTL(t *testing.T) {
	tm := NewTokenManager("secret", 168, 24)

	_, accountExp, err := tm.GenerateToken("acct-1", domain.SubjectTypeAccount)
	require.NoError(t, err)
	_, adminExp, err := tm.GenerateToken("7", domain.SubjectTypeAdmin)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(168*time.Hour), accountExp, time.Minute)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), adminExp, time.Minute)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 1, 1)
	other := NewTokenManager("secret-b", 1, 1)

	token, _, err := tm.GenerateToken("acct-1", domain.SubjectTypeAccount)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 1, 1)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	require.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
