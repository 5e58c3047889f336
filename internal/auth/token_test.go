package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", "paycfg", time.Hour)

	raw, err := m.Issue("ops@example.com", []Role{RoleEditor}, 0)
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, []string{"editor"}, claims.Roles)
	assert.Equal(t, "paycfg", claims.Issuer)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "paycfg", time.Hour)

	expired, err := m.Issue("x", []Role{RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenManager("other-secret", "paycfg", time.Hour).Issue("x", []Role{RoleAdmin}, 0)
	require.NoError(t, err)
	_, err = m.Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewTokenManager("secret", "someone-else", time.Hour).Issue("x", []Role{RoleAdmin}, 0)
	require.NoError(t, err)
	_, err = m.Parse(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
