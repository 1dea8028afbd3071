package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestIssuePairAndParse(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair(42, "reader@example.com", false, true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := m.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.True(t, claims.IsAuthor)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenCannotAuthenticate(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair(1, "a@example.com", false, false)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = m.ParseRefresh(pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("other-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.IssuePair(1, "a@example.com", true, false)
	require.NoError(t, err)

	_, err = other.ParseAccess(pair.Access)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := m.IssuePair(1, "a@example.com", false, false)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.Access)
	assert.Error(t, err)
}
