package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("Jane Reader", "jane@example.com", "sekrit1")
	require.NoError(t, err)

	assert.NotEqual(t, "sekrit1", u.Password)
	assert.True(t, u.CheckPassword("sekrit1"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.IsAuthor)
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("Jo", "jo@example.com", "sekrit1")
	assert.Error(t, err, "fullname below minimum length")

	_, err = CreateUser("Jo Smith", "not-an-email", "sekrit1")
	assert.Error(t, err)
}

func TestRoleDerivation(t *testing.T) {
	tests := []struct {
		name     string
		isAdmin  bool
		isAuthor bool
		want     string
	}{
		{"neither flag is reader", false, false, ROLE_READER},
		{"author flag", false, true, ROLE_AUTHOR},
		{"admin flag", true, false, ROLE_ADMIN},
		{"admin wins over author", true, true, ROLE_ADMIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{IsAdmin: tt.isAdmin, IsAuthor: tt.isAuthor}
			assert.Equal(t, tt.want, u.Role())
		})
	}
}

func TestApplyRoleIsExclusive(t *testing.T) {
	u := &User{IsAdmin: true, IsAuthor: true}

	u.ApplyRole(ROLE_AUTHOR)
	assert.False(t, u.IsAdmin)
	assert.True(t, u.IsAuthor)

	u.ApplyRole(ROLE_READER)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.IsAuthor)

	u.ApplyRole("nonsense")
	assert.False(t, u.IsAuthor, "unknown role leaves flags untouched")
}

func TestStatus(t *testing.T) {
	u := &User{IsActive: true}
	assert.Equal(t, STATUS_ACTIVE, u.Status())

	u.IsActive = false
	assert.Equal(t, STATUS_SUSPENDED, u.Status())
}

func TestArticleSlugDerivedOnce(t *testing.T) {
	a := &Article{Title: "Hello World, Again"}
	require.NoError(t, a.BeforeSave(nil))
	assert.Equal(t, "hello-world-again", a.Slug)

	a.Title = "Renamed Title"
	require.NoError(t, a.BeforeSave(nil))
	assert.Equal(t, "hello-world-again", a.Slug, "existing slug is kept")
}
