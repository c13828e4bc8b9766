package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

var users = []models.User{
	{UserID: "1", Email: "user1@example.com", Password: "password123"},
	{UserID: "2", Email: "user2@example.com", Password: "password456"},
}

func finder() UserFinder {
	return UserFinderFunc(func(email, password string) (models.User, bool) {
		for _, u := range users {
			if u.Email == email && u.Password == password {
				return u, true
			}
		}
		return models.User{}, false
	})
}

func TestManager_LoginLogout(t *testing.T) {
	changes := 0
	m := NewManager(finder(), func() { changes++ }, nil)
	ctx := context.Background()

	_, ok := m.CurrentUserID()
	assert.False(t, ok)

	require.True(t, m.Login(ctx, "user1@example.com", "password123"))
	id, ok := m.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "1", id)
	assert.Equal(t, 1, changes)

	m.Logout(ctx)
	m.Logout(ctx)
	_, ok = m.CurrentUserID()
	assert.False(t, ok)
	assert.Equal(t, 3, changes)
}

func TestManager_InvalidCredentialsKeepSession(t *testing.T) {
	changes := 0
	m := NewManager(finder(), func() { changes++ }, nil)
	ctx := context.Background()

	require.True(t, m.Login(ctx, "user2@example.com", "password456"))

	assert.False(t, m.Login(ctx, "user1@example.com", "wrong"))
	assert.False(t, m.Login(ctx, "nobody@example.com", "password123"))

	id, _ := m.CurrentUserID()
	assert.Equal(t, "2", id)
	assert.Equal(t, 1, changes)
}

func TestManager_RestoreDoesNotNotify(t *testing.T) {
	changes := 0
	m := NewManager(finder(), func() { changes++ }, nil)

	m.Restore("3")
	id, ok := m.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "3", id)
	assert.Zero(t, changes)
}
