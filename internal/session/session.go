// Package session tracks which user is logged in. The id lives in memory;
// persisting it is delegated to the change callback.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// UserFinder resolves credentials to a user.
type UserFinder interface {
	FindUser(email, password string) (models.User, bool)
}

// UserFinderFunc adapts a function to UserFinder.
type UserFinderFunc func(email, password string) (models.User, bool)

func (f UserFinderFunc) FindUser(email, password string) (models.User, bool) {
	return f(email, password)
}

type Manager struct {
	finder   UserFinder
	onChange func()
	log      logging.Logger

	mu      sync.RWMutex
	current string
}

// NewManager returns a Manager with no logged-in user. onChange is called
// after every login and logout; it must not block.
func NewManager(finder UserFinder, onChange func(), log logging.Logger) *Manager {
	if onChange == nil {
		onChange = func() {}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{finder: finder, onChange: onChange, log: log}
}

// Login makes the matching user current. Wrong credentials simply return
// false; which field was wrong is never revealed.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	u, ok := m.finder.FindUser(email, password)
	if !ok {
		m.log.Info(ctx, "login rejected")
		return false
	}

	m.mu.Lock()
	m.current = u.UserID
	m.mu.Unlock()

	m.log.Info(ctx, "user logged in", "user_id", u.UserID)
	m.onChange()
	return true
}

// Logout clears the session. Logging out twice is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = ""
	m.mu.Unlock()

	if prev != "" {
		m.log.Info(ctx, "user logged out", "user_id", prev)
	}
	m.onChange()
}

func (m *Manager) CurrentUserID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current != ""
}

// Restore sets the current id without triggering a write. It is used when
// the id is read back from the backing store.
func (m *Manager) Restore(id string) {
	m.mu.Lock()
	m.current = id
	m.mu.Unlock()
}
