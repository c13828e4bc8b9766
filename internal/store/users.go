package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/persistence"
	"github.com/dmitrijs2005/tasktracker/internal/validation"
)

// AddUser registers u. First name, last name, email and password are
// required, the email must be well formed and unused (case-insensitive),
// and a caller-supplied UserID must be unused. An empty UserID is assigned.
func (s *Store) AddUser(ctx context.Context, u models.User) (models.User, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.User{}, err
	}
	if err := s.writable(persistence.KeyUsers); err != nil {
		return models.User{}, err
	}

	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)
	u.Tasks = []models.Task{}

	if err := validation.Struct(u); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			s.mu.Unlock()
			return models.User{}, common.NewValidationError("email", "is already registered")
		}
		if u.UserID != "" && existing.UserID == u.UserID {
			s.mu.Unlock()
			return models.User{}, common.NewValidationError("userId", "is already taken")
		}
	}
	if u.UserID == "" {
		u.UserID = s.opts.newID()
	}
	s.users = append(s.users, u)
	s.mu.Unlock()

	s.usersW.Schedule()
	s.opts.log.Info(ctx, "user registered", "user_id", u.UserID)
	return u, nil
}

// FindUser returns the first user whose email and password match exactly.
func (s *Store) FindUser(email, password string) (models.User, bool) {
	<-s.ready
	return s.findUser(email, password)
}

// VerifyUser reports whether the credentials match a user.
func (s *Store) VerifyUser(email, password string) bool {
	_, ok := s.FindUser(email, password)
	return ok
}

func (s *Store) UserByID(id string) (models.User, bool) {
	<-s.ready
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userByIDLocked(id)
}

// OwnerOf resolves the owner of t through OwnerID. The display fields on
// the task are not consulted.
func (s *Store) OwnerOf(t models.Task) (models.User, bool) {
	return s.UserByID(t.OwnerID)
}

func (s *Store) findUser(email, password string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) userByIDLocked(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.UserID == id {
			return u, true
		}
	}
	return models.User{}, false
}
