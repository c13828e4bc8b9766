package store

import "context"

// LoginUser makes the user with these credentials current. It returns
// false for unknown credentials or when ctx ends before the store is ready.
func (s *Store) LoginUser(ctx context.Context, email, password string) bool {
	if err := s.WaitReady(ctx); err != nil {
		return false
	}
	return s.session.Login(ctx, email, password)
}

// LogoutUser clears the current session. It is idempotent.
func (s *Store) LogoutUser(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	s.session.Logout(ctx)
	return nil
}

// CurrentUserID returns the logged-in user id, if any.
func (s *Store) CurrentUserID() (string, bool) {
	<-s.ready
	return s.session.CurrentUserID()
}
