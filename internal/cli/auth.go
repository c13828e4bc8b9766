package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

var errInvalidCredentials = errors.New("invalid credentials")

// Register asks for all four account fields and creates the user.
func (a *App) Register(ctx context.Context) error {
	var u models.User
	var err error

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Email", &u.Email},
	} {
		if *f.dst, err = GetSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}
	if u.Password, err = GetPassword(a.reader, a.out); err != nil {
		return err
	}

	created, err := a.store.AddUser(ctx, u)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printf("Registered %s. You can now log in.\n", created.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if !a.store.LoginUser(ctx, email, password) {
		a.println("Invalid credentials.")
		return errInvalidCredentials
	}
	u, _ := a.currentUser()
	a.printf("Logged in as %s.\n", u.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.LogoutUser(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.currentUser()
	if !ok {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s <%s> (id %s)\n", u.FullName(), u.Email, u.UserID)
	return nil
}
