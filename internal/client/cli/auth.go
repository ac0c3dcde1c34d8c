package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/client/router"
)

// readCredentials asks for an email and a password. The caller wipes the
// password.
func (a *App) readCredentials() (email string, password []byte, err error) {
	email, err = getSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err = getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(email), password, nil
}

// Register creates an account. The session is left unchanged; the user
// logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	if err := a.router.Navigate(ctx, router.Register); err != nil {
		return err
	}
	if a.router.Current().Path != router.Register {
		a.println("Already logged in. Log out to register a new account.")
		return nil
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	first, err := getSimpleText(a.reader, "First name (optional):", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name (optional):", a.out)
	if err != nil {
		return err
	}

	err = a.auth.Register(ctx, models.Profile{
		Email:     email,
		Password:  string(password),
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		a.report(err)
		return err
	}

	a.println("Registration successful. You can log in now.")
	return a.router.Navigate(ctx, router.Login)
}

// Login authenticates and opens the home surface.
func (a *App) Login(ctx context.Context) error {
	if err := a.router.Navigate(ctx, router.Login); err != nil {
		return err
	}
	if a.router.Current().Path != router.Login {
		a.println("Already logged in.")
		return nil
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	id, err := a.auth.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		a.report(err)
		return err
	}

	a.println(fmt.Sprintf("Logged in as %s", id))
	return a.router.Navigate(ctx, router.Home)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, ok := a.auth.Session().Current().Identity()
	if !ok {
		a.println("Not logged in.")
		return nil
	}
	role := "user"
	if a.auth.HasRole(models.RoleAdmin) {
		role = "administrator"
	}
	a.println(fmt.Sprintf("Subject %d, %s", id.SubjectID, role))
	return nil
}
