package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/dmitrijs2005/nichescope/internal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Signup prompts for name, email and password, creates the account and
// logs it in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.deps.Accounts.Signup(ctx, name, email, string(password))
	if err != nil {
		return a.fail(ctx, err)
	}
	a.loggedIn(u)
	return nil
}

// Login prompts for email and password and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.deps.Accounts.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(ctx, err)
	}
	a.loggedIn(u)
	return nil
}

func (a *App) loggedIn(u models.User) {
	a.sess = session.NewContext(&u)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.deps.Sessions.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.sess = session.NewContext(nil)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.sess.RequireUser()
	if err != nil {
		return a.fail(ctx, err)
	}
	n, err := a.deps.Saved.Count(ctx, u.ID)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "Saved niches: %d\n", n)
	return nil
}
