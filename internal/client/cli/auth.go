package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Register prompts for the account fields and creates the account.
// It does not log in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	mobile, err := getSimpleText(a.reader, "Enter mobile", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.api.Register(ctx, name, email, mobile, string(password))
	if err != nil {
		return err
	}

	printlnFn("Registered", s.ID)
	return nil
}

// Login prompts for credentials and keeps the session on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	a.session = s
	a.setMode(ModeOnline)
	printlnFn("Logged in as", s.Name)
	return nil
}

// Me prints the account behind the current session.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	printlnFn(formatUser(*u))
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.api.Logout()
	a.session = nil
	return nil
}
