package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/services"
)

// Login prompts for credentials and authenticates. On success the bookmark
// store is reloaded so it switches from local storage to the remote
// collection.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			printlnFn("Invalid username or password.")
		case errors.Is(err, services.ErrProfileFetch):
			printlnFn("Login succeeded but the profile could not be loaded. Please try again.")
		default:
			printlnFn("Server unavailable. Please try again later.")
		}
		a.log.Warn(ctx, "login failed", "err", err)
		return err
	}

	a.bookmarks.Load(ctx)
	printlnFn(fmt.Sprintf("Logged in as %s.", a.status()))
	return nil
}

// Logout drops the session and returns the bookmark store to its guest
// (local) source.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.bookmarks.Load(ctx)
	printlnFn("Logged out.")
	return nil
}
