package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/shell"
	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// Login prompts for a session token issued by the identity provider and
// verifies it with the server. On success the dashboard is shown.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret(a.reader, "Paste your session token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	userID, err := a.auth.Login(ctx, string(token))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.printf("Login unsuccessful: %v\n", err)
		return err
	}

	a.setMode(ModeOnline)
	a.dispatch(shell.SignIn{UserID: userID})
	a.printf("Signed in as %s\n", userID)
	return a.enter(ctx)
}

// Logout forgets the cached token and drops every view's data.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.printf("Logout failed: %v\n", err)
		return err
	}
	a.dispatch(shell.SignOut{})
	a.resetViews()
	a.printf("Signed out.\n")
	return nil
}

// restore signs in from the cached session when there is one. An
// unreachable server still restores the cached identity.
func (a *App) restore(ctx context.Context) {
	userID, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		a.dispatch(shell.SignIn{UserID: userID})
		a.printf("Welcome back, %s\n", userID)
		_ = a.enter(ctx)
	case errors.Is(err, client.ErrUnavailable) && userID != "":
		a.setMode(ModeOffline)
		a.dispatch(shell.SignIn{UserID: userID})
		a.printf("Server unavailable; signed in as %s from the cached session\n", userID)
	case errors.Is(err, client.ErrNoSession):
		a.printf("Not signed in. Type 'login' to start.\n")
	default:
		a.log.Warn(ctx, "cached session rejected", "error", err)
		a.printf("Your session has expired. Type 'login' to sign in again.\n")
	}
}

func (a *App) resetViews() {
	a.dashboard = nil
	a.search = searchState{}
	a.details = detailsState{}
	a.progress.reset()
}
