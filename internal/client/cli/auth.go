package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskjournal/internal/client/client"
	"github.com/dmitrijs2005/taskjournal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) restoreSession(ctx context.Context) error {
	st, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if st.RefreshToken == "" {
		return nil
	}

	a.api.SetTokens(st.AccessToken, st.RefreshToken)
	a.email = st.Email
	a.theme = st.Theme
	return nil
}

func (a *App) forgetSession(ctx context.Context) {
	a.email = ""
	a.theme = ""
	if err := a.store.Clear(ctx); err != nil {
		a.printf("Could not clear local session: %v\n", err)
	}
}

// Register prompts for email, name and password and creates an account.
// It does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile, err := a.api.Register(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	a.printf("Registered %s (id %d). Use 'login' to sign in.\n", profile.Email, profile.ID)
	return nil
}

// Login authenticates and persists the session locally.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid credentials")
		}
		return err
	}

	a.email = email
	a.theme = s.Theme
	a.saveState(ctx)

	a.printf("Login successful\n")
	return nil
}

// Logout revokes the session server-side (best effort) and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.forgetSession(ctx)
	if err != nil {
		return fmt.Errorf("logged out locally, server said: %w", err)
	}
	a.printf("Logged out\n")
	return nil
}
