package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/client/repositories/session"
	"github.com/dmitrijs2005/taskjournal/internal/common"
)

var errNoChanges = errors.New("nothing to change")

func (a *App) printProfile(p *api.Profile) {
	a.printf("Email: %s\nName:  %s\nAge:   %d\nTheme: %s\n", p.Email, p.Name, p.Age, p.Theme)
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

// Edit walks through name, email and age; empty answers keep the value.
func (a *App) Edit(ctx context.Context) error {
	p, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	req := &api.UpdateProfileRequest{}

	if v, ok, err := GetOptionalText(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	} else if ok {
		req.Name = &v
	}

	if v, ok, err := GetOptionalText(a.reader, "Email", p.Email, a.out); err != nil {
		return err
	} else if ok {
		req.Email = &v
	}

	if v, ok, err := GetOptionalText(a.reader, "Age", strconv.Itoa(p.Age), a.out); err != nil {
		return err
	} else if ok {
		age, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid age %q", v)
		}
		req.Age = &age
	}

	if req.Name == nil && req.Email == nil && req.Age == nil {
		return errNoChanges
	}

	updated, err := a.api.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	if updated.Email != a.email {
		a.email = updated.Email
		a.saveState(ctx)
	}

	a.printProfile(updated)
	return nil
}

// Theme shows the current theme, or switches to args[0].
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme, err := a.api.GetTheme(ctx)
		if err != nil {
			return err
		}
		a.printf("Theme: %s\n", theme)
		return nil
	}

	theme, err := a.api.ChangeTheme(ctx, strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	a.theme = theme
	a.saveState(ctx)
	a.printf("Theme set to %s\n", theme)
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.api.ChangePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	a.printf("Password changed\n")
	return nil
}

// Delete removes the account after an explicit "yes". Tasks stay on the
// server without an owner.
func (a *App) Delete(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.api.DeleteAccount(ctx); err != nil {
		return err
	}
	a.forgetSession(ctx)
	a.printf("Account deleted\n")
	return nil
}

// saveState persists the client's current tokens with email and theme.
func (a *App) saveState(ctx context.Context) {
	access, refresh := a.api.Tokens()
	st := &session.State{Email: a.email, AccessToken: access, RefreshToken: refresh, Theme: a.theme}
	if err := a.store.Save(ctx, st); err != nil {
		a.printf("Could not save session: %v\n", err)
	}
}
