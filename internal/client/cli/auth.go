package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/common"
)

// getSimpleText, getOptionalText, getMultiline and getPassword are test seams
// for the interactive input helpers.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getMultiline    = GetMultiline
	getPassword     = GetPassword
)

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	case errors.Is(err, common.ErrorUnauthorized):
		return "not logged in"
	case errors.Is(err, common.ErrorValidation):
		return "missing or invalid input"
	default:
		return err.Error()
	}
}

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register creates an account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "User registered successfully")
	return nil
}

// Login authenticates and saves the token for later runs.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		return a.report(err)
	}

	a.setUserName(userName)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the saved token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.setUserName("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me prints the profile of the logged-in user. A rejected token ends the
// local session.
func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.setUserName("")
		}
		return a.report(err)
	}
	fmt.Fprintf(a.out, "id: %s\nusername: %s\ncreated: %s\n", u.ID, u.UserName, u.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
