package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// SignIn prompts for credentials and starts a session. On success the home
// view is shown.
func (a *App) SignIn(ctx context.Context) error {
	a.navigate(routeSignIn)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.SignIn(ctx, forms.SignIn{Email: email, Password: string(password)})
	if err != nil {
		a.fail(ctx, err, "Failed to sign in")
		return err
	}

	a.success("Signed in as %s (%s)", user.Name, user.Role)
	return a.ShowHome(ctx)
}

// SignUp registers an account and then asks the user to sign in with it.
func (a *App) SignUp(ctx context.Context) error {
	a.navigate(routeSignUp)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.SignUp(ctx, forms.SignUp{Name: name, Email: email, Password: string(password)}); err != nil {
		a.fail(ctx, err, "Failed to sign up")
		return err
	}

	a.success("Account created. Sign in to continue.")
	return a.SignIn(ctx)
}

// SignOut ends the session.
func (a *App) SignOut(ctx context.Context) error {
	a.leave()
	a.authService.SignOut(ctx)
	a.route = routeNone
	a.success("Signed out")
	return nil
}

var errCancelled = errors.New("cancelled")

// confirm asks a y/N question. Anything but yes cancels.
func (a *App) confirm(prompt string) error {
	answer, err := getSimpleText(a.reader, prompt+" [y/N]", a.out)
	if err != nil {
		return err
	}
	if !IsYes(answer) {
		a.hint("Cancelled")
		return errCancelled
	}
	return nil
}
