// Package services contains application services for the locator console.
// This file defines the authentication service: sign in, sign up, sign out
// and the liveness probe.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/client/session"
)

// AuthAPI is the part of the remote client the auth service needs.
type AuthAPI interface {
	Root(ctx context.Context) (json.RawMessage, error)
	SignUp(ctx context.Context, in models.UserCreate) (models.User, error)
	SignIn(ctx context.Context, in models.UserSignIn) (models.SignInResponse, error)
}

// SessionStore is the part of the session store the services write to.
type SessionStore interface {
	SetCredentials(ctx context.Context, c session.Credentials) models.Session
	Logout(ctx context.Context) models.Session
	Snapshot() models.Session
}

// Resetter drops every cached query.
type Resetter interface {
	Reset()
}

// SessionNotifier is the part of the session store that reports changes.
type SessionNotifier interface {
	Subscribe(l session.Listener) func()
}

// ResetOnLogout drops the cached queries whenever the session loses its
// token, including the logout forced by a 401 response. The returned
// function stops watching.
func ResetOnLogout(sess SessionNotifier, cache Resetter) func() {
	return sess.Subscribe(func(s models.Session) {
		if !s.Authenticated() {
			cache.Reset()
		}
	})
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: validate the form, authenticate and store user and token.
//   - SignUp: validate the form, register and store the returned user only;
//     the caller is expected to direct the user to sign in next.
//   - SignOut: clear the session and forget everything cached for it.
//   - Ping: check server liveness.
//
// A form that fails validation returns forms.ValidationErrors and issues no
// request.
type AuthService interface {
	SignIn(ctx context.Context, form forms.SignIn) (models.User, error)
	SignUp(ctx context.Context, form forms.SignUp) (models.User, error)
	SignOut(ctx context.Context)
	Ping(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session SessionStore
	cache   Resetter
}

// NewAuthService constructs an AuthService bound to the given API, session
// and cache.
func NewAuthService(api AuthAPI, session SessionStore, cache Resetter) AuthService {
	return &authService{api: api, session: session, cache: cache}
}

func (a *authService) SignIn(ctx context.Context, form forms.SignIn) (models.User, error) {
	in, err := form.Validate()
	if err != nil {
		return models.User{}, err
	}

	resp, err := a.api.SignIn(ctx, in)
	if err != nil {
		return models.User{}, fmt.Errorf("sign in error: %w", err)
	}

	user := resp.User
	token := resp.AccessToken
	a.session.SetCredentials(ctx, session.Credentials{User: &user, Token: &token})
	return user, nil
}

func (a *authService) SignUp(ctx context.Context, form forms.SignUp) (models.User, error) {
	in, err := form.Validate()
	if err != nil {
		return models.User{}, err
	}

	user, err := a.api.SignUp(ctx, in)
	if err != nil {
		return models.User{}, fmt.Errorf("sign up error: %w", err)
	}

	// No token yet: the existing one, if any, is left in place.
	a.session.SetCredentials(ctx, session.Credentials{User: &user})
	return user, nil
}

// SignOut clears the session. Cached queries belong to the previous identity
// and are dropped as well.
func (a *authService) SignOut(ctx context.Context) {
	a.session.Logout(ctx)
	if a.cache != nil {
		a.cache.Reset()
	}
}

func (a *authService) Ping(ctx context.Context) error {
	if _, err := a.api.Root(ctx); err != nil {
		return fmt.Errorf("ping error: %w", err)
	}
	return nil
}
