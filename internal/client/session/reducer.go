package session

import "github.com/dmitrijs2005/locator/internal/client/models"

// Action is a state transition of the session.
type Action interface {
	apply(models.Session) models.Session
}

// Credentials merges the provided fields into the session. A nil field is
// left untouched, and so is an empty token.
type Credentials struct {
	User  *models.User
	Token *string
}

func (c Credentials) apply(s models.Session) models.Session {
	if c.User != nil {
		u := *c.User
		s.User = &u
	}
	if c.Token != nil && *c.Token != "" {
		t := *c.Token
		s.Token = &t
	}
	return s
}

// LogoutAction clears both the user and the token.
type LogoutAction struct{}

func (LogoutAction) apply(models.Session) models.Session {
	return models.Session{}
}

// Reduce returns the session that results from applying a to s. It never
// mutates s.
func Reduce(s models.Session, a Action) models.Session {
	return a.apply(s)
}
