package services

import "github.com/dmitrijs2005/locator/internal/client/models"

// Access is what the console offers for a session. It only decides what is
// shown; the server enforces the real permissions.
type Access struct {
	Authenticated bool
	Admin         bool
}

// AccessFor derives the offered actions from a session snapshot.
func AccessFor(s models.Session) Access {
	return Access{
		Authenticated: s.Authenticated(),
		Admin:         s.Authenticated() && s.Role().IsPrivileged(),
	}
}
