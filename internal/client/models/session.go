package models

// Session is the persisted authentication state. The zero value is
// "signed out".
type Session struct {
	User  *User   `json:"user"`
	Token *string `json:"token"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != nil && *s.Token != ""
}

// Role returns the signed-in user's role, or "" when unknown.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
