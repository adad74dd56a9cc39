// Package models defines the records exchanged with the homes/locations API.
// They are value snapshots: the console never edits them in place.
package models

// Role is the permission level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleRoot  Role = "root"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleRoot:
		return true
	}
	return false
}

// IsPrivileged reports whether r may see admin actions.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleRoot
}

// User is an account as returned by the API.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserCreate is the sign-up payload.
type UserCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSignIn is the sign-in payload.
type UserSignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is the payload of updateUser.
type UserUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// SignInResponse carries the bearer token and the signed-in profile.
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}
