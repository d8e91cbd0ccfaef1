package auth

import "errors"

// ErrNotFound is returned when no user matches a login.
var ErrNotFound = errors.New("user not found")

// User is an account row. Accounts come from the migrations; the API has
// no registration surface.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         string // USER/ADMIN
}

// Authorities expands the stored role into the authority strings clients
// check.
func (u User) Authorities() []string {
	if u.Role == "ADMIN" {
		return []string{"ROLE_USER", "ROLE_ADMIN"}
	}
	return []string{"ROLE_USER"}
}
