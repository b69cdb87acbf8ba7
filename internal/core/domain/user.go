package domain

import (
	"errors"
	"time"
)

const (
	RolePublic   = "public"
	RoleEmployee = "employee"
)

// DefaultDisplayName is stored on every new profile until the user edits it.
const DefaultDisplayName = "New User"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("the email address is already in use by another account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("the email address is improperly formatted")
	ErrWeakPassword       = errors.New("the password is too short")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrInvalidToken       = errors.New("invalid credential")
	ErrMissingToken       = errors.New("missing credential")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// Identity is an account owned by the identity provider.
type Identity struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the per-user record kept next to the listings.
type Profile struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role"`
}

// RoleForCode resolves the role granted by a sign-up code. stored is the
// employee code on record; found reports whether that record exists.
func RoleForCode(stored string, found bool, supplied string) string {
	if found && stored == supplied {
		return RoleEmployee
	}
	return RolePublic
}
