package domain

import "time"

// Role is the authorization level assigned to an account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// SafeUser is the user projection exposed to callers. It structurally
// cannot carry a password hash; only UserWithSecret can.
type SafeUser struct {
	ID        string
	FullName  string
	BirthDate *time.Time
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserWithSecret is returned only by the credential-check lookup path.
// It never crosses the transport boundary.
type UserWithSecret struct {
	SafeUser
	PasswordHash string
}

// NewUser carries the data required to insert an account. PasswordHash
// must come from the credential engine; raw passwords never reach this type.
type NewUser struct {
	FullName     string
	BirthDate    *time.Time
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch names the only fields a partial update may touch.
type UserPatch struct {
	FullName  *string
	BirthDate *time.Time
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.BirthDate == nil
}

// ValidUserID reports whether s is syntactically a user id (24 hex
// characters, the store's ObjectID format). A malformed id is a validation
// failure at the boundary, not a not-found.
func ValidUserID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
