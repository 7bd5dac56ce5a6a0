package domain

import "time"

// Role is the coarse authorization class carried by every session.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// AdminSubjectID is the synthetic identifier given to the configured administrator.
const AdminSubjectID = "admin"

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// Principal is an identity resolved during login. PasswordHash is empty for
// the administrator, whose credentials live in configuration.
type Principal struct {
	ID           string
	Role         Role
	PasswordHash string
}

// SessionClaims is what a valid session token asserts about its bearer.
type SessionClaims struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is a freshly minted token plus its expiry, ready to be set as a cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
