package domain

import "time"

// Role is the privilege tier of a devotee account
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// AtLeast reports whether the role grants the privileges of required.
// Tiers are strictly ordered: user < moderator < admin.
func (r Role) AtLeast(required Role) bool {
	return roleRank(r) >= roleRank(required)
}

func roleRank(r Role) int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

// User represents a registered devotee
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile is the authenticated identity resolved from a bearer token
type UserProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Role          Role   `json:"role"`
}

// RegisterUserRequest is the body for POST /api/users
type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}
