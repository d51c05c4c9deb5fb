package models

import "time"

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`    // Never expose in JSON
	Role         string    `json:"role"` // admin or member
	FlatNumber   string    `json:"flat_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FlatNumber string `json:"flat_number"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Principal is the authenticated actor attached to a request context.
// Absence of a principal means "nothing to show", not an error.
type Principal struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
