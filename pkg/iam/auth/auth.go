package auth

import (
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// Role of an authenticated actor
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Actor is the identity behind a request
type Actor struct {
	ID    kernel.UserID `json:"id"`
	Email kernel.Email  `json:"email"`
	Role  Role          `json:"role"`
}

// IsAdmin reports whether the actor may review submissions
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// IdentityProvider resolves a bearer token into an actor
type IdentityProvider interface {
	Identify(token string) (*Actor, error)
}

// RequireAdmin fails for anonymous actors and for every role except admin
func RequireAdmin(actor *Actor) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized()
	}
	return nil
}
