// internal/domain/models/user.go
package models

import "time"

// User represents users of the application.
//
// Username is what the user types to log in and is unique across the user
// collection (enforced at registration time by the user store).
// PasswordHash holds a bcrypt hash; the plaintext password is never stored.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`

	// Role is admin or user. Farmers are regular users; admin has
	// override access to every crop and publishes blog posts.
	Role string `json:"role"`

	CreatedAt time.Time `json:"created_at"`
}

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AllRoles returns all valid user roles.
func AllRoles() []string {
	return []string{
		RoleAdmin,
		RoleUser,
	}
}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
