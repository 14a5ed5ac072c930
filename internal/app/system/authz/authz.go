// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/smartfarm/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), username, numeric id, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", 0, false. This ensures callers can trust that
// ok=true means a valid, authenticated user with a valid id.
func UserCtx(r *http.Request) (role string, username string, userID int, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", 0, false
	}
	id, err := strconv.Atoi(user.ID)
	if err != nil || id <= 0 {
		// Malformed user ID in session - fail closed.
		return "visitor", "", 0, false
	}
	return strings.ToLower(user.Role), user.Username, id, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsLoggedIn reports whether there is a user in the request context.
func IsLoggedIn(r *http.Request) bool {
	_, ok := auth.CurrentUser(r)
	return ok
}

// HasRole reports whether the current user has one of the specified roles.
func HasRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, allowed := range roles {
		if strings.ToLower(allowed) == role {
			return true
		}
	}
	return false
}
