package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/smartfarm/internal/app/system/auth"
)

func TestUserCtx(t *testing.T) {
	// No user in context
	req := httptest.NewRequest("GET", "/", nil)
	role, username, userID, ok := UserCtx(req)
	if ok {
		t.Error("UserCtx() ok = true, want false for anonymous request")
	}
	if role != "visitor" {
		t.Errorf("role = %q, want 'visitor'", role)
	}
	if username != "" || userID != 0 {
		t.Errorf("username = %q, userID = %d, want empty/0", username, userID)
	}

	// User in context
	req2 := auth.WithTestUser(req, &auth.SessionUser{ID: "3", Username: "greenacres", Role: "Admin"})
	role, username, userID, ok = UserCtx(req2)
	if !ok {
		t.Fatal("UserCtx() ok = false, want true")
	}
	if role != "admin" {
		t.Errorf("role = %q, want 'admin' (lowercased)", role)
	}
	if username != "greenacres" {
		t.Errorf("username = %q, want 'greenacres'", username)
	}
	if userID != 3 {
		t.Errorf("userID = %d, want 3", userID)
	}

	// Malformed id fails closed
	req3 := auth.WithTestUser(req, &auth.SessionUser{ID: "not-a-number", Username: "x", Role: "admin"})
	role, _, userID, ok = UserCtx(req3)
	if ok {
		t.Error("UserCtx() ok = true for malformed id, want false")
	}
	if role != "visitor" || userID != 0 {
		t.Errorf("role = %q, userID = %d, want visitor/0", role, userID)
	}
}

func TestIsAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if IsAdmin(req) {
		t.Error("IsAdmin() = true for anonymous request")
	}

	admin := auth.WithTestUser(req, &auth.SessionUser{ID: "1", Username: "admin", Role: "admin"})
	if !IsAdmin(admin) {
		t.Error("IsAdmin() = false for admin user")
	}

	farmer := auth.WithTestUser(req, &auth.SessionUser{ID: "2", Username: "greenacres", Role: "user"})
	if IsAdmin(farmer) {
		t.Error("IsAdmin() = true for regular user")
	}
}

func TestIsLoggedIn(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if IsLoggedIn(req) {
		t.Error("IsLoggedIn() = true for anonymous request")
	}

	withUser := auth.WithTestUser(req, &auth.SessionUser{ID: "2", Username: "greenacres", Role: "user"})
	if !IsLoggedIn(withUser) {
		t.Error("IsLoggedIn() = false for authenticated request")
	}
}

func TestHasRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if HasRole(req, "admin", "user") {
		t.Error("HasRole() = true for anonymous request")
	}

	farmer := auth.WithTestUser(req, &auth.SessionUser{ID: "2", Username: "greenacres", Role: "user"})
	if !HasRole(farmer, "admin", "user") {
		t.Error("HasRole() = false, want true when role is in list")
	}
	if HasRole(farmer, "admin") {
		t.Error("HasRole() = true, want false when role not in list")
	}
	if !HasRole(farmer, "USER") {
		t.Error("HasRole() should compare roles case-insensitively")
	}
}
