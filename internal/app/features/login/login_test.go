// internal/app/features/login/login_test.go
package login

import (
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	userstore "github.com/dalemusser/smartfarm/internal/app/store/users"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/authutil"
	"github.com/dalemusser/smartfarm/internal/testutil"
)

const testSessionKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *document.Store) {
	t.Helper()
	docs := testutil.SetupTestStore(t)
	sessionMgr, err := auth.NewSessionManager(testSessionKey, "smartfarm-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	errLog := errorsfeature.NewErrorLogger(zap.NewNop())
	return NewHandler(docs, sessionMgr, errLog, zap.NewNop()), docs
}

func createUser(t *testing.T, docs *document.Store, username, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = userstore.New(docs).Create(ctx, userstore.CreateInput{
		Username:     username,
		PasswordHash: hash,
		Email:        username + "@example.com",
		Role:         "user",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestShowLogin(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/login")
	rec := testutil.NewRecorder()

	h.showLogin(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Username")
	rec.AssertContains(t, "Password")
}

func TestShowLoginWithErrorCode(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/login?error=session_expired")
	rec := testutil.NewRecorder()

	h.showLogin(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "session has expired")
}

func TestLoginSuccess(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)
	createUser(t, docs, "greenacres", "harvest-moon-42")

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {"greenacres"},
		"password": {"harvest-moon-42"},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertRedirect(t, "/dashboard")
	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Errorf("expected a session cookie to be set")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)
	createUser(t, docs, "greenacres", "harvest-moon-42")

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {"greenacres"},
		"password": {"wrong"},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Invalid username or password")
}

func TestLoginUnknownUser(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Invalid username or password")
}

func TestLoginCaseInsensitiveUsername(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)
	createUser(t, docs, "GreenAcres", "harvest-moon-42")

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {"greenacres"},
		"password": {"harvest-moon-42"},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertRedirect(t, "/dashboard")
}

func TestLoginMissingFields(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {""},
		"password": {""},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Please enter your username and password")
}

func TestLoginHonorsReturnURL(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)
	createUser(t, docs, "greenacres", "harvest-moon-42")

	req := testutil.NewFormRequest("/login", url.Values{
		"username": {"greenacres"},
		"password": {"harvest-moon-42"},
		"return":   {"/crops/new"},
	})
	rec := testutil.NewRecorder()

	h.handleLogin(rec, req)

	rec.AssertRedirect(t, "/crops/new")
}
