// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"html/template"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/csrf"

	"github.com/dalemusser/smartfarm/internal/app/store/document"
	settingsstore "github.com/dalemusser/smartfarm/internal/app/store/settings"
	"github.com/dalemusser/smartfarm/internal/app/system/authz"
	"github.com/dalemusser/smartfarm/internal/app/system/htmlsanitize"
	"github.com/dalemusser/smartfarm/internal/app/system/timeouts"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site settings (from the data document)
	AppName    string
	Version    string
	FooterHTML template.HTML

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	Username   string
	Role       string
	IsAdmin    bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot notices carried across redirects via query parameters
	Notice string
	Error  string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// globalDocs is set by Init and used by New() to load settings.
var globalDocs *document.Store

// Init sets the document store for viewdata.
// Call this once at startup from bootstrap.
func Init(docs *document.Store) {
	globalDocs = docs
}

// noticeMessages maps redirect notice codes to display text. Unknown codes
// fall through unchanged so handlers can pass literal messages.
var noticeMessages = map[string]string{
	"registered":         "Registration successful. Please log in.",
	"crop_added":         "Crop added successfully.",
	"crop_updated":       "Crop updated successfully.",
	"crop_deleted":       "Crop deleted successfully.",
	"blog_added":         "Blog post published.",
	"blog_deleted":       "Blog post deleted.",
	"user_deleted":       "User deleted.",
	"cannot_delete_self": "You cannot delete your own account.",
	"last_admin":         "The last administrator account cannot be deleted.",
	"logged_out":         "You have been logged out.",
	"admin_required":     "Administrator access is required for that page.",
	"not_found":          "The requested record was not found.",
	"not_yours":          "You can only manage your own crops.",
}

// NoticeText resolves a notice code to its display message.
func NoticeText(code string) string {
	if msg, ok := noticeMessages[code]; ok {
		return msg
	}
	return code
}

// NewBaseVM creates a fully populated BaseVM for a page.
// This is the preferred way to create a BaseVM for embedding in view models.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := New(r)
	vm.Title = title
	vm.BackURL = httpnav.ResolveBackURL(r, backDefault)
	return vm
}

// New creates a BaseVM with site settings loaded from the data document.
// This is the standard way to create a BaseVM for most handlers.
func New(r *http.Request) BaseVM {
	role, username, userID, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		AppName:     models.DefaultAppName,
		Version:     models.DefaultAppVersion,
		FooterHTML:  htmlsanitize.SanitizeToHTML(models.DefaultFooterHTML),
		IsLoggedIn:  signedIn,
		Username:    username,
		Role:        role,
		IsAdmin:     authz.IsAdmin(r),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	if signedIn {
		vm.UserID = strconv.Itoa(userID)
	}

	if code := query.Get(r, "success"); code != "" {
		vm.Notice = NoticeText(code)
	}
	if code := query.Get(r, "error"); code != "" {
		vm.Error = NoticeText(code)
	}

	if globalDocs != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		settings, err := settingsstore.New(globalDocs).Get(ctx)
		if err == nil {
			vm.AppName = settings.AppName
			vm.Version = settings.Version
		}
	}

	return vm
}

// GetAppName returns the application name from settings, or the default if
// not available.
func GetAppName(ctx context.Context, docs *document.Store) string {
	if docs == nil {
		return models.DefaultAppName
	}
	settings, err := settingsstore.New(docs).Get(ctx)
	if err != nil {
		return models.DefaultAppName
	}
	return settings.AppName
}
