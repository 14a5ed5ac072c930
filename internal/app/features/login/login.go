// internal/app/features/login/login.go
package login

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	userstore "github.com/dalemusser/smartfarm/internal/app/store/users"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/authutil"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
)

// Handler provides login handlers.
type Handler struct {
	userStore  *userstore.Store
	sessionMgr *auth.SessionManager
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(
	docs *document.Store,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:  userstore.New(docs),
		sessionMgr: sessionMgr,
		errLog:     errLog,
		logger:     logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	ErrorMsg  string
	Username  string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)

	return r
}

// showLogin displays the login form.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	// Map error codes carried on redirects to user-friendly messages
	errorCode := r.URL.Query().Get("error")
	errorMsg := ""
	switch errorCode {
	case "session_expired":
		errorMsg = "Your session has expired. Please log in again."
	case "service_unavailable":
		errorMsg = "Service temporarily unavailable. Please try again."
	case "":
		// No error
	default:
		errorMsg = viewdata.NoticeText(errorCode)
	}

	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		ReturnURL: query.Get(r, "return"),
		ErrorMsg:  errorMsg,
	}
	vm.Title = "Login"

	templates.Render(w, r, "login/index", vm)
}

// handleLogin checks the username and password and creates a session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	renderError := func(msg string) {
		vm := LoginVM{
			BaseVM:    viewdata.New(r),
			ErrorMsg:  msg,
			Username:  username,
			ReturnURL: returnURL,
		}
		vm.Title = "Login"
		templates.Render(w, r, "login/index", vm)
	}

	if username == "" || password == "" {
		renderError("Please enter your username and password")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			h.logger.Info("login failed, unknown username",
				zap.String("username", username))
			renderError("Invalid username or password")
			return
		}
		h.errLog.Log(r, "failed to load user during login", err)
		renderError("Service temporarily unavailable. Please try again.")
		return
	}

	if !authutil.CheckPassword(password, user.PasswordHash) {
		h.logger.Info("login failed, wrong password",
			zap.String("username", user.Username))
		renderError("Invalid username or password")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.errLog.Log(r, "failed to generate session token", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.sessionMgr.CreateSession(w, r, user.ID, user.Username, user.Role, token); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/dashboard"), http.StatusSeeOther)
}
