// internal/app/features/register/register.go
package register

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	userstore "github.com/dalemusser/smartfarm/internal/app/store/users"
	"github.com/dalemusser/smartfarm/internal/app/system/authutil"
	"github.com/dalemusser/smartfarm/internal/app/system/inputval"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Handler provides registration handlers.
type Handler struct {
	userStore *userstore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new register Handler.
func NewHandler(docs *document.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		userStore: userstore.New(docs),
		errLog:    errLog,
		logger:    logger,
	}
}

// RegisterVM is the view model for the registration page.
type RegisterVM struct {
	viewdata.BaseVM
	ErrorMsg string
	Username string
	Email    string
	Phone    string
}

// registerInput carries the registration form fields for validation.
type registerInput struct {
	Username string `validate:"required,min=3,max=50" label:"Username"`
	Email    string `validate:"required,email" label:"Email"`
	Phone    string `validate:"max=20" label:"Phone"`
}

// Routes returns a chi.Router with registration routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showRegister)
	r.Post("/", h.handleRegister)

	return r
}

// showRegister displays the registration form.
func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	vm := RegisterVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Register"

	templates.Render(w, r, "register/index", vm)
}

// handleRegister validates the form and creates the account.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := registerInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
	}
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	renderError := func(msg string) {
		vm := RegisterVM{
			BaseVM:   viewdata.New(r),
			ErrorMsg: msg,
			Username: input.Username,
			Email:    input.Email,
			Phone:    input.Phone,
		}
		vm.Title = "Register"
		templates.Render(w, r, "register/index", vm)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderError(result.First())
		return
	}

	if err := authutil.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}
	if password != confirmPassword {
		renderError("Passwords do not match.")
		return
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		h.errLog.Log(r, "failed to hash password", err)
		renderError("Registration failed. Please try again.")
		return
	}

	user, err := h.userStore.Create(r.Context(), userstore.CreateInput{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrUsernameTaken) {
			renderError("That username is already taken. Please choose another.")
			return
		}
		h.errLog.Log(r, "failed to create user", err)
		renderError("Registration failed. Please try again.")
		return
	}

	h.logger.Info("new user registered",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username))

	http.Redirect(w, r, "/login?success=registered", http.StatusSeeOther)
}
