// internal/app/features/admin/admin.go
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	blogstore "github.com/dalemusser/smartfarm/internal/app/store/blogs"
	cropstore "github.com/dalemusser/smartfarm/internal/app/store/crops"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	userstore "github.com/dalemusser/smartfarm/internal/app/store/users"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Handler provides admin dashboard handlers.
type Handler struct {
	userStore *userstore.Store
	cropStore *cropstore.Store
	blogStore *blogstore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new admin Handler.
func NewHandler(docs *document.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		userStore: userstore.New(docs),
		cropStore: cropstore.New(docs),
		blogStore: blogstore.New(docs),
		errLog:    errLog,
		logger:    logger,
	}
}

// UserRowVM is a single user row in the admin listing.
type UserRowVM struct {
	ID        int
	Username  string
	Email     string
	Phone     string
	Role      string
	Joined    string
	CropCount int
	IsSelf    bool
}

// CropRowVM is a single crop row in the admin listing.
type CropRowVM struct {
	ID       int
	CropName string
	CropType string
	Area     string
	Season   string
	Farmer   string
	Status   string
}

// BlogRowVM is a single blog post row in the admin listing.
type BlogRowVM struct {
	ID       int
	Title    string
	Author   string
	Category string
	Posted   string
}

// IndexVM is the view model for the admin dashboard.
type IndexVM struct {
	viewdata.BaseVM
	TotalUsers   int
	TotalFarmers int
	TotalAdmins  int
	TotalCrops   int
	TotalBlogs   int
	TotalArea    string
	TotalYield   string
	Users        []UserRowVM
	Crops        []CropRowVM
	Blogs        []BlogRowVM
}

// Routes returns a chi.Router with admin routes mounted.
// All routes require the admin role.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))

	r.Get("/", h.index)
	r.Post("/users/{userID}/delete", h.handleDeleteUser)

	return r
}

// index renders the admin dashboard with farm-wide statistics and listings.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	vm := IndexVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Admin"

	users, err := h.userStore.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load users for admin dashboard", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	crops, err := h.cropStore.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load crops for admin dashboard", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	blogs, err := h.blogStore.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load blogs for admin dashboard", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cropCounts := make(map[string]int)
	for _, c := range crops {
		cropCounts[c.Farmer]++
	}

	current, _ := auth.CurrentUser(r)

	vm.TotalUsers = len(users)
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			vm.TotalAdmins++
		} else {
			vm.TotalFarmers++
		}
		row := UserRowVM{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			Joined:    u.CreatedAt.Format("Jan 2, 2006"),
			CropCount: cropCounts[u.Username],
		}
		if current != nil && current.UserID() == u.ID {
			row.IsSelf = true
		}
		vm.Users = append(vm.Users, row)
	}

	totals := cropstore.Sum(crops)
	vm.TotalCrops = totals.Count
	vm.TotalArea = formatAmount(totals.Area)
	vm.TotalYield = formatAmount(totals.Yield)

	for _, c := range crops {
		vm.Crops = append(vm.Crops, CropRowVM{
			ID:       c.ID,
			CropName: c.CropName,
			CropType: c.CropType,
			Area:     formatAmount(c.Area),
			Season:   c.Season,
			Farmer:   c.Farmer,
			Status:   c.Status,
		})
	}

	vm.TotalBlogs = len(blogs)
	for _, b := range blogs {
		vm.Blogs = append(vm.Blogs, BlogRowVM{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author,
			Category: b.Category,
			Posted:   b.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	templates.Render(w, r, "admin/index", vm)
}

// handleDeleteUser removes a user account. Admins cannot delete themselves,
// and the last admin account cannot be removed.
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil || id <= 0 {
		http.Redirect(w, r, "/admin?error=not_found", http.StatusSeeOther)
		return
	}

	if current.UserID() == id {
		http.Redirect(w, r, "/admin?error=cannot_delete_self", http.StatusSeeOther)
		return
	}

	target, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/admin?error=not_found", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to load user for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if target.Role == models.RoleAdmin {
		admins, err := h.userStore.CountAdmins(r.Context())
		if err != nil {
			h.errLog.Log(r, "failed to count admins", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if admins <= 1 {
			http.Redirect(w, r, "/admin?error=last_admin", http.StatusSeeOther)
			return
		}
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/admin?error=not_found", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to delete user", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user deleted by admin",
		zap.Int("user_id", id),
		zap.String("username", target.Username),
		zap.String("deleted_by", current.Username))

	http.Redirect(w, r, "/admin?success=user_deleted", http.StatusSeeOther)
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%g", f)
}
