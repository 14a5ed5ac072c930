// internal/app/features/blogs/blogs.go
package blogs

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	blogstore "github.com/dalemusser/smartfarm/internal/app/store/blogs"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/htmlsanitize"
	"github.com/dalemusser/smartfarm/internal/app/system/inputval"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// categories lists the blog categories offered on the post form.
var categories = []string{
	models.DefaultBlogCategory,
	"Market Updates",
	"Weather",
	"Equipment",
	"Announcements",
}

// Handler provides blog handlers.
type Handler struct {
	blogStore *blogstore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new blogs Handler.
func NewHandler(docs *document.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		blogStore: blogstore.New(docs),
		errLog:    errLog,
		logger:    logger,
	}
}

// PostVM is a single blog post in the list.
type PostVM struct {
	ID       int
	Title    string
	Content  template.HTML
	Author   string
	Category string
	Posted   string
}

// ListVM is the view model for the blog list page.
type ListVM struct {
	viewdata.BaseVM
	Posts []PostVM
}

// FormVM is the view model for the new post form.
type FormVM struct {
	viewdata.BaseVM
	ErrorMsg   string
	PostTitle  string
	Content    string
	Category   string
	Categories []string
}

// postInput carries the new post form fields for validation.
type postInput struct {
	Title   string `validate:"required,max=200" label:"Title"`
	Content string `validate:"required" label:"Content"`
}

// Routes returns a chi.Router with blog routes mounted.
// Reading is public; writing requires the admin role.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(sessionMgr.RequireRole("admin"))
		r.Get("/new", h.showNew)
		r.Post("/new", h.handleNew)
		r.Post("/{blogID}/delete", h.handleDelete)
	})

	return r
}

// list shows all blog posts, newest first.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	vm := ListVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Blog"

	posts, err := h.blogStore.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load blog posts", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for _, post := range posts {
		vm.Posts = append(vm.Posts, PostVM{
			ID:       post.ID,
			Title:    post.Title,
			Content:  htmlsanitize.PrepareForDisplay(post.Content),
			Author:   post.Author,
			Category: post.Category,
			Posted:   post.CreatedAt.Format("January 2, 2006"),
		})
	}

	templates.Render(w, r, "blogs/list", vm)
}

// showNew displays the new post form.
func (h *Handler) showNew(w http.ResponseWriter, r *http.Request) {
	vm := FormVM{
		BaseVM:     viewdata.New(r),
		Category:   models.DefaultBlogCategory,
		Categories: categories,
	}
	vm.Title = "New Blog Post"

	templates.Render(w, r, "blogs/form", vm)
}

// handleNew validates the form and publishes the post.
func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := postInput{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
	}
	category := strings.TrimSpace(r.FormValue("category"))

	renderError := func(msg string) {
		vm := FormVM{
			BaseVM:     viewdata.New(r),
			ErrorMsg:   msg,
			PostTitle:  input.Title,
			Content:    input.Content,
			Category:   category,
			Categories: categories,
		}
		vm.Title = "New Blog Post"
		templates.Render(w, r, "blogs/form", vm)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderError(result.First())
		return
	}

	post, err := h.blogStore.Create(r.Context(), blogstore.CreateInput{
		Title:    input.Title,
		Content:  htmlsanitize.Sanitize(input.Content),
		Author:   user.Username,
		Category: category,
	})
	if err != nil {
		h.errLog.Log(r, "failed to create blog post", err)
		renderError("Could not publish the post. Please try again.")
		return
	}

	h.logger.Info("blog post published",
		zap.Int("blog_id", post.ID),
		zap.String("author", user.Username),
		zap.String("title", post.Title))

	http.Redirect(w, r, "/blogs?success=blog_added", http.StatusSeeOther)
}

// handleDelete removes a blog post.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "blogID"))
	if err != nil || id <= 0 {
		http.Redirect(w, r, "/blogs?error=not_found", http.StatusSeeOther)
		return
	}

	if err := h.blogStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/blogs?error=not_found", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to delete blog post", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("blog post deleted", zap.Int("blog_id", id))

	http.Redirect(w, r, "/blogs?success=blog_deleted", http.StatusSeeOther)
}
