// internal/app/features/home/home.go
package home

import (
	"html/template"
	"net/http"
	"strings"
	"unicode"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	blogstore "github.com/dalemusser/smartfarm/internal/app/store/blogs"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/htmlsanitize"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// recentBlogCount is how many posts show on the landing page.
const recentBlogCount = 3

// Handler provides home page handlers.
type Handler struct {
	docs   *document.Store
	logger *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(docs *document.Store, logger *zap.Logger) *Handler {
	return &Handler{
		docs:   docs,
		logger: logger,
	}
}

// BlogPreviewVM is a single blog post summary on the landing page.
type BlogPreviewVM struct {
	ID       int
	Title    string
	Excerpt  template.HTML
	Author   string
	Category string
	Posted   string
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	RecentBlogs []BlogPreviewVM
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the landing page with the most recent blog posts.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := HomeVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Home"

	posts, err := blogstore.New(h.docs).Recent(r.Context(), recentBlogCount)
	if err != nil {
		h.logger.Warn("failed to load recent blog posts", zap.Error(err))
	}
	for _, post := range posts {
		vm.RecentBlogs = append(vm.RecentBlogs, previewOf(post))
	}

	templates.Render(w, r, "home/index", vm)
}

func previewOf(post models.Blog) BlogPreviewVM {
	return BlogPreviewVM{
		ID:       post.ID,
		Title:    post.Title,
		Excerpt:  htmlsanitize.SanitizeToHTML(excerpt(post.Content, 200)),
		Author:   post.Author,
		Category: post.Category,
		Posted:   post.CreatedAt.Format("January 2, 2006"),
	}
}

// excerpt strips tags and truncates at a word boundary.
func excerpt(content string, max int) string {
	text := strings.TrimSpace(htmlsanitize.StripTags(content))
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !unicode.IsSpace(rune(text[cut])) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimRight(text[:cut], " \t\n") + "..."
}
