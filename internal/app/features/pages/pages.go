// internal/app/features/pages/pages.go
package pages

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
)

// Handler provides static page handlers.
type Handler struct{}

// NewHandler creates a new pages Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// PageVM is the view model for static pages.
type PageVM struct {
	viewdata.BaseVM
}

// AboutRouter returns a router for the about page.
func (h *Handler) AboutRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage("pages/about", "About"))
	return r
}

// ContactRouter returns a router for the contact page.
func (h *Handler) ContactRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage("pages/contact", "Contact"))
	return r
}

// FarmMapRouter returns a router for the farm map page.
func (h *Handler) FarmMapRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showPage("pages/farm_map", "Farm Map"))
	return r
}

// showPage returns a handler that renders the named page template.
func (h *Handler) showPage(tmpl, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := PageVM{
			BaseVM: viewdata.New(r),
		}
		vm.Title = title

		templates.Render(w, r, tmpl, vm)
	}
}
