// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	cropstore "github.com/dalemusser/smartfarm/internal/app/store/crops"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// Handler provides dashboard handlers.
type Handler struct {
	cropStore *cropstore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(docs *document.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		cropStore: cropstore.New(docs),
		errLog:    errLog,
		logger:    logger,
	}
}

// CropRowVM is a single crop row on the dashboard.
type CropRowVM struct {
	ID            int
	CropName      string
	CropType      string
	Area          string
	Season        string
	ExpectedYield string
	Price         string
	Status        string
	Planted       string
}

// DashboardVM is the view model for the dashboard page.
type DashboardVM struct {
	viewdata.BaseVM
	Crops      []CropRowVM
	CropCount  int
	TotalArea  string
	TotalYield string
}

// Routes returns a chi.Router with dashboard routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	r.Get("/", h.Index)
	return r
}

// Index renders the dashboard with the signed-in farmer's crops and totals.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	vm := DashboardVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Dashboard"

	crops, err := h.cropStore.ListByFarmer(r.Context(), user.Username)
	if err != nil {
		h.errLog.Log(r, "failed to load crops for dashboard", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for _, c := range crops {
		vm.Crops = append(vm.Crops, rowOf(c))
	}

	totals := cropstore.Sum(crops)
	vm.CropCount = totals.Count
	vm.TotalArea = formatAmount(totals.Area)
	vm.TotalYield = formatAmount(totals.Yield)

	templates.Render(w, r, "dashboard/index", vm)
}

func rowOf(c models.Crop) CropRowVM {
	return CropRowVM{
		ID:            c.ID,
		CropName:      c.CropName,
		CropType:      c.CropType,
		Area:          formatAmount(c.Area),
		Season:        c.Season,
		ExpectedYield: formatAmount(c.ExpectedYield),
		Price:         formatAmount(c.Price),
		Status:        c.Status,
		Planted:       c.CreatedAt.Format("Jan 2, 2006"),
	}
}

// formatAmount renders a quantity without trailing zeros.
func formatAmount(f float64) string {
	return fmt.Sprintf("%g", f)
}
