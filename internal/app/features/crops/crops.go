// internal/app/features/crops/crops.go
package crops

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	cropstore "github.com/dalemusser/smartfarm/internal/app/store/crops"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/app/system/auth"
	"github.com/dalemusser/smartfarm/internal/app/system/authz"
	"github.com/dalemusser/smartfarm/internal/app/system/inputval"
	"github.com/dalemusser/smartfarm/internal/app/system/viewdata"
	"github.com/dalemusser/smartfarm/internal/domain/models"
)

// seasons lists the growing seasons offered on the crop form.
var seasons = []string{"Kharif", "Rabi", "Zaid", "Year-round"}

// Handler provides crop record handlers.
type Handler struct {
	cropStore *cropstore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new crops Handler.
func NewHandler(docs *document.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		cropStore: cropstore.New(docs),
		errLog:    errLog,
		logger:    logger,
	}
}

// CropRowVM is a single crop row in the crop list.
type CropRowVM struct {
	ID            int
	CropName      string
	CropType      string
	Area          string
	Season        string
	ExpectedYield string
	Price         string
	Description   string
	Farmer        string
	Status        string
	Added         string
}

// ListVM is the view model for the crop list page.
type ListVM struct {
	viewdata.BaseVM
	Crops   []CropRowVM
	ShowAll bool // true when an admin is viewing every farmer's crops
}

// FormVM is the view model for the add/edit crop form.
type FormVM struct {
	viewdata.BaseVM
	ErrorMsg string
	Editing  bool
	CropID   int

	CropName      string
	CropType      string
	Area          string
	Season        string
	ExpectedYield string
	Price         string
	Description   string
	Status        string

	Seasons  []string
	Statuses []string
}

// cropInput carries the crop form fields for validation.
type cropInput struct {
	CropName      string `validate:"required,max=200" label:"Crop name"`
	CropType      string `validate:"required,max=100" label:"Crop type"`
	Area          string `validate:"required,decimal" label:"Area"`
	Season        string `validate:"required,max=50" label:"Season"`
	ExpectedYield string `validate:"required,decimal" label:"Expected yield"`
	Price         string `validate:"required,decimal" label:"Price"`
	Description   string `validate:"max=2000" label:"Description"`
	Status        string `label:"Status"`
}

// Routes returns a chi.Router with crop routes mounted.
// All routes require a signed-in user.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)

	r.Get("/", h.list)
	r.Get("/new", h.showAdd)
	r.Post("/new", h.handleAdd)
	r.Get("/{cropID}/edit", h.showEdit)
	r.Post("/{cropID}/edit", h.handleEdit)
	r.Post("/{cropID}/delete", h.handleDelete)

	return r
}

// list shows the signed-in farmer's crops, or every crop for admins.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	vm := ListVM{
		BaseVM:  viewdata.New(r),
		ShowAll: authz.IsAdmin(r),
	}
	vm.Title = "Crops"

	var (
		crops []models.Crop
		err   error
	)
	if vm.ShowAll {
		crops, err = h.cropStore.List(r.Context())
	} else {
		crops, err = h.cropStore.ListByFarmer(r.Context(), user.Username)
	}
	if err != nil {
		h.errLog.Log(r, "failed to load crops", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for _, c := range crops {
		vm.Crops = append(vm.Crops, rowOf(c))
	}

	templates.Render(w, r, "crops/list", vm)
}

// showAdd displays the add crop form.
func (h *Handler) showAdd(w http.ResponseWriter, r *http.Request) {
	vm := h.blankForm(r)
	vm.Title = "Add Crop"

	templates.Render(w, r, "crops/form", vm)
}

// handleAdd validates the form and creates the crop for the signed-in farmer.
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
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

	input := inputFromForm(r)

	renderError := func(msg string) {
		vm := h.formFromInput(r, input)
		vm.Title = "Add Crop"
		vm.ErrorMsg = msg
		templates.Render(w, r, "crops/form", vm)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderError(result.First())
		return
	}
	if input.Status != "" && !inputval.IsValidCropStatus(input.Status) {
		renderError("Status must be one of: " + strings.Join(models.AllCropStatuses(), ", ") + ".")
		return
	}

	crop, err := h.cropStore.Create(r.Context(), cropstore.CreateInput{
		CropName:      input.CropName,
		CropType:      input.CropType,
		Area:          mustParse(input.Area),
		Season:        input.Season,
		ExpectedYield: mustParse(input.ExpectedYield),
		Price:         mustParse(input.Price),
		Description:   input.Description,
		Farmer:        user.Username,
		Status:        canonicalStatus(input.Status),
	})
	if err != nil {
		h.errLog.Log(r, "failed to create crop", err)
		renderError("Could not save the crop. Please try again.")
		return
	}

	h.logger.Info("crop added",
		zap.Int("crop_id", crop.ID),
		zap.String("farmer", user.Username),
		zap.String("crop_name", crop.CropName))

	http.Redirect(w, r, "/crops?success=crop_added", http.StatusSeeOther)
}

// showEdit displays the edit form for an existing crop.
func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	crop, ok := h.loadOwnedCrop(w, r)
	if !ok {
		return
	}

	vm := h.blankForm(r)
	vm.Title = "Edit Crop"
	vm.Editing = true
	vm.CropID = crop.ID
	vm.CropName = crop.CropName
	vm.CropType = crop.CropType
	vm.Area = formatAmount(crop.Area)
	vm.Season = crop.Season
	vm.ExpectedYield = formatAmount(crop.ExpectedYield)
	vm.Price = formatAmount(crop.Price)
	vm.Description = crop.Description
	vm.Status = crop.Status

	templates.Render(w, r, "crops/form", vm)
}

// handleEdit validates the form and updates the crop.
func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	crop, ok := h.loadOwnedCrop(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := inputFromForm(r)

	renderError := func(msg string) {
		vm := h.formFromInput(r, input)
		vm.Title = "Edit Crop"
		vm.Editing = true
		vm.CropID = crop.ID
		vm.ErrorMsg = msg
		templates.Render(w, r, "crops/form", vm)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderError(result.First())
		return
	}
	if input.Status != "" && !inputval.IsValidCropStatus(input.Status) {
		renderError("Status must be one of: " + strings.Join(models.AllCropStatuses(), ", ") + ".")
		return
	}

	err := h.cropStore.Update(r.Context(), crop.ID, cropstore.UpdateInput{
		CropName:      input.CropName,
		CropType:      input.CropType,
		Area:          mustParse(input.Area),
		Season:        input.Season,
		ExpectedYield: mustParse(input.ExpectedYield),
		Price:         mustParse(input.Price),
		Description:   input.Description,
		Status:        canonicalStatus(input.Status),
	})
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/crops?error=not_found", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to update crop", err)
		renderError("Could not save the crop. Please try again.")
		return
	}

	h.logger.Info("crop updated",
		zap.Int("crop_id", crop.ID),
		zap.String("farmer", crop.Farmer))

	http.Redirect(w, r, "/crops?success=crop_updated", http.StatusSeeOther)
}

// handleDelete removes the crop.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	crop, ok := h.loadOwnedCrop(w, r)
	if !ok {
		return
	}

	if err := h.cropStore.Delete(r.Context(), crop.ID); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/crops?error=not_found", http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to delete crop", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("crop deleted",
		zap.Int("crop_id", crop.ID),
		zap.String("farmer", crop.Farmer))

	http.Redirect(w, r, "/crops?success=crop_deleted", http.StatusSeeOther)
}

// loadOwnedCrop resolves the crop from the URL and checks ownership.
// Admins may manage any crop; farmers only their own. On failure it writes
// the redirect and returns ok=false.
func (h *Handler) loadOwnedCrop(w http.ResponseWriter, r *http.Request) (*models.Crop, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}

	id, err := strconv.Atoi(chi.URLParam(r, "cropID"))
	if err != nil || id <= 0 {
		http.Redirect(w, r, "/crops?error=not_found", http.StatusSeeOther)
		return nil, false
	}

	crop, err := h.cropStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Redirect(w, r, "/crops?error=not_found", http.StatusSeeOther)
			return nil, false
		}
		h.errLog.Log(r, "failed to load crop", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	if !authz.IsAdmin(r) && !strings.EqualFold(crop.Farmer, user.Username) {
		h.logger.Warn("crop access denied",
			zap.Int("crop_id", crop.ID),
			zap.String("owner", crop.Farmer),
			zap.String("requester", user.Username))
		http.Redirect(w, r, "/crops?error=not_yours", http.StatusSeeOther)
		return nil, false
	}

	return crop, true
}

func (h *Handler) blankForm(r *http.Request) FormVM {
	return FormVM{
		BaseVM:   viewdata.New(r),
		Status:   models.StatusPlanted,
		Seasons:  seasons,
		Statuses: models.AllCropStatuses(),
	}
}

func (h *Handler) formFromInput(r *http.Request, input cropInput) FormVM {
	vm := h.blankForm(r)
	vm.CropName = input.CropName
	vm.CropType = input.CropType
	vm.Area = input.Area
	vm.Season = input.Season
	vm.ExpectedYield = input.ExpectedYield
	vm.Price = input.Price
	vm.Description = input.Description
	if input.Status != "" {
		vm.Status = input.Status
	}
	return vm
}

func inputFromForm(r *http.Request) cropInput {
	return cropInput{
		CropName:      strings.TrimSpace(r.FormValue("crop_name")),
		CropType:      strings.TrimSpace(r.FormValue("crop_type")),
		Area:          strings.TrimSpace(r.FormValue("area")),
		Season:        strings.TrimSpace(r.FormValue("season")),
		ExpectedYield: strings.TrimSpace(r.FormValue("expected_yield")),
		Price:         strings.TrimSpace(r.FormValue("price")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Status:        strings.TrimSpace(r.FormValue("status")),
	}
}

// canonicalStatus maps a case-insensitive status to its stored form.
func canonicalStatus(status string) string {
	for _, s := range models.AllCropStatuses() {
		if strings.EqualFold(s, status) {
			return s
		}
	}
	return ""
}

// mustParse converts a validated decimal field. The decimal rule already
// guarantees the string parses.
func mustParse(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
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
		Description:   c.Description,
		Farmer:        c.Farmer,
		Status:        c.Status,
		Added:         c.CreatedAt.Format("Jan 2, 2006"),
	}
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%g", f)
}
