// internal/app/features/dashboard/dashboard_test.go
package dashboard

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	errorsfeature "github.com/dalemusser/smartfarm/internal/app/features/errors"
	cropstore "github.com/dalemusser/smartfarm/internal/app/store/crops"
	"github.com/dalemusser/smartfarm/internal/app/store/document"
	"github.com/dalemusser/smartfarm/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *document.Store) {
	t.Helper()
	docs := testutil.SetupTestStore(t)
	errLog := errorsfeature.NewErrorLogger(zap.NewNop())
	return NewHandler(docs, errLog, zap.NewNop()), docs
}

func addCrop(t *testing.T, docs *document.Store, farmer, name string, area, yield float64) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := cropstore.New(docs).Create(ctx, cropstore.CreateInput{
		CropName:      name,
		CropType:      "Cereal",
		Area:          area,
		Season:        "Kharif",
		ExpectedYield: yield,
		Price:         120,
		Farmer:        farmer,
	})
	if err != nil {
		t.Fatalf("create crop: %v", err)
	}
}

func TestDashboardEmpty(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.FarmerUser())
	rec := testutil.NewRecorder()

	h.Index(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "not added any crops yet")
}

func TestDashboardShowsOwnCrops(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)

	addCrop(t, docs, "greenacres", "Wheat", 12.5, 30)
	addCrop(t, docs, "greenacres", "Maize", 7.5, 18)
	addCrop(t, docs, "hillside", "Barley", 4, 9)

	req := testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.FarmerUser())
	rec := testutil.NewRecorder()

	h.Index(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Wheat")
	rec.AssertContains(t, "Maize")
	if strings.Contains(rec.Body.String(), "Barley") {
		t.Errorf("dashboard must not show another farmer's crops")
	}
}

func TestDashboardTotals(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, docs := newTestHandler(t)

	addCrop(t, docs, "greenacres", "Wheat", 12.5, 30)
	addCrop(t, docs, "greenacres", "Maize", 7.5, 18)

	req := testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.FarmerUser())
	rec := testutil.NewRecorder()

	h.Index(rec, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "20")
	rec.AssertContains(t, "48")
}

func TestDashboardRedirectsAnonymous(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/dashboard")
	rec := testutil.NewRecorder()

	h.Index(rec, req)

	rec.AssertRedirect(t, "/login")
}
