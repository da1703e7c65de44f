package dashboard_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/dalemusser/academyhub/internal/app/features/dashboard"
	metricsstore "github.com/dalemusser/academyhub/internal/app/store/metrics"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"github.com/dalemusser/academyhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	r := chi.NewRouter()
	dashboard.MountRoutes(r, dashboard.NewHandler(fx.Service(), 10, zap.NewNop()))
	return r, fx
}

func do(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeCounts(t *testing.T) {
	h, fx := newRouter(t)
	ctx := context.Background()

	coach := fx.CreateCoach(ctx, "Ravi Menon")
	asha := fx.CreateStudent(ctx, "Asha Rao")
	fx.CreateStudent(ctx, "Ben Ng")
	fx.CreateBatch(ctx, "Solo", 1, asha)
	fx.BookDemo(ctx, "Chen Li", coach.ID)

	rec := do(h, testutil.NewRequest(http.MethodGet, "/counts"))
	rec.AssertStatus(t, http.StatusOK)

	var got metricsstore.Counts
	rec.DecodeJSON(t, &got)
	if got.Demos != 1 || got.DemosByStatus[string(models.DemoBooked)] != 1 {
		t.Errorf("demos: got %d (%v), want 1 BOOKED", got.Demos, got.DemosByStatus)
	}
	if got.BatchesByStatus[string(models.BatchFull)] != 1 {
		t.Errorf("batches by status: got %v, want one FULL", got.BatchesByStatus)
	}
	if got.Students != 2 || got.Unassigned != 1 {
		t.Errorf("students: got %d (%d unassigned), want 2 (1 unassigned)", got.Students, got.Unassigned)
	}
	if got.SeatsOpen != 0 {
		t.Errorf("SeatsOpen: got %d, want 0", got.SeatsOpen)
	}
}

func TestHandleQuery(t *testing.T) {
	h, fx := newRouter(t)
	ctx := context.Background()
	fx.CreateStudent(ctx, "Asha Rao")
	fx.CreateStudent(ctx, "Ásha Iyer")
	fx.CreateStudent(ctx, "Ben Ng")

	body := map[string]any{
		"search": "asha",
		"sort":   map[string]string{"field": "name", "direction": "desc"},
		"page":   map[string]int{"index": 0, "size": 1},
	}
	rec := do(h, testutil.NewJSONRequest(t, http.MethodPost, "/query/students", body))
	rec.AssertStatus(t, http.StatusOK)

	var res struct {
		Rows       []models.Student `json:"rows"`
		TotalCount int              `json:"total_count"`
		PageCount  int              `json:"page_count"`
	}
	rec.DecodeJSON(t, &res)
	if res.TotalCount != 2 || res.PageCount != 2 {
		t.Errorf("totals: got %d rows over %d pages, want 2 over 2", res.TotalCount, res.PageCount)
	}
	if len(res.Rows) != 1 || res.Rows[0].Name != "Asha Rao" {
		t.Errorf("rows: got %+v, want [Asha Rao]", res.Rows)
	}
}

func TestHandleQuery_EmptyBodyUsesDefaultPage(t *testing.T) {
	h, fx := newRouter(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		fx.CreateCoach(ctx, "Coach "+name)
	}

	rec := do(h, testutil.NewRequest(http.MethodPost, "/query/coaches"))
	rec.AssertStatus(t, http.StatusOK)

	var res struct {
		Rows       []models.Coach `json:"rows"`
		TotalCount int            `json:"total_count"`
	}
	rec.DecodeJSON(t, &res)
	if len(res.Rows) != 10 || res.TotalCount != 12 {
		t.Errorf("got %d rows of %d, want 10 of 12", len(res.Rows), res.TotalCount)
	}
}

func TestHandleQuery_SizeClampedToMax(t *testing.T) {
	h, fx := newRouter(t)
	ctx := context.Background()
	for i := 0; i < 101; i++ {
		fx.CreateCoach(ctx, fmt.Sprintf("Coach %03d", i))
	}

	body := map[string]any{"page": map[string]int{"index": 0, "size": 500}}
	rec := do(h, testutil.NewJSONRequest(t, http.MethodPost, "/query/coaches", body))
	rec.AssertStatus(t, http.StatusOK)

	var res struct {
		Rows      []models.Coach `json:"rows"`
		PageCount int            `json:"page_count"`
	}
	rec.DecodeJSON(t, &res)
	if len(res.Rows) != 100 || res.PageCount != 2 {
		t.Errorf("got %d rows over %d pages, want 100 over 2", len(res.Rows), res.PageCount)
	}
}

func TestHandleQuery_HugePageIsEmpty(t *testing.T) {
	h, fx := newRouter(t)
	ctx := context.Background()
	fx.CreateStudent(ctx, "Asha Rao")
	fx.CreateStudent(ctx, "Ben Ng")

	tests := []struct {
		name        string
		index, size int
	}{
		{"huge index", math.MaxInt / 4, 4},
		{"huge index and size", math.MaxInt, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{"page": map[string]int{"index": tt.index, "size": tt.size}}
			rec := do(h, testutil.NewJSONRequest(t, http.MethodPost, "/query/students", body))
			rec.AssertStatus(t, http.StatusOK)

			var res struct {
				Rows       []models.Student `json:"rows"`
				TotalCount int              `json:"total_count"`
			}
			rec.DecodeJSON(t, &res)
			if len(res.Rows) != 0 || res.TotalCount != 2 {
				t.Errorf("got %d rows of %d, want 0 of 2", len(res.Rows), res.TotalCount)
			}
		})
	}
}

func TestHandleQuery_Errors(t *testing.T) {
	h, _ := newRouter(t)
	tests := []struct {
		name   string
		target string
		body   any
		want   int
	}{
		{"unknown collection", "/query/parents", map[string]any{}, http.StatusBadRequest},
		{"negative page", "/query/demos", map[string]any{"page": map[string]int{"index": -1, "size": 10}}, http.StatusBadRequest},
		{"zero size", "/query/batches", map[string]any{"page": map[string]int{"index": 0, "size": 0}}, http.StatusBadRequest},
		{"unknown sort field", "/query/demos", map[string]any{"sort": map[string]string{"field": "shoe_size"}}, http.StatusBadRequest},
		{"unknown body field", "/query/demos", `{"limit":5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, testutil.NewJSONRequest(t, http.MethodPost, tt.target, tt.body))
			rec.AssertStatus(t, tt.want)
		})
	}
}
