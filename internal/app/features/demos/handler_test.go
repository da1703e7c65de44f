package demos_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/academyhub/internal/app/features/demos"
	apierrors "github.com/dalemusser/academyhub/internal/app/features/errors"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"github.com/dalemusser/academyhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type listResponse struct {
	Rows       []models.Demo `json:"rows"`
	TotalCount int           `json:"total_count"`
	PageCount  int           `json:"page_count"`
}

func setup(t *testing.T) (*testutil.Fixtures, chi.Router, models.Coach) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	coach := fx.CreateCoach(context.Background(), "Ananya Rao")
	return fx, demos.Routes(demos.NewHandler(fx.Service(), 10, zap.NewNop())), coach
}

func serve(r http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestServeList_StatusTab(t *testing.T) {
	ctx := context.Background()
	fx, router, coach := setup(t)
	fx.BookDemo(ctx, "Nikhil Joshi", coach.ID)
	attended := fx.BookDemo(ctx, "Tara Menon", coach.ID)
	fx.BookDemo(ctx, "Veer Malhotra", coach.ID)
	if _, err := fx.Service().TransitionDemo(ctx, attended.ID, models.DemoAttended); err != nil {
		t.Fatalf("TransitionDemo: %v", err)
	}

	tests := []struct {
		target string
		total  int
	}{
		{"/?status=BOOKED", 2},
		{"/?status=booked", 2},
		{"/?status=all", 3},
		{"/", 3},
		{"/?q=tara", 1},
		{"/?status=BOOKED&q=tara", 0},
	}
	for _, tt := range tests {
		rec := serve(router, testutil.NewRequest("GET", tt.target))
		rec.AssertStatus(t, http.StatusOK)
		var got listResponse
		rec.DecodeJSON(t, &got)
		if got.TotalCount != tt.total {
			t.Errorf("%s: total_count got %d, want %d", tt.target, got.TotalCount, tt.total)
		}
	}
}

func TestServeList_BadSort(t *testing.T) {
	_, router, _ := setup(t)
	rec := serve(router, testutil.NewRequest("GET", "/?sort=shoe_size"))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "sort.field")
}

func TestHandleCreate(t *testing.T) {
	_, router, coach := setup(t)

	rec := serve(router, testutil.NewJSONRequest(t, "POST", "/", map[string]any{
		"student_name":    "Anika Das",
		"parent_name":     "Rahul Das",
		"parent_email":    "Rahul.Das@Example.com",
		"scheduled_start": "2026-03-02T16:00:00Z",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var d models.Demo
	rec.DecodeJSON(t, &d)
	if d.Status != models.DemoBooked || d.MeetingLink == "" {
		t.Errorf("created demo: status %s link %q", d.Status, d.MeetingLink)
	}
	if d.CoachID != coach.ID {
		t.Errorf("coach: got %s, want default %s", d.CoachID.Hex(), coach.ID.Hex())
	}
	if d.ParentEmail != "rahul.das@example.com" {
		t.Errorf("parent_email: got %q", d.ParentEmail)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	_, router, _ := setup(t)

	rec := serve(router, testutil.NewJSONRequest(t, "POST", "/", map[string]any{
		"student_name":    "Anika Das",
		"parent_name":     "Rahul Das",
		"parent_email":    "not-an-email",
		"scheduled_start": "2026-03-02T16:00:00Z",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	var body apierrors.Body
	rec.DecodeJSON(t, &body)
	if body.Fields["parent_email"] == "" {
		t.Errorf("expected parent_email field error, got %+v", body)
	}

	rec = serve(router, testutil.NewJSONRequest(t, "POST", "/", `{"student_name": 7}`))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeDemo_Errors(t *testing.T) {
	_, router, _ := setup(t)

	serve(router, testutil.NewRequest("GET", "/nope")).AssertStatus(t, http.StatusBadRequest)
	serve(router, testutil.NewRequest("GET", "/"+primitive.NewObjectID().Hex())).AssertStatus(t, http.StatusNotFound)
}

func TestLifecycleEndpoints(t *testing.T) {
	ctx := context.Background()
	fx, router, coach := setup(t)
	d := fx.BookDemo(ctx, "Reyansh Kumar", coach.ID)
	base := "/" + d.ID.Hex()

	rec := serve(router, testutil.NewJSONRequest(t, "POST", base+"/status", map[string]string{"status": "CONVERTED"}))
	rec.AssertStatus(t, http.StatusConflict)
	var body apierrors.Body
	rec.DecodeJSON(t, &body)
	if body.From != "BOOKED" || body.To != "CONVERTED" {
		t.Errorf("conflict detail: got %+v", body)
	}

	rec = serve(router, testutil.NewJSONRequest(t, "POST", base+"/status", map[string]string{"status": "ATTENDED"}))
	rec.AssertStatus(t, http.StatusOK)

	rec = serve(router, testutil.NewJSONRequest(t, "POST", base+"/outcome", map[string]any{
		"status": "PAYMENT_PENDING",
		"plan":   "Quarterly",
		"extra":  map[string]string{"payment_ref": "INV-204"},
	}))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Demo
	rec.DecodeJSON(t, &got)
	if got.Status != models.DemoPaymentPending || got.Outcome == nil || got.Outcome.Plan != "Quarterly" {
		t.Errorf("after outcome: status %s outcome %+v", got.Status, got.Outcome)
	}

	rec = serve(router, testutil.NewRequest("GET", base+"/detail"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ananya Rao")
}

func TestHandleUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	fx, router, coach := setup(t)
	d := fx.BookDemo(ctx, "Myra Bose", coach.ID)
	base := "/" + d.ID.Hex()

	rec := serve(router, testutil.NewJSONRequest(t, "PATCH", base, map[string]string{"parent_name": "Arindam Bose"}))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Demo
	rec.DecodeJSON(t, &got)
	if got.ParentName != "Arindam Bose" || got.StudentName != "Myra Bose" {
		t.Errorf("shallow merge: got %+v", got)
	}

	serve(router, testutil.NewRequest("DELETE", base)).AssertStatus(t, http.StatusNoContent)
	serve(router, testutil.NewRequest("GET", base)).AssertStatus(t, http.StatusNotFound)
}
