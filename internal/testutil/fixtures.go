package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/academyhub/internal/app/academy"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// DemoStart is the scheduled start used by BookDemo.
var DemoStart = time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)

// Fixtures creates test records through an in-memory Service with no
// simulated latency.
type Fixtures struct {
	svc *academy.Service
	t   *testing.T
}

// NewFixtures builds a fresh Service for t.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{svc: academy.New(academy.Options{}), t: t}
}

// Service returns the underlying Service for direct calls in tests.
func (f *Fixtures) Service() *academy.Service {
	return f.svc
}

func (f *Fixtures) CreateCoach(ctx context.Context, name string) models.Coach {
	f.t.Helper()
	c, err := f.svc.CreateCoach(ctx, models.NewCoach{
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@academyhub.test",
	})
	if err != nil {
		f.t.Fatalf("CreateCoach(%q): %v", name, err)
	}
	return c
}

func (f *Fixtures) CreateStudent(ctx context.Context, name string) models.Student {
	f.t.Helper()
	st, err := f.svc.CreateStudent(ctx, models.NewStudent{Name: name, Age: 10, Level: "Beginner"})
	if err != nil {
		f.t.Fatalf("CreateStudent(%q): %v", name, err)
	}
	return st
}

// CreateBatch creates a batch with capacity max holding members, in order.
func (f *Fixtures) CreateBatch(ctx context.Context, name string, max int, members ...models.Student) models.Batch {
	f.t.Helper()
	ids := make([]primitive.ObjectID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	b, err := f.svc.CreateBatch(ctx, models.NewBatch{Name: name, MaxStudents: max, StudentIDs: ids})
	if err != nil {
		f.t.Fatalf("CreateBatch(%q): %v", name, err)
	}
	return b
}

// BookDemo books a demo at DemoStart with coach.
func (f *Fixtures) BookDemo(ctx context.Context, student string, coach primitive.ObjectID) models.Demo {
	f.t.Helper()
	d, err := f.svc.BookDemo(ctx, models.NewDemo{
		StudentName:    student,
		ParentName:     "Parent of " + student,
		ParentEmail:    "parent." + strings.ToLower(strings.ReplaceAll(student, " ", ".")) + "@example.com",
		ScheduledStart: DemoStart,
		CoachID:        &coach,
	})
	if err != nil {
		f.t.Fatalf("BookDemo(%q): %v", student, err)
	}
	return d
}
