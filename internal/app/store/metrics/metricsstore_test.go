package metricsstore_test

import (
	"testing"

	metricsstore "github.com/dalemusser/academyhub/internal/app/store/metrics"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type rows[T any] []T

func (r rows[T]) Snapshot() []T { return r }

func TestFetchDashboardCounts_Empty(t *testing.T) {
	counts := metricsstore.FetchDashboardCounts(rows[models.Demo]{}, rows[models.Batch]{}, rows[models.Student]{}, rows[models.Coach]{})

	if counts.Demos != 0 || counts.Batches != 0 || counts.Students != 0 || counts.Coaches != 0 {
		t.Errorf("expected zero totals, got %+v", counts)
	}
	if counts.ConversionRate != 0 {
		t.Errorf("ConversionRate: got %v, want 0", counts.ConversionRate)
	}
	if len(counts.DemosByStatus) != len(models.DemoStatuses) {
		t.Errorf("DemosByStatus: got %d keys, want %d", len(counts.DemosByStatus), len(models.DemoStatuses))
	}
	if n, ok := counts.BatchesByStatus["FULL"]; !ok || n != 0 {
		t.Errorf("BatchesByStatus[FULL]: got %d (present=%v), want 0", n, ok)
	}
}

func TestFetchDashboardCounts(t *testing.T) {
	batchID := primitive.NewObjectID()
	demos := rows[models.Demo]{
		{Status: models.DemoBooked},
		{Status: models.DemoConverted},
		{Status: models.DemoBooked},
		{Status: models.DemoCancelled},
	}
	batches := rows[models.Batch]{
		{MaxStudents: 4, StudentIDs: make([]primitive.ObjectID, 1), Status: models.BatchActive},
		{MaxStudents: 2, StudentIDs: make([]primitive.ObjectID, 2), Status: models.BatchFull},
		{MaxStudents: 5, Status: models.BatchInactive, Inactive: true},
	}
	students := rows[models.Student]{
		{Status: models.StudentActive, BatchID: &batchID},
		{Status: models.StudentActive},
		{Status: models.StudentInactive},
	}
	coaches := rows[models.Coach]{
		{Status: models.CoachActive},
		{Status: models.CoachInactive},
	}

	c := metricsstore.FetchDashboardCounts(demos, batches, students, coaches)

	if c.Demos != 4 || c.DemosByStatus["BOOKED"] != 2 {
		t.Errorf("demos: got %d total, %d booked", c.Demos, c.DemosByStatus["BOOKED"])
	}
	if c.ConversionRate != 0.25 {
		t.Errorf("ConversionRate: got %v, want 0.25", c.ConversionRate)
	}
	if c.BatchesByStatus["FULL"] != 1 || c.BatchesByStatus["INACTIVE"] != 1 {
		t.Errorf("BatchesByStatus: got %v", c.BatchesByStatus)
	}
	if c.SeatsOpen != 3 {
		t.Errorf("SeatsOpen: got %d, want 3", c.SeatsOpen)
	}
	if c.ActiveStudents != 2 || c.Unassigned != 1 {
		t.Errorf("students: got active=%d unassigned=%d", c.ActiveStudents, c.Unassigned)
	}
	if c.Coaches != 2 || c.ActiveCoaches != 1 {
		t.Errorf("coaches: got %d/%d", c.ActiveCoaches, c.Coaches)
	}
}
