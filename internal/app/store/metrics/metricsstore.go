package metricsstore

import (
	"github.com/dalemusser/academyhub/internal/domain/models"
)

// Snapshotter is any store that can copy out its records without simulated
// latency.
type Snapshotter[T any] interface {
	Snapshot() []T
}

// Counts is the set of totals used by the dashboard stat cards. Every
// declared status appears in the per-status maps, zero or not.
type Counts struct {
	Demos           int            `json:"demos"`
	DemosByStatus   map[string]int `json:"demos_by_status"`
	Batches         int            `json:"batches"`
	BatchesByStatus map[string]int `json:"batches_by_status"`
	Students        int            `json:"students"`
	ActiveStudents  int            `json:"active_students"`
	Unassigned      int            `json:"unassigned_students"` // active students in no batch
	Coaches         int            `json:"coaches"`
	ActiveCoaches   int            `json:"active_coaches"`
	SeatsOpen       int            `json:"seats_open"` // free places across non-inactive batches
	ConversionRate  float64        `json:"conversion_rate"`
}

// FetchDashboardCounts tallies the four collections from one snapshot each.
func FetchDashboardCounts(demos Snapshotter[models.Demo], batches Snapshotter[models.Batch], students Snapshotter[models.Student], coaches Snapshotter[models.Coach]) Counts {
	out := Counts{
		DemosByStatus:   make(map[string]int, len(models.DemoStatuses)),
		BatchesByStatus: make(map[string]int, len(models.BatchStatuses)),
	}
	for _, s := range models.DemoStatuses {
		out.DemosByStatus[string(s)] = 0
	}
	for _, s := range models.BatchStatuses {
		out.BatchesByStatus[string(s)] = 0
	}

	for _, d := range demos.Snapshot() {
		out.Demos++
		out.DemosByStatus[string(d.Status)]++
	}
	if out.Demos > 0 {
		out.ConversionRate = float64(out.DemosByStatus[string(models.DemoConverted)]) / float64(out.Demos)
	}

	for _, b := range batches.Snapshot() {
		out.Batches++
		out.BatchesByStatus[string(b.Status)]++
		if b.Status != models.BatchInactive && b.MaxStudents > len(b.StudentIDs) {
			out.SeatsOpen += b.MaxStudents - len(b.StudentIDs)
		}
	}

	for _, s := range students.Snapshot() {
		out.Students++
		if s.Status == models.StudentActive {
			out.ActiveStudents++
			if s.BatchID == nil {
				out.Unassigned++
			}
		}
	}

	for _, c := range coaches.Snapshot() {
		out.Coaches++
		if c.Status == models.CoachActive {
			out.ActiveCoaches++
		}
	}
	return out
}
