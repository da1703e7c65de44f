package batchstore_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	batchstore "github.com/dalemusser/academyhub/internal/app/store/batches"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ids(n int) []primitive.ObjectID {
	out := make([]primitive.ObjectID, n)
	for i := range out {
		out[i] = primitive.NewObjectID()
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestStore_CreateDefaults(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	b, err := s.Create(context.Background(), models.NewBatch{Name: "  Chess   Juniors "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Name != "Chess Juniors" {
		t.Errorf("Name: got %q", b.Name)
	}
	if b.MaxStudents != models.DefaultMaxStudents {
		t.Errorf("MaxStudents: got %d, want %d", b.MaxStudents, models.DefaultMaxStudents)
	}
	if b.Timezone != "UTC" {
		t.Errorf("Timezone: got %q, want UTC", b.Timezone)
	}
	if b.Status != models.BatchActive {
		t.Errorf("Status: got %s, want ACTIVE", b.Status)
	}
	if b.CoachID != nil {
		t.Error("expected no coach")
	}
	if b.StudentIDs == nil || len(b.StudentIDs) != 0 {
		t.Errorf("StudentIDs: got %#v, want empty", b.StudentIDs)
	}
}

func TestStore_CreateConfiguredCapacity(t *testing.T) {
	s := batchstore.New(batchstore.Options{MaxStudents: 6})
	b, err := s.Create(context.Background(), models.NewBatch{Name: "Small group"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.MaxStudents != 6 {
		t.Errorf("MaxStudents: got %d, want 6", b.MaxStudents)
	}
}

func TestStore_CreateAtCapacityIsFull(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	b, err := s.Create(context.Background(), models.NewBatch{Name: "Pair", MaxStudents: 2, StudentIDs: ids(2)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Status != models.BatchFull {
		t.Errorf("Status: got %s, want FULL", b.Status)
	}
}

func TestStore_CreateRejects(t *testing.T) {
	dup := primitive.NewObjectID()
	tests := []struct {
		name string
		in   models.NewBatch
		kind error
	}{
		{"blank name", models.NewBatch{Name: " "}, storeerr.ErrValidation},
		{"unknown timezone", models.NewBatch{Name: "A", Timezone: "Mars/Olympus"}, storeerr.ErrValidation},
		{"negative capacity", models.NewBatch{Name: "A", MaxStudents: -1}, storeerr.ErrValidation},
		{"duplicate student", models.NewBatch{Name: "A", StudentIDs: []primitive.ObjectID{dup, dup}}, storeerr.ErrValidation},
		{"bad day", models.NewBatch{Name: "A", Schedule: models.Schedule{Days: []string{"Funday"}}}, storeerr.ErrValidation},
		{"bad start time", models.NewBatch{Name: "A", Schedule: models.Schedule{StartTime: "25:00"}}, storeerr.ErrValidation},
		{"over capacity", models.NewBatch{Name: "A", MaxStudents: 1, StudentIDs: ids(2)}, storeerr.ErrCapacityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := batchstore.New(batchstore.Options{})
			_, err := s.Create(context.Background(), tt.in)
			if !errors.Is(err, tt.kind) {
				t.Errorf("err: got %v, want %v", err, tt.kind)
			}
			if s.Count() != 0 {
				t.Errorf("Count: got %d, want 0", s.Count())
			}
		})
	}
}

func TestStore_CreateNormalizesSchedule(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	b, err := s.Create(context.Background(), models.NewBatch{
		Name:     "Weekend",
		Timezone: "Asia/Kolkata",
		Schedule: models.Schedule{Days: []string{"saturday", "SUN", "sat"}, StartTime: "9:30", DurationMinutes: 60},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	want := models.Schedule{Days: []string{"Sat", "Sun"}, StartTime: "09:30", DurationMinutes: 60}
	if !reflect.DeepEqual(b.Schedule, want) {
		t.Errorf("Schedule: got %+v, want %+v", b.Schedule, want)
	}
}

func TestStore_AddStudentRecomputesStatus(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	b, _ := s.Create(ctx, models.NewBatch{Name: "Pair", MaxStudents: 2})

	students := ids(2)
	got, err := s.AddStudent(ctx, b.ID, students[0])
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if got.Status != models.BatchActive {
		t.Errorf("after one: got %s, want ACTIVE", got.Status)
	}
	got, err = s.AddStudent(ctx, b.ID, students[1])
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if got.Status != models.BatchFull {
		t.Errorf("after two: got %s, want FULL", got.Status)
	}
}

func TestStore_AddStudentWhenFull(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	members := ids(2)
	b, _ := s.Create(ctx, models.NewBatch{Name: "Pair", MaxStudents: 2, StudentIDs: members})

	_, err := s.AddStudent(ctx, b.ID, primitive.NewObjectID())
	var cerr *storeerr.CapacityExceededError
	if !errors.As(err, &cerr) {
		t.Fatalf("err: got %v, want CapacityExceededError", err)
	}
	if cerr.Capacity != 2 || cerr.Count != 2 {
		t.Errorf("CapacityExceededError: got %d/%d", cerr.Count, cerr.Capacity)
	}

	got, _ := s.GetByID(ctx, b.ID)
	if !reflect.DeepEqual(got.StudentIDs, members) {
		t.Errorf("StudentIDs changed: got %v, want %v", got.StudentIDs, members)
	}
	if got.Status != models.BatchFull {
		t.Errorf("Status: got %s, want FULL", got.Status)
	}
}

func TestStore_AddStudentTwice(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	sid := primitive.NewObjectID()
	b, _ := s.Create(ctx, models.NewBatch{Name: "A", StudentIDs: []primitive.ObjectID{sid}})

	if _, err := s.AddStudent(ctx, b.ID, sid); !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("err: got %v, want validation", err)
	}
}

func TestStore_RemoveStudent(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	members := ids(3)
	b, _ := s.Create(ctx, models.NewBatch{Name: "Trio", MaxStudents: 3, StudentIDs: members})
	if b.Status != models.BatchFull {
		t.Fatalf("precondition: got %s, want FULL", b.Status)
	}

	got, err := s.RemoveStudent(ctx, b.ID, members[1])
	if err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}
	if want := []primitive.ObjectID{members[0], members[2]}; !reflect.DeepEqual(got.StudentIDs, want) {
		t.Errorf("StudentIDs: got %v, want %v", got.StudentIDs, want)
	}
	if got.Status != models.BatchActive {
		t.Errorf("Status: got %s, want ACTIVE", got.Status)
	}

	if _, err := s.RemoveStudent(ctx, b.ID, members[1]); !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("removing non-member: got %v, want validation", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	b, _ := s.Create(ctx, models.NewBatch{Name: "Pair", MaxStudents: 2, StudentIDs: ids(2)})

	got, from, err := s.SetStatus(ctx, b.ID, models.BatchInactive)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if from != models.BatchFull || got.Status != models.BatchInactive || !got.Inactive {
		t.Errorf("deactivate: got %s -> %s (inactive=%v)", from, got.Status, got.Inactive)
	}

	got, _, err = s.SetStatus(ctx, b.ID, models.BatchActive)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if got.Status != models.BatchFull {
		t.Errorf("activate full batch: got %s, want FULL", got.Status)
	}

	if _, _, err := s.SetStatus(ctx, b.ID, models.BatchFull); !errors.Is(err, storeerr.ErrIllegalTransition) {
		t.Errorf("request FULL: got %v, want illegal transition", err)
	}
	if _, _, err := s.SetStatus(ctx, b.ID, "ARCHIVED"); !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("request unknown: got %v, want validation", err)
	}
}

func TestStore_InactiveStillEnforcesCapacity(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	b, _ := s.Create(ctx, models.NewBatch{Name: "Pair", MaxStudents: 2, StudentIDs: ids(2)})
	if _, _, err := s.SetStatus(ctx, b.ID, models.BatchInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := s.AddStudent(ctx, b.ID, primitive.NewObjectID()); !errors.Is(err, storeerr.ErrCapacityExceeded) {
		t.Errorf("err: got %v, want capacity exceeded", err)
	}
}

func TestStore_UpdateCapacity(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	b, _ := s.Create(ctx, models.NewBatch{Name: "A", MaxStudents: 4, StudentIDs: ids(3)})

	if _, err := s.Update(ctx, b.ID, models.BatchPatch{MaxStudents: intPtr(2)}); !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("shrink below count: got %v, want validation", err)
	}
	got, err := s.Update(ctx, b.ID, models.BatchPatch{MaxStudents: intPtr(3)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.BatchFull {
		t.Errorf("Status: got %s, want FULL", got.Status)
	}
}

func TestStore_SetCoach(t *testing.T) {
	s := batchstore.New(batchstore.Options{})
	ctx := context.Background()
	b, _ := s.Create(ctx, models.NewBatch{Name: "A"})

	coach := primitive.NewObjectID()
	got, err := s.SetCoach(ctx, b.ID, &coach)
	if err != nil {
		t.Fatalf("SetCoach: %v", err)
	}
	if got.CoachID == nil || *got.CoachID != coach {
		t.Errorf("CoachID: got %v, want %s", got.CoachID, coach.Hex())
	}
	got, err = s.SetCoach(ctx, b.ID, nil)
	if err != nil {
		t.Fatalf("SetCoach(nil): %v", err)
	}
	if got.CoachID != nil {
		t.Errorf("CoachID: got %v, want nil", got.CoachID)
	}
}
