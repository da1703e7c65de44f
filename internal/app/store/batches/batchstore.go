// internal/app/store/batches/batchstore.go
package batchstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/memstore"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/academyhub/internal/app/system/inputval"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"github.com/dalemusser/academyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/app/system/timezones"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const entity = "batch"

type Options struct {
	MaxStudents int // capacity when a batch is created without one
	Delay       latency.Hook
	Now         func() time.Time
}

type Store struct {
	c    *memstore.Collection[models.Batch]
	opts Options
}

func New(opts Options) *Store {
	if opts.MaxStudents <= 0 {
		opts.MaxStudents = models.DefaultMaxStudents
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	idOf := func(b models.Batch) primitive.ObjectID { return b.ID }
	return &Store{
		c:    memstore.New(entity, idOf, models.Batch.Clone, opts.Delay),
		opts: opts,
	}
}

// Create stores a new batch. Referenced coach and students must already be
// checked by the caller; this only enforces the batch's own invariants.
func (s *Store) Create(ctx context.Context, in models.NewBatch) (models.Batch, error) {
	const op = "create"
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Level = htmlsanitize.PlainText(normalize.Label(in.Level))
	in.Timezone = strings.TrimSpace(in.Timezone)
	if err := inputval.Struct(entity, op, in); err != nil {
		return models.Batch{}, err
	}

	if in.Timezone == "" {
		in.Timezone = timezones.Default
	}
	sched, fields := checkSchedule(in.Schedule)
	if !timezones.Valid(in.Timezone) {
		fields = append(fields, storeerr.FieldError{Field: "timezone", Message: "unknown timezone " + in.Timezone})
	}
	if in.MaxStudents == 0 {
		in.MaxStudents = s.opts.MaxStudents
	}
	members, dupFields := uniqueIDs(in.StudentIDs)
	fields = append(fields, dupFields...)
	if len(fields) > 0 {
		return models.Batch{}, storeerr.Invalid(entity, op, fields...)
	}

	id := primitive.NewObjectID()
	if len(members) > in.MaxStudents {
		return models.Batch{}, &storeerr.CapacityExceededError{
			Entity: entity, ID: id.Hex(), Capacity: in.MaxStudents, Count: len(members),
		}
	}

	now := s.opts.Now()
	b := models.Batch{
		ID:          id,
		Name:        in.Name,
		Level:       in.Level,
		Timezone:    in.Timezone,
		Schedule:    sched,
		CoachID:     in.CoachID,
		StudentIDs:  members,
		MaxStudents: in.MaxStudents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.c.Insert(ctx, lifecycle.Recompute(b))
}

func uniqueIDs(ids []primitive.ObjectID) ([]primitive.ObjectID, []storeerr.FieldError) {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	var fields []storeerr.FieldError
	for _, id := range ids {
		if id.IsZero() {
			fields = append(fields, storeerr.FieldError{Field: "student_ids", Message: "student id cannot be empty"})
			continue
		}
		if _, dup := seen[id]; dup {
			fields = append(fields, storeerr.FieldError{Field: "student_ids", Message: "student " + id.Hex() + " listed twice"})
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, fields
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Batch, error) {
	return s.c.Get(ctx, id)
}

// List returns every batch in creation order.
func (s *Store) List(ctx context.Context) ([]models.Batch, error) {
	return s.c.All(ctx)
}

func (s *Store) Snapshot() []models.Batch { return s.c.Snapshot() }

func (s *Store) Peek(id primitive.ObjectID) (models.Batch, bool) { return s.c.Peek(id) }

func (s *Store) Count() int { return s.c.Len() }

// Update merges non-nil patch fields. Capacity may not drop below the
// current membership.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.BatchPatch) (models.Batch, error) {
	const op = "update"
	return s.c.Update(ctx, id, op, func(b models.Batch) (models.Batch, error) {
		var fields []storeerr.FieldError
		if p.Name != nil {
			b.Name = htmlsanitize.PlainText(normalize.Name(*p.Name))
			if b.Name == "" {
				fields = append(fields, storeerr.FieldError{Field: "name", Message: "name cannot be blank"})
			}
		}
		if p.Level != nil {
			b.Level = htmlsanitize.PlainText(normalize.Label(*p.Level))
		}
		if p.Timezone != nil {
			b.Timezone = strings.TrimSpace(*p.Timezone)
			if !timezones.Valid(b.Timezone) {
				fields = append(fields, storeerr.FieldError{Field: "timezone", Message: "unknown timezone " + b.Timezone})
			}
		}
		if p.Schedule != nil {
			sched, schedFields := checkSchedule(*p.Schedule)
			b.Schedule = sched
			fields = append(fields, schedFields...)
		}
		if p.MaxStudents != nil {
			switch n := *p.MaxStudents; {
			case n <= 0:
				fields = append(fields, storeerr.FieldError{Field: "max_students", Message: "max_students must be positive"})
			case n < len(b.StudentIDs):
				fields = append(fields, storeerr.FieldError{Field: "max_students", Message: "max_students is below the current number of students"})
			default:
				b.MaxStudents = n
			}
		}
		if len(fields) > 0 {
			return b, storeerr.Invalid(entity, op, fields...)
		}
		b.UpdatedAt = s.opts.Now()
		return lifecycle.Recompute(b), nil
	})
}

// AddStudent admits studentID. A full batch rejects it with
// CapacityExceededError and is left unchanged.
func (s *Store) AddStudent(ctx context.Context, id, studentID primitive.ObjectID) (models.Batch, error) {
	return s.c.Update(ctx, id, "add_student", func(b models.Batch) (models.Batch, error) {
		if err := lifecycle.CheckAdmission(b, studentID.Hex(), b.HasStudent(studentID)); err != nil {
			return b, err
		}
		b.StudentIDs = append(b.StudentIDs, studentID)
		b.UpdatedAt = s.opts.Now()
		return lifecycle.Recompute(b), nil
	})
}

// RemoveStudent drops studentID, keeping the join order of the rest.
func (s *Store) RemoveStudent(ctx context.Context, id, studentID primitive.ObjectID) (models.Batch, error) {
	const op = "remove_student"
	return s.c.Update(ctx, id, op, func(b models.Batch) (models.Batch, error) {
		kept := b.StudentIDs[:0]
		for _, sid := range b.StudentIDs {
			if sid != studentID {
				kept = append(kept, sid)
			}
		}
		if len(kept) == len(b.StudentIDs) {
			return b, inputval.Field(entity, op, "student_id", "student "+studentID.Hex()+" is not in this batch")
		}
		b.StudentIDs = kept
		b.UpdatedAt = s.opts.Now()
		return lifecycle.Recompute(b), nil
	})
}

// SetCoach assigns coachID, or unassigns when coachID is nil.
func (s *Store) SetCoach(ctx context.Context, id primitive.ObjectID, coachID *primitive.ObjectID) (models.Batch, error) {
	return s.c.Update(ctx, id, "set_coach", func(b models.Batch) (models.Batch, error) {
		if coachID != nil {
			c := *coachID
			b.CoachID = &c
		} else {
			b.CoachID = nil
		}
		b.UpdatedAt = s.opts.Now()
		return b, nil
	})
}

// SetStatus applies an administrative status request (ACTIVE or INACTIVE)
// and returns the batch with the status it had before. Activating a batch
// at capacity yields FULL.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, to models.BatchStatus) (models.Batch, models.BatchStatus, error) {
	var from models.BatchStatus
	b, err := s.c.Update(ctx, id, "transition", func(b models.Batch) (models.Batch, error) {
		from = b.Status
		if err := lifecycle.CheckBatchTarget(id.Hex(), b.Status, to); err != nil {
			return b, err
		}
		b.Inactive = to == models.BatchInactive
		b.UpdatedAt = s.opts.Now()
		return lifecycle.Recompute(b), nil
	})
	return b, from, err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.Delete(ctx, id)
}
