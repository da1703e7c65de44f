// internal/app/store/students/studentstore.go
package studentstore

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/memstore"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/academyhub/internal/app/system/inputval"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const entity = "student"

type Store struct {
	c   *memstore.Collection[models.Student]
	now func() time.Time
}

func New(delay latency.Hook) *Store {
	idOf := func(s models.Student) primitive.ObjectID { return s.ID }
	return &Store{
		c:   memstore.New(entity, idOf, models.Student.Clone, delay),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create enrolls a student. Type defaults to INDIVIDUAL and status to
// ACTIVE. Batch membership is assigned separately.
func (s *Store) Create(ctx context.Context, in models.NewStudent) (models.Student, error) {
	const op = "create"
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Level = htmlsanitize.PlainText(normalize.Label(in.Level))
	in.Type = models.StudentType(normalize.Status(string(in.Type)))
	in.Status = models.StudentStatus(normalize.Status(string(in.Status)))
	if err := inputval.Struct(entity, op, in); err != nil {
		return models.Student{}, err
	}
	if in.Type == "" {
		in.Type = models.StudentIndividual
	}
	if in.Status == "" {
		in.Status = models.StudentActive
	}
	var fields []storeerr.FieldError
	if !in.Type.Valid() {
		fields = append(fields, storeerr.FieldError{Field: "type", Message: "unknown type " + string(in.Type)})
	}
	if !in.Status.Valid() {
		fields = append(fields, storeerr.FieldError{Field: "status", Message: "unknown status " + string(in.Status)})
	}
	if len(fields) > 0 {
		return models.Student{}, storeerr.Invalid(entity, op, fields...)
	}

	now := s.now()
	return s.c.Insert(ctx, models.Student{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Age:       in.Age,
		Level:     in.Level,
		Type:      in.Type,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	return s.c.Get(ctx, id)
}

// GetMany resolves ids in one round trip; unresolved ids come back in missing.
func (s *Store) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Student, []primitive.ObjectID) {
	return s.c.GetMany(ctx, ids)
}

func (s *Store) List(ctx context.Context) ([]models.Student, error) {
	return s.c.All(ctx)
}

func (s *Store) Snapshot() []models.Student { return s.c.Snapshot() }

func (s *Store) Peek(id primitive.ObjectID) (models.Student, bool) { return s.c.Peek(id) }

func (s *Store) Count() int { return s.c.Len() }

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.StudentPatch) (models.Student, error) {
	const op = "update"
	return s.c.Update(ctx, id, op, func(st models.Student) (models.Student, error) {
		var fields []storeerr.FieldError
		if p.Name != nil {
			st.Name = htmlsanitize.PlainText(normalize.Name(*p.Name))
			if st.Name == "" {
				fields = append(fields, storeerr.FieldError{Field: "name", Message: "name cannot be blank"})
			}
		}
		if p.Age != nil {
			if *p.Age != 0 && (*p.Age < 3 || *p.Age > 120) {
				fields = append(fields, storeerr.FieldError{Field: "age", Message: "age must be between 3 and 120"})
			}
			st.Age = *p.Age
		}
		if p.Level != nil {
			st.Level = htmlsanitize.PlainText(normalize.Label(*p.Level))
		}
		if p.Type != nil {
			st.Type = models.StudentType(normalize.Status(string(*p.Type)))
			if !st.Type.Valid() {
				fields = append(fields, storeerr.FieldError{Field: "type", Message: "unknown type " + string(st.Type)})
			}
		}
		if len(fields) > 0 {
			return st, storeerr.Invalid(entity, op, fields...)
		}
		st.UpdatedAt = s.now()
		return st, nil
	})
}

// SetStatus switches a student between ACTIVE and INACTIVE.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.StudentStatus) (models.Student, error) {
	const op = "set_status"
	if !status.Valid() {
		return models.Student{}, inputval.Field(entity, op, "status", "unknown status "+string(status))
	}
	return s.c.Update(ctx, id, op, func(st models.Student) (models.Student, error) {
		st.Status = status
		st.UpdatedAt = s.now()
		return st, nil
	})
}

// SetBatch records the student's batch, or clears it when batchID is nil.
// Only batch membership operations call it.
func (s *Store) SetBatch(ctx context.Context, id primitive.ObjectID, batchID *primitive.ObjectID) (models.Student, error) {
	return s.c.Update(ctx, id, "set_batch", func(st models.Student) (models.Student, error) {
		if batchID != nil {
			b := *batchID
			st.BatchID = &b
		} else {
			st.BatchID = nil
		}
		st.UpdatedAt = s.now()
		return st, nil
	})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.Delete(ctx, id)
}
