// internal/app/store/coaches/coachstore.go
package coachstore

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

const entity = "coach"

type Store struct {
	c   *memstore.Collection[models.Coach]
	now func() time.Time
}

func New(delay latency.Hook) *Store {
	idOf := func(c models.Coach) primitive.ObjectID { return c.ID }
	clone := func(c models.Coach) models.Coach { return c }
	return &Store{
		c:   memstore.New(entity, idOf, clone, delay),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Create(ctx context.Context, in models.NewCoach) (models.Coach, error) {
	const op = "create"
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Email = normalize.Email(in.Email)
	in.Status = models.CoachStatus(normalize.Status(string(in.Status)))
	if err := inputval.Struct(entity, op, in); err != nil {
		return models.Coach{}, err
	}
	if in.Status == "" {
		in.Status = models.CoachActive
	}
	if !in.Status.Valid() {
		return models.Coach{}, inputval.Field(entity, op, "status", "unknown status "+string(in.Status))
	}

	now := s.now()
	return s.c.Insert(ctx, models.Coach{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Coach, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) List(ctx context.Context) ([]models.Coach, error) {
	return s.c.All(ctx)
}

func (s *Store) Snapshot() []models.Coach { return s.c.Snapshot() }

func (s *Store) Peek(id primitive.ObjectID) (models.Coach, bool) { return s.c.Peek(id) }

func (s *Store) Count() int { return s.c.Len() }

// FirstActive returns the earliest-created ACTIVE coach. It is the default
// coach for demos booked without one.
func (s *Store) FirstActive() (models.Coach, bool) {
	for _, c := range s.c.Snapshot() {
		if c.Status == models.CoachActive {
			return c, true
		}
	}
	return models.Coach{}, false
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.CoachPatch) (models.Coach, error) {
	const op = "update"
	return s.c.Update(ctx, id, op, func(c models.Coach) (models.Coach, error) {
		var fields []storeerr.FieldError
		if p.Name != nil {
			c.Name = htmlsanitize.PlainText(normalize.Name(*p.Name))
			if c.Name == "" {
				fields = append(fields, storeerr.FieldError{Field: "name", Message: "name cannot be blank"})
			}
		}
		if p.Email != nil {
			c.Email = normalize.Email(*p.Email)
			if c.Email != "" && !inputval.IsValidEmail(c.Email) {
				fields = append(fields, storeerr.FieldError{Field: "email", Message: "email must be a valid email address"})
			}
		}
		if len(fields) > 0 {
			return c, storeerr.Invalid(entity, op, fields...)
		}
		c.UpdatedAt = s.now()
		return c, nil
	})
}

func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CoachStatus) (models.Coach, error) {
	const op = "set_status"
	if !status.Valid() {
		return models.Coach{}, inputval.Field(entity, op, "status", "unknown status "+string(status))
	}
	return s.c.Update(ctx, id, op, func(c models.Coach) (models.Coach, error) {
		c.Status = status
		c.UpdatedAt = s.now()
		return c, nil
	})
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.Delete(ctx, id)
}
