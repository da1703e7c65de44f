// Package resolver builds read-only views that replace foreign identities
// with the records they point at.
//
// A stored identity that no longer resolves is a store defect. Every
// resolver operation treats it the same way: the whole resolution fails
// with a *storeerr.DanglingReferenceError and the defect is logged at
// error level. Nothing is dropped silently.
package resolver

import (
	"context"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// The resolver reads through these; the entity stores satisfy them.
type (
	DemoReader interface {
		GetByID(ctx context.Context, id primitive.ObjectID) (models.Demo, error)
		List(ctx context.Context) ([]models.Demo, error)
	}
	BatchReader interface {
		GetByID(ctx context.Context, id primitive.ObjectID) (models.Batch, error)
		List(ctx context.Context) ([]models.Batch, error)
		Peek(id primitive.ObjectID) (models.Batch, bool)
	}
	StudentReader interface {
		GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error)
		GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Student, []primitive.ObjectID)
		Peek(id primitive.ObjectID) (models.Student, bool)
	}
	CoachReader interface {
		GetByID(ctx context.Context, id primitive.ObjectID) (models.Coach, error)
		Peek(id primitive.ObjectID) (models.Coach, bool)
	}
)

type Resolver struct {
	demos    DemoReader
	batches  BatchReader
	students StudentReader
	coaches  CoachReader
	log      *zap.Logger
}

func New(demos DemoReader, batches BatchReader, students StudentReader, coaches CoachReader, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{demos: demos, batches: batches, students: students, coaches: coaches, log: log}
}

// CoachSummary is the subset of a coach embedded in other views.
type CoachSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Status models.CoachStatus `json:"status"`
}

// BatchSummary is the subset of a batch embedded in student views.
type BatchSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Level  string             `json:"level"`
	Status models.BatchStatus `json:"status"`
}

func coachSummary(c models.Coach) CoachSummary {
	return CoachSummary{ID: c.ID, Name: c.Name, Status: c.Status}
}

func batchSummary(b models.Batch) BatchSummary {
	return BatchSummary{ID: b.ID, Name: b.Name, Level: b.Level, Status: b.Status}
}

// dangling records and returns the defect for a reference that failed to
// resolve.
func (r *Resolver) dangling(entity string, id primitive.ObjectID, field, refEntity string, refID primitive.ObjectID) error {
	err := &storeerr.DanglingReferenceError{
		Entity:    entity,
		ID:        id.Hex(),
		Field:     field,
		RefEntity: refEntity,
		RefID:     refID.Hex(),
	}
	r.log.Error("dangling reference",
		zap.String("entity", entity),
		zap.String("id", id.Hex()),
		zap.String("field", field),
		zap.String("ref_entity", refEntity),
		zap.String("ref_id", refID.Hex()),
	)
	return err
}

// CoachExists reports whether id resolves to a coach.
func (r *Resolver) CoachExists(id primitive.ObjectID) bool {
	_, ok := r.coaches.Peek(id)
	return ok
}

// BatchExists reports whether id resolves to a batch.
func (r *Resolver) BatchExists(id primitive.ObjectID) bool {
	_, ok := r.batches.Peek(id)
	return ok
}

// MissingStudents returns the identities in ids that do not resolve, in
// input order.
func (r *Resolver) MissingStudents(ids []primitive.ObjectID) []primitive.ObjectID {
	var missing []primitive.ObjectID
	for _, id := range ids {
		if _, ok := r.students.Peek(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
