package resolver

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BatchDetail is a batch with its coach and students embedded in place of
// their identities. Students keep the batch's join order.
type BatchDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Level       string             `json:"level"`
	Timezone    string             `json:"timezone"`
	Schedule    models.Schedule    `json:"schedule"`
	Coach       *CoachSummary      `json:"coach"`
	Students    []models.Student   `json:"students"`
	MaxStudents int                `json:"max_students"`
	Status      models.BatchStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// DemoDetail is a demo with its coach embedded.
type DemoDetail struct {
	ID             primitive.ObjectID  `json:"id"`
	StudentName    string              `json:"student_name"`
	ParentName     string              `json:"parent_name"`
	ParentEmail    string              `json:"parent_email"`
	ScheduledStart time.Time           `json:"scheduled_start"`
	ScheduledEnd   time.Time           `json:"scheduled_end"`
	Coach          CoachSummary        `json:"coach"`
	AdminID        primitive.ObjectID  `json:"admin_id"`
	MeetingLink    string              `json:"meeting_link"`
	Status         models.DemoStatus   `json:"status"`
	Outcome        *models.DemoOutcome `json:"outcome,omitempty"`
}

// StudentDetail is a student with their batch embedded, if any.
type StudentDetail struct {
	ID     primitive.ObjectID   `json:"id"`
	Name   string               `json:"name"`
	Age    int                  `json:"age"`
	Level  string               `json:"level"`
	Type   models.StudentType   `json:"type"`
	Status models.StudentStatus `json:"status"`
	Batch  *BatchSummary        `json:"batch"`
}

// CoachDetail is a coach with the batches they teach.
type CoachDetail struct {
	models.Coach
	Batches []models.Batch `json:"batches"`
}

// BatchesForCoach filters batches by coach, in creation order. An unknown
// coach is a NotFoundError.
func (r *Resolver) BatchesForCoach(ctx context.Context, coachID primitive.ObjectID) ([]models.Batch, error) {
	if _, ok := r.coaches.Peek(coachID); !ok {
		return nil, storeerr.NotFound("coach", coachID.Hex(), "list_batches")
	}
	all, err := r.batches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Batch, 0, len(all))
	for _, b := range all {
		if b.CoachID != nil && *b.CoachID == coachID {
			out = append(out, b)
		}
	}
	return out, nil
}

// DemosForCoach filters demos by coach, in booking order.
func (r *Resolver) DemosForCoach(ctx context.Context, coachID primitive.ObjectID) ([]models.Demo, error) {
	if _, ok := r.coaches.Peek(coachID); !ok {
		return nil, storeerr.NotFound("coach", coachID.Hex(), "list_demos")
	}
	all, err := r.demos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Demo, 0, len(all))
	for _, d := range all {
		if d.CoachID == coachID {
			out = append(out, d)
		}
	}
	return out, nil
}

// BatchWithStudents resolves a batch's coach and members.
func (r *Resolver) BatchWithStudents(ctx context.Context, id primitive.ObjectID) (BatchDetail, error) {
	b, err := r.batches.GetByID(ctx, id)
	if err != nil {
		return BatchDetail{}, err
	}

	var coach *CoachSummary
	if b.CoachID != nil {
		c, ok := r.coaches.Peek(*b.CoachID)
		if !ok {
			return BatchDetail{}, r.dangling("batch", b.ID, "coach_id", "coach", *b.CoachID)
		}
		cs := coachSummary(c)
		coach = &cs
	}

	students, missing := r.students.GetMany(ctx, b.StudentIDs)
	if len(missing) > 0 {
		return BatchDetail{}, r.dangling("batch", b.ID, "student_ids", "student", missing[0])
	}

	return BatchDetail{
		ID:          b.ID,
		Name:        b.Name,
		Level:       b.Level,
		Timezone:    b.Timezone,
		Schedule:    b.Schedule,
		Coach:       coach,
		Students:    students,
		MaxStudents: b.MaxStudents,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}

// DemoWithCoach resolves a demo's coach.
func (r *Resolver) DemoWithCoach(ctx context.Context, id primitive.ObjectID) (DemoDetail, error) {
	d, err := r.demos.GetByID(ctx, id)
	if err != nil {
		return DemoDetail{}, err
	}
	c, ok := r.coaches.Peek(d.CoachID)
	if !ok {
		return DemoDetail{}, r.dangling("demo", d.ID, "coach_id", "coach", d.CoachID)
	}
	return DemoDetail{
		ID:             d.ID,
		StudentName:    d.StudentName,
		ParentName:     d.ParentName,
		ParentEmail:    d.ParentEmail,
		ScheduledStart: d.ScheduledStart,
		ScheduledEnd:   d.ScheduledEnd,
		Coach:          coachSummary(c),
		AdminID:        d.AdminID,
		MeetingLink:    d.MeetingLink,
		Status:         d.Status,
		Outcome:        d.Outcome,
	}, nil
}

// StudentWithBatch resolves a student's batch.
func (r *Resolver) StudentWithBatch(ctx context.Context, id primitive.ObjectID) (StudentDetail, error) {
	s, err := r.students.GetByID(ctx, id)
	if err != nil {
		return StudentDetail{}, err
	}
	out := StudentDetail{
		ID:     s.ID,
		Name:   s.Name,
		Age:    s.Age,
		Level:  s.Level,
		Type:   s.Type,
		Status: s.Status,
	}
	if s.BatchID != nil {
		b, ok := r.batches.Peek(*s.BatchID)
		if !ok {
			return StudentDetail{}, r.dangling("student", s.ID, "batch_id", "batch", *s.BatchID)
		}
		bs := batchSummary(b)
		out.Batch = &bs
	}
	return out, nil
}

// CoachWithBatches resolves the batches a coach teaches.
func (r *Resolver) CoachWithBatches(ctx context.Context, id primitive.ObjectID) (CoachDetail, error) {
	c, err := r.coaches.GetByID(ctx, id)
	if err != nil {
		return CoachDetail{}, err
	}
	batches, err := r.BatchesForCoach(ctx, id)
	if err != nil {
		return CoachDetail{}, err
	}
	return CoachDetail{Coach: c, Batches: batches}, nil
}
