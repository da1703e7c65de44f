package academy

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/tablequery"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names accepted by Query.
const (
	Demos    = "demos"
	Batches  = "batches"
	Students = "students"
	Coaches  = "coaches"
)

var demoSchema = tablequery.NewSchema("demo",
	tablequery.Text("student_name", func(d models.Demo) string { return d.StudentName }).Search(),
	tablequery.Text("parent_name", func(d models.Demo) string { return d.ParentName }).Search(),
	tablequery.Text("parent_email", func(d models.Demo) string { return d.ParentEmail }).Search(),
	tablequery.Text("status", func(d models.Demo) models.DemoStatus { return d.Status }),
	tablequery.ID("coach_id", func(d models.Demo) primitive.ObjectID { return d.CoachID }),
	tablequery.ID("admin_id", func(d models.Demo) primitive.ObjectID { return d.AdminID }),
	tablequery.Time("scheduled_start", func(d models.Demo) time.Time { return d.ScheduledStart }),
	tablequery.Time("scheduled_end", func(d models.Demo) time.Time { return d.ScheduledEnd }),
	tablequery.Time("created_at", func(d models.Demo) time.Time { return d.CreatedAt }),
)

var batchSchema = tablequery.NewSchema("batch",
	tablequery.Text("name", func(b models.Batch) string { return b.Name }).Search(),
	tablequery.Text("level", func(b models.Batch) string { return b.Level }).Search(),
	tablequery.Text("timezone", func(b models.Batch) string { return b.Timezone }),
	tablequery.Text("status", func(b models.Batch) models.BatchStatus { return b.Status }),
	tablequery.OptionalID("coach_id", func(b models.Batch) *primitive.ObjectID { return b.CoachID }),
	tablequery.Int("max_students", func(b models.Batch) int { return b.MaxStudents }),
	tablequery.Int("student_count", func(b models.Batch) int { return len(b.StudentIDs) }),
	tablequery.Time("created_at", func(b models.Batch) time.Time { return b.CreatedAt }),
)

var studentSchema = tablequery.NewSchema("student",
	tablequery.Text("name", func(s models.Student) string { return s.Name }).Search(),
	tablequery.Text("level", func(s models.Student) string { return s.Level }).Search(),
	tablequery.Text("type", func(s models.Student) models.StudentType { return s.Type }),
	tablequery.Text("status", func(s models.Student) models.StudentStatus { return s.Status }),
	tablequery.Int("age", func(s models.Student) int { return s.Age }),
	tablequery.OptionalID("batch_id", func(s models.Student) *primitive.ObjectID { return s.BatchID }),
	tablequery.Time("created_at", func(s models.Student) time.Time { return s.CreatedAt }),
)

var coachSchema = tablequery.NewSchema("coach",
	tablequery.Text("name", func(c models.Coach) string { return c.Name }).Search(),
	tablequery.Text("email", func(c models.Coach) string { return c.Email }).Search(),
	tablequery.Text("status", func(c models.Coach) models.CoachStatus { return c.Status }),
	tablequery.Time("created_at", func(c models.Coach) time.Time { return c.CreatedAt }),
)

// Filter parameters each list endpoint reads from the query string.
var (
	DemoFilters    = []string{"status", "coach_id"}
	BatchFilters   = []string{"status", "coach_id", "level", "timezone"}
	StudentFilters = []string{"status", "type", "level", "batch_id"}
	CoachFilters   = []string{"status"}
)

func (s *Service) QueryDemos(ctx context.Context, q tablequery.Query) (res tablequery.Result[models.Demo], err error) {
	defer s.observe("demo", "query", time.Now(), &err)
	rows, err := s.demos.List(ctx)
	if err != nil {
		return res, err
	}
	return tablequery.Run(demoSchema, rows, q)
}

func (s *Service) QueryBatches(ctx context.Context, q tablequery.Query) (res tablequery.Result[models.Batch], err error) {
	defer s.observe("batch", "query", time.Now(), &err)
	rows, err := s.batches.List(ctx)
	if err != nil {
		return res, err
	}
	return tablequery.Run(batchSchema, rows, q)
}

func (s *Service) QueryStudents(ctx context.Context, q tablequery.Query) (res tablequery.Result[models.Student], err error) {
	defer s.observe("student", "query", time.Now(), &err)
	rows, err := s.students.List(ctx)
	if err != nil {
		return res, err
	}
	return tablequery.Run(studentSchema, rows, q)
}

func (s *Service) QueryCoaches(ctx context.Context, q tablequery.Query) (res tablequery.Result[models.Coach], err error) {
	defer s.observe("coach", "query", time.Now(), &err)
	rows, err := s.coaches.List(ctx)
	if err != nil {
		return res, err
	}
	return tablequery.Run(coachSchema, rows, q)
}

// Query runs q against the named collection. The result is a
// tablequery.Result of the collection's record type.
func (s *Service) Query(ctx context.Context, collection string, q tablequery.Query) (any, error) {
	switch collection {
	case Demos:
		return s.QueryDemos(ctx, q)
	case Batches:
		return s.QueryBatches(ctx, q)
	case Students:
		return s.QueryStudents(ctx, q)
	case Coaches:
		return s.QueryCoaches(ctx, q)
	}
	return nil, storeerr.Invalid("query", "query", storeerr.FieldError{
		Field:   "collection",
		Message: "unknown collection " + collection,
	})
}
