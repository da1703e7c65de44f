package academy

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Seed loads a small sample academy: coaches, students, two batches and a
// handful of demos spread across the lifecycle. It does nothing when any
// coach already exists, so it is safe to call on every start.
func (s *Service) Seed(ctx context.Context) error {
	if s.coaches.Count() > 0 {
		s.log.Info("seed skipped, data already present")
		return nil
	}

	var coaches []models.Coach
	for _, in := range []models.NewCoach{
		{Name: "Ananya Rao", Email: "ananya.rao@academyhub.app"},
		{Name: "Vikram Iyer", Email: "vikram.iyer@academyhub.app"},
		{Name: "Meera Kapoor", Email: "meera.kapoor@academyhub.app"},
	} {
		c, err := s.CreateCoach(ctx, in)
		if err != nil {
			return fmt.Errorf("seed coach %q: %w", in.Name, err)
		}
		coaches = append(coaches, c)
	}

	var students []models.Student
	for _, in := range []models.NewStudent{
		{Name: "Aarav Sharma", Age: 9, Level: "Beginner", Type: models.StudentGroup},
		{Name: "Diya Patel", Age: 11, Level: "Intermediate", Type: models.StudentGroup},
		{Name: "Kabir Singh", Age: 8, Level: "Beginner", Type: models.StudentGroup},
		{Name: "Ishita Nair", Age: 12, Level: "Intermediate", Type: models.StudentGroup},
		{Name: "Rohan Mehta", Age: 14, Level: "Advanced", Type: models.StudentIndividual},
		{Name: "Saanvi Gupta", Age: 10, Level: "Beginner", Type: models.StudentGroup},
		{Name: "Arjun Reddy", Age: 13, Level: "Advanced", Type: models.StudentIndividual, Status: models.StudentInactive},
	} {
		st, err := s.CreateStudent(ctx, in)
		if err != nil {
			return fmt.Errorf("seed student %q: %w", in.Name, err)
		}
		students = append(students, st)
	}

	weekday := models.Schedule{Days: []string{"Mon", "Wed", "Fri"}, StartTime: "17:00", DurationMinutes: 60}
	weekend := models.Schedule{Days: []string{"Sat", "Sun"}, StartTime: "10:30", DurationMinutes: 90}
	for _, in := range []models.NewBatch{
		{
			Name:        "Beginner Evening",
			Level:       "Beginner",
			Timezone:    "Asia/Kolkata",
			Schedule:    weekday,
			CoachID:     idPtr(coaches[0].ID),
			StudentIDs:  []primitive.ObjectID{students[0].ID, students[2].ID, students[5].ID},
			MaxStudents: 3,
		},
		{
			Name:        "Intermediate Weekend",
			Level:       "Intermediate",
			Timezone:    "Asia/Kolkata",
			Schedule:    weekend,
			CoachID:     idPtr(coaches[1].ID),
			StudentIDs:  []primitive.ObjectID{students[1].ID, students[3].ID},
			MaxStudents: 6,
		},
	} {
		if _, err := s.CreateBatch(ctx, in); err != nil {
			return fmt.Errorf("seed batch %q: %w", in.Name, err)
		}
	}

	start := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	demos := []struct {
		in   models.NewDemo
		path []models.DemoStatus
	}{
		{models.NewDemo{StudentName: "Nikhil Joshi", ParentName: "Priya Joshi", ParentEmail: "priya.joshi@example.com"}, nil},
		{models.NewDemo{StudentName: "Tara Menon", ParentName: "Suresh Menon", ParentEmail: "suresh.menon@example.com"},
			[]models.DemoStatus{models.DemoAttended}},
		{models.NewDemo{StudentName: "Veer Malhotra", ParentName: "Kavita Malhotra", ParentEmail: "kavita.m@example.com"},
			[]models.DemoStatus{models.DemoAttended, models.DemoPaymentPending}},
		{models.NewDemo{StudentName: "Anika Das", ParentName: "Rahul Das", ParentEmail: "rahul.das@example.com"},
			[]models.DemoStatus{models.DemoAttended, models.DemoPaymentPending, models.DemoConverted}},
		{models.NewDemo{StudentName: "Reyansh Kumar", ParentName: "Neha Kumar", ParentEmail: "neha.kumar@example.com"}, nil},
		{models.NewDemo{StudentName: "Myra Bose", ParentName: "Arindam Bose", ParentEmail: "arindam.bose@example.com"},
			[]models.DemoStatus{models.DemoCancelled}},
	}
	for i, d := range demos {
		d.in.ScheduledStart = start.Add(time.Duration(i) * 3 * time.Hour)
		d.in.CoachID = idPtr(coaches[i%len(coaches)].ID)
		booked, err := s.BookDemo(ctx, d.in)
		if err != nil {
			return fmt.Errorf("seed demo %q: %w", d.in.StudentName, err)
		}
		for _, to := range d.path {
			if _, err := s.TransitionDemo(ctx, booked.ID, to); err != nil {
				return fmt.Errorf("seed demo %q to %s: %w", d.in.StudentName, to, err)
			}
		}
	}

	c := s.Counts()
	s.log.Info("seeded sample academy",
		zap.Int("coaches", c.Coaches),
		zap.Int("students", c.Students),
		zap.Int("batches", c.Batches),
		zap.Int("demos", c.Demos))
	return nil
}
