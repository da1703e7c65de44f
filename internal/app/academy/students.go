package academy

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/store/queries/resolver"
	"github.com/dalemusser/academyhub/internal/app/system/inputval"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Service) ListStudents(ctx context.Context) (out []models.Student, err error) {
	defer s.observe("student", "list", time.Now(), &err)
	return s.students.List(ctx)
}

func (s *Service) GetStudent(ctx context.Context, id primitive.ObjectID) (st models.Student, err error) {
	defer s.observe("student", "get", time.Now(), &err)
	return s.students.GetByID(ctx, id)
}

// StudentDetail returns the student with their batch embedded.
func (s *Service) StudentDetail(ctx context.Context, id primitive.ObjectID) (v resolver.StudentDetail, err error) {
	defer s.observe("student", "detail", time.Now(), &err)
	return s.resolve.StudentWithBatch(ctx, id)
}

// CreateStudent enrolls a student outside any batch; use AddStudent to
// place them.
func (s *Service) CreateStudent(ctx context.Context, in models.NewStudent) (st models.Student, err error) {
	defer s.observe("student", "create", time.Now(), &err)
	st, err = s.students.Create(ctx, in)
	if err != nil {
		return models.Student{}, err
	}
	s.audit.Admin(ctx, audit.EventStudentCreated, "student", st.ID, map[string]string{"type": string(st.Type)})
	return st, nil
}

func (s *Service) UpdateStudent(ctx context.Context, id primitive.ObjectID, p models.StudentPatch) (st models.Student, err error) {
	defer s.observe("student", "update", time.Now(), &err)
	st, err = s.students.Update(ctx, id, p)
	if err != nil {
		return models.Student{}, err
	}
	s.audit.Admin(ctx, audit.EventStudentUpdated, "student", st.ID, nil)
	return st, nil
}

// SetStudentStatus marks a student ACTIVE or INACTIVE. Batch membership is
// not touched.
func (s *Service) SetStudentStatus(ctx context.Context, id primitive.ObjectID, status models.StudentStatus) (st models.Student, err error) {
	defer s.observe("student", "set_status", time.Now(), &err)
	st, err = s.students.SetStatus(ctx, id, status)
	if err != nil {
		return models.Student{}, err
	}
	s.audit.Admin(ctx, audit.EventStudentUpdated, "student", st.ID, map[string]string{"status": string(st.Status)})
	return st, nil
}

// DeleteStudent removes a student who is in no batch. Members must be
// removed from their batch first.
func (s *Service) DeleteStudent(ctx context.Context, id primitive.ObjectID) (err error) {
	const op = "delete"
	defer s.observe("student", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	if st, ok := s.students.Peek(id); ok && st.BatchID != nil {
		return inputval.Field("student", op, "id", "student is a member of batch "+st.BatchID.Hex())
	}
	if err = s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Admin(ctx, audit.EventStudentDeleted, "student", id, nil)
	return nil
}
