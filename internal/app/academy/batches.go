package academy

import (
	"context"
	"strconv"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/store/queries/resolver"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (s *Service) ListBatches(ctx context.Context) (out []models.Batch, err error) {
	defer s.observe("batch", "list", time.Now(), &err)
	return s.batches.List(ctx)
}

func (s *Service) GetBatch(ctx context.Context, id primitive.ObjectID) (b models.Batch, err error) {
	defer s.observe("batch", "get", time.Now(), &err)
	return s.batches.GetByID(ctx, id)
}

// BatchDetail returns the batch with its coach and students embedded.
func (s *Service) BatchDetail(ctx context.Context, id primitive.ObjectID) (v resolver.BatchDetail, err error) {
	defer s.observe("batch", "detail", time.Now(), &err)
	return s.resolve.BatchWithStudents(ctx, id)
}

// BatchesForCoach lists the batches taught by one coach.
func (s *Service) BatchesForCoach(ctx context.Context, coachID primitive.ObjectID) (out []models.Batch, err error) {
	defer s.observe("batch", "list_for_coach", time.Now(), &err)
	return s.resolve.BatchesForCoach(ctx, coachID)
}

// CreateBatch stores a batch and points each initial member at it. Every
// referenced coach and student must exist, and no initial member may
// already belong to another batch.
func (s *Service) CreateBatch(ctx context.Context, in models.NewBatch) (b models.Batch, err error) {
	const op = "create"
	defer s.observe("batch", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	var fields []storeerr.FieldError
	if in.CoachID != nil && !s.resolve.CoachExists(*in.CoachID) {
		fields = append(fields, storeerr.FieldError{Field: "coach_id", Message: "coach " + in.CoachID.Hex() + " does not exist"})
	}
	for _, id := range s.resolve.MissingStudents(in.StudentIDs) {
		fields = append(fields, storeerr.FieldError{Field: "student_ids", Message: "student " + id.Hex() + " does not exist"})
	}
	for _, id := range in.StudentIDs {
		if st, ok := s.students.Peek(id); ok && st.BatchID != nil {
			fields = append(fields, storeerr.FieldError{Field: "student_ids", Message: "student " + id.Hex() + " is already in batch " + st.BatchID.Hex()})
		}
	}
	if len(fields) > 0 {
		return models.Batch{}, storeerr.Invalid("batch", op, fields...)
	}

	b, err = s.batches.Create(ctx, in)
	if err != nil {
		return models.Batch{}, err
	}
	for _, sid := range b.StudentIDs {
		if _, err := s.students.SetBatch(ctx, sid, idPtr(b.ID)); err != nil {
			s.log.Error("failed to link student to new batch",
				zap.String("batch_id", b.ID.Hex()),
				zap.String("student_id", sid.Hex()),
				zap.Error(err))
		}
	}
	s.audit.Admin(ctx, audit.EventBatchCreated, "batch", b.ID, map[string]string{
		"name":     b.Name,
		"students": strconv.Itoa(len(b.StudentIDs)),
	})
	return b, nil
}

// UpdateBatch applies a shallow patch. Lowering capacity below the current
// member count is a ValidationError.
func (s *Service) UpdateBatch(ctx context.Context, id primitive.ObjectID, p models.BatchPatch) (b models.Batch, err error) {
	defer s.observe("batch", "update", time.Now(), &err)

	before, _ := s.batches.Peek(id)
	b, err = s.batches.Update(ctx, id, p)
	if err != nil {
		return models.Batch{}, err
	}
	s.audit.Admin(ctx, audit.EventBatchUpdated, "batch", b.ID, nil)
	s.auditDerivedStatus(ctx, before, b)
	return b, nil
}

// AddStudent admits a student. A student belongs to at most one batch; a
// full batch fails with CapacityExceededError and nothing changes.
func (s *Service) AddStudent(ctx context.Context, batchID, studentID primitive.ObjectID) (b models.Batch, err error) {
	const op = "add_student"
	defer s.observe("batch", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	st, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return models.Batch{}, err
	}
	if st.BatchID != nil && *st.BatchID != batchID {
		return models.Batch{}, storeerr.Invalid("batch", op, storeerr.FieldError{
			Field:   "student_id",
			Message: "student " + studentID.Hex() + " is already in batch " + st.BatchID.Hex(),
		})
	}

	before, _ := s.batches.Peek(batchID)
	b, err = s.batches.AddStudent(ctx, batchID, studentID)
	if err != nil {
		return models.Batch{}, err
	}
	if _, err = s.students.SetBatch(ctx, studentID, idPtr(batchID)); err != nil {
		if _, rbErr := s.batches.RemoveStudent(ctx, batchID, studentID); rbErr != nil {
			s.log.Error("failed to roll back batch membership",
				zap.String("batch_id", batchID.Hex()),
				zap.String("student_id", studentID.Hex()),
				zap.Error(rbErr))
		}
		return models.Batch{}, err
	}

	s.audit.Admin(ctx, audit.EventStudentAddedToBatch, "batch", b.ID, map[string]string{"student_id": studentID.Hex()})
	s.auditDerivedStatus(ctx, before, b)
	return b, nil
}

// RemoveStudent drops a member and clears the student's batch reference.
func (s *Service) RemoveStudent(ctx context.Context, batchID, studentID primitive.ObjectID) (b models.Batch, err error) {
	defer s.observe("batch", "remove_student", time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	before, _ := s.batches.Peek(batchID)
	b, err = s.batches.RemoveStudent(ctx, batchID, studentID)
	if err != nil {
		return models.Batch{}, err
	}
	if st, ok := s.students.Peek(studentID); ok && st.BatchID != nil && *st.BatchID == batchID {
		if _, err := s.students.SetBatch(ctx, studentID, nil); err != nil {
			s.log.Error("failed to clear student batch",
				zap.String("batch_id", batchID.Hex()),
				zap.String("student_id", studentID.Hex()),
				zap.Error(err))
		}
	}

	s.audit.Admin(ctx, audit.EventStudentRemovedFromBatch, "batch", b.ID, map[string]string{"student_id": studentID.Hex()})
	s.auditDerivedStatus(ctx, before, b)
	return b, nil
}

// AssignCoach sets the batch's coach; a nil coachID unassigns.
func (s *Service) AssignCoach(ctx context.Context, batchID primitive.ObjectID, coachID *primitive.ObjectID) (b models.Batch, err error) {
	const op = "set_coach"
	defer s.observe("batch", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	if coachID != nil && !s.resolve.CoachExists(*coachID) {
		return models.Batch{}, storeerr.Invalid("batch", op, storeerr.FieldError{
			Field:   "coach_id",
			Message: "coach " + coachID.Hex() + " does not exist",
		})
	}
	b, err = s.batches.SetCoach(ctx, batchID, coachID)
	if err != nil {
		return models.Batch{}, err
	}
	details := map[string]string{"coach_id": ""}
	if coachID != nil {
		details["coach_id"] = coachID.Hex()
	}
	s.audit.Admin(ctx, audit.EventCoachAssignedToBatch, "batch", b.ID, details)
	return b, nil
}

// TransitionBatch applies an administrative status request. Only ACTIVE and
// INACTIVE can be requested; an activated batch at capacity comes back FULL.
func (s *Service) TransitionBatch(ctx context.Context, id primitive.ObjectID, to models.BatchStatus) (b models.Batch, err error) {
	defer s.observe("batch", "transition", time.Now(), &err)

	b, from, err := s.batches.SetStatus(ctx, id, to)
	if err != nil {
		s.auditRejected(ctx, audit.EventBatchStatusChanged, "batch", id, err)
		return models.Batch{}, err
	}
	if from != b.Status {
		s.audit.Transition(ctx, audit.EventBatchStatusChanged, "batch", b.ID, string(from), string(b.Status), map[string]string{"requested": string(to)})
	}
	return b, nil
}

func (s *Service) ActivateBatch(ctx context.Context, id primitive.ObjectID) (models.Batch, error) {
	return s.TransitionBatch(ctx, id, models.BatchActive)
}

func (s *Service) DeactivateBatch(ctx context.Context, id primitive.ObjectID) (models.Batch, error) {
	return s.TransitionBatch(ctx, id, models.BatchInactive)
}

// DeleteBatch removes the batch and releases its members.
func (s *Service) DeleteBatch(ctx context.Context, id primitive.ObjectID) (err error) {
	defer s.observe("batch", "delete", time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	b, ok := s.batches.Peek(id)
	if err = s.batches.Delete(ctx, id); err != nil {
		return err
	}
	if ok {
		for _, sid := range b.StudentIDs {
			if _, err := s.students.SetBatch(ctx, sid, nil); err != nil {
				s.log.Warn("member missing while releasing deleted batch",
					zap.String("batch_id", id.Hex()),
					zap.String("student_id", sid.Hex()),
					zap.Error(err))
			}
		}
	}
	s.audit.Admin(ctx, audit.EventBatchDeleted, "batch", id, map[string]string{"released": strconv.Itoa(len(b.StudentIDs))})
	return nil
}

// auditDerivedStatus records a status change caused by membership or
// capacity edits.
func (s *Service) auditDerivedStatus(ctx context.Context, before, after models.Batch) {
	if before.Status == "" || before.Status == after.Status {
		return
	}
	s.audit.Transition(ctx, audit.EventBatchStatusChanged, "batch", after.ID, string(before.Status), string(after.Status), map[string]string{"derived": "true"})
}
