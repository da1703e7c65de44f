package academy

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/store/queries/resolver"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Service) ListCoaches(ctx context.Context) (out []models.Coach, err error) {
	defer s.observe("coach", "list", time.Now(), &err)
	return s.coaches.List(ctx)
}

func (s *Service) GetCoach(ctx context.Context, id primitive.ObjectID) (c models.Coach, err error) {
	defer s.observe("coach", "get", time.Now(), &err)
	return s.coaches.GetByID(ctx, id)
}

// CoachDetail returns the coach with the batches they teach.
func (s *Service) CoachDetail(ctx context.Context, id primitive.ObjectID) (v resolver.CoachDetail, err error) {
	defer s.observe("coach", "detail", time.Now(), &err)
	return s.resolve.CoachWithBatches(ctx, id)
}

func (s *Service) CreateCoach(ctx context.Context, in models.NewCoach) (c models.Coach, err error) {
	defer s.observe("coach", "create", time.Now(), &err)
	c, err = s.coaches.Create(ctx, in)
	if err != nil {
		return models.Coach{}, err
	}
	s.audit.Admin(ctx, audit.EventCoachCreated, "coach", c.ID, map[string]string{"name": c.Name})
	return c, nil
}

func (s *Service) UpdateCoach(ctx context.Context, id primitive.ObjectID, p models.CoachPatch) (c models.Coach, err error) {
	defer s.observe("coach", "update", time.Now(), &err)
	c, err = s.coaches.Update(ctx, id, p)
	if err != nil {
		return models.Coach{}, err
	}
	s.audit.Admin(ctx, audit.EventCoachUpdated, "coach", c.ID, nil)
	return c, nil
}

// SetCoachStatus marks a coach ACTIVE or INACTIVE. An inactive coach keeps
// existing assignments but is never picked as the default for new demos.
func (s *Service) SetCoachStatus(ctx context.Context, id primitive.ObjectID, status models.CoachStatus) (c models.Coach, err error) {
	defer s.observe("coach", "set_status", time.Now(), &err)
	c, err = s.coaches.SetStatus(ctx, id, status)
	if err != nil {
		return models.Coach{}, err
	}
	s.audit.Admin(ctx, audit.EventCoachUpdated, "coach", c.ID, map[string]string{"status": string(c.Status)})
	return c, nil
}

// DeleteCoach removes a coach that no batch or demo references.
func (s *Service) DeleteCoach(ctx context.Context, id primitive.ObjectID) (err error) {
	const op = "delete"
	defer s.observe("coach", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	var fields []storeerr.FieldError
	for _, b := range s.batches.Snapshot() {
		if b.CoachID != nil && *b.CoachID == id {
			fields = append(fields, storeerr.FieldError{Field: "id", Message: "coach teaches batch " + b.ID.Hex()})
		}
	}
	for _, d := range s.demos.Snapshot() {
		if d.CoachID == id {
			fields = append(fields, storeerr.FieldError{Field: "id", Message: "coach runs demo " + d.ID.Hex()})
		}
	}
	if len(fields) > 0 {
		return storeerr.Invalid("coach", op, fields...)
	}

	if err = s.coaches.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Admin(ctx, audit.EventCoachDeleted, "coach", id, nil)
	return nil
}
