package academy

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/store/queries/resolver"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/inputval"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Service) ListDemos(ctx context.Context) (out []models.Demo, err error) {
	defer s.observe("demo", "list", time.Now(), &err)
	return s.demos.List(ctx)
}

func (s *Service) GetDemo(ctx context.Context, id primitive.ObjectID) (d models.Demo, err error) {
	defer s.observe("demo", "get", time.Now(), &err)
	return s.demos.GetByID(ctx, id)
}

// DemoDetail returns the demo with its coach embedded.
func (s *Service) DemoDetail(ctx context.Context, id primitive.ObjectID) (v resolver.DemoDetail, err error) {
	defer s.observe("demo", "detail", time.Now(), &err)
	return s.resolve.DemoWithCoach(ctx, id)
}

// DemosForCoach lists the demos run by one coach, in booking order.
func (s *Service) DemosForCoach(ctx context.Context, coachID primitive.ObjectID) (out []models.Demo, err error) {
	defer s.observe("demo", "list_for_coach", time.Now(), &err)
	return s.resolve.DemosForCoach(ctx, coachID)
}

// BookDemo creates a demo. Without a coach the first active coach takes it;
// without an admin the service default is used.
func (s *Service) BookDemo(ctx context.Context, in models.NewDemo) (d models.Demo, err error) {
	const op = "create"
	defer s.observe("demo", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	if in.CoachID == nil {
		c, ok := s.coaches.FirstActive()
		if !ok {
			return models.Demo{}, inputval.Field("demo", op, "coach_id", "no active coach is available")
		}
		in.CoachID = idPtr(c.ID)
	} else if !s.resolve.CoachExists(*in.CoachID) {
		return models.Demo{}, inputval.Field("demo", op, "coach_id", "coach "+in.CoachID.Hex()+" does not exist")
	}
	if in.AdminID == nil {
		in.AdminID = idPtr(s.defaultAdmin)
	}

	d, err = s.demos.Create(ctx, in)
	if err != nil {
		return models.Demo{}, err
	}
	s.audit.Admin(ctx, audit.EventDemoBooked, "demo", d.ID, map[string]string{
		"coach_id":        d.CoachID.Hex(),
		"scheduled_start": d.ScheduledStart.Format(time.RFC3339),
	})
	return d, nil
}

// UpdateDemo applies a shallow patch. Status is not patchable; use
// TransitionDemo or UpdateDemoOutcome.
func (s *Service) UpdateDemo(ctx context.Context, id primitive.ObjectID, p models.DemoPatch) (d models.Demo, err error) {
	const op = "update"
	defer s.observe("demo", op, time.Now(), &err)

	s.membership.Lock()
	defer s.membership.Unlock()

	if p.CoachID != nil && !s.resolve.CoachExists(*p.CoachID) {
		return models.Demo{}, inputval.Field("demo", op, "coach_id", "coach "+p.CoachID.Hex()+" does not exist")
	}
	d, err = s.demos.Update(ctx, id, p)
	if err != nil {
		return models.Demo{}, err
	}
	s.audit.Admin(ctx, audit.EventDemoUpdated, "demo", d.ID, nil)
	return d, nil
}

// TransitionDemo moves a demo to status to. Illegal moves fail with
// IllegalTransitionError, leave the demo unchanged and are audited as
// rejected.
func (s *Service) TransitionDemo(ctx context.Context, id primitive.ObjectID, to models.DemoStatus) (d models.Demo, err error) {
	defer s.observe("demo", "transition", time.Now(), &err)

	d, from, err := s.demos.Transition(ctx, id, to)
	if err != nil {
		s.auditRejected(ctx, audit.EventDemoTransitioned, "demo", id, err)
		return models.Demo{}, err
	}
	s.audit.Transition(ctx, audit.EventDemoTransitioned, "demo", d.ID, string(from), string(d.Status), nil)
	return d, nil
}

// UpdateDemoOutcome records outcome metadata together with an optional
// status change. Either both apply or neither does.
func (s *Service) UpdateDemoOutcome(ctx context.Context, id primitive.ObjectID, p models.OutcomePatch) (d models.Demo, err error) {
	defer s.observe("demo", "update_outcome", time.Now(), &err)

	d, from, err := s.demos.UpdateOutcome(ctx, id, p)
	if err != nil {
		s.auditRejected(ctx, audit.EventDemoOutcomeRecorded, "demo", id, err)
		return models.Demo{}, err
	}
	details := map[string]string{}
	if d.Outcome != nil {
		if d.Outcome.Reason != "" {
			details["reason"] = d.Outcome.Reason
		}
		if d.Outcome.Plan != "" {
			details["plan"] = d.Outcome.Plan
		}
	}
	s.audit.Transition(ctx, audit.EventDemoOutcomeRecorded, "demo", d.ID, string(from), string(d.Status), details)
	return d, nil
}

func (s *Service) DeleteDemo(ctx context.Context, id primitive.ObjectID) (err error) {
	defer s.observe("demo", "delete", time.Now(), &err)
	if err = s.demos.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Admin(ctx, audit.EventDemoDeleted, "demo", id, nil)
	return nil
}

// auditRejected records refused lifecycle moves. Other failures (not found,
// bad input) are not lifecycle events and are only counted.
func (s *Service) auditRejected(ctx context.Context, eventType, entity string, id primitive.ObjectID, err error) {
	var ite *storeerr.IllegalTransitionError
	if errors.As(err, &ite) {
		s.audit.TransitionRejected(ctx, eventType, entity, id, ite.From, ite.To, err.Error())
	}
}
