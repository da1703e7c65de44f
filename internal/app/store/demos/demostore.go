// internal/app/store/demos/demostore.go
package demostore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/memstore"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/academyhub/internal/app/system/inputval"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"github.com/dalemusser/academyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const entity = "demo"

const (
	DefaultDuration       = time.Hour
	DefaultMeetingBaseURL = "https://meet.academyhub.app/demo/"
)

type Options struct {
	Duration       time.Duration // scheduled length when no end is given
	MeetingBaseURL string
	Delay          latency.Hook
	Now            func() time.Time
}

type Store struct {
	c    *memstore.Collection[models.Demo]
	opts Options
}

func New(opts Options) *Store {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.MeetingBaseURL == "" {
		opts.MeetingBaseURL = DefaultMeetingBaseURL
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	idOf := func(d models.Demo) primitive.ObjectID { return d.ID }
	return &Store{
		c:    memstore.New(entity, idOf, models.Demo.Clone, opts.Delay),
		opts: opts,
	}
}

// Create books a demo. CoachID and AdminID must already be resolved by the
// caller; everything else is defaulted here.
func (s *Store) Create(ctx context.Context, in models.NewDemo) (models.Demo, error) {
	in.StudentName = htmlsanitize.PlainText(normalize.Name(in.StudentName))
	in.ParentName = htmlsanitize.PlainText(normalize.Name(in.ParentName))
	in.ParentEmail = normalize.Email(in.ParentEmail)
	if err := inputval.Struct(entity, "create", in); err != nil {
		return models.Demo{}, err
	}
	if in.CoachID == nil || in.CoachID.IsZero() {
		return models.Demo{}, inputval.Field(entity, "create", "coach_id", "coach_id is required")
	}
	if in.AdminID == nil || in.AdminID.IsZero() {
		return models.Demo{}, inputval.Field(entity, "create", "admin_id", "admin_id is required")
	}

	start := in.ScheduledStart.UTC()
	end := start.Add(s.opts.Duration)
	if in.ScheduledEnd != nil {
		end = in.ScheduledEnd.UTC()
	}
	if !end.After(start) {
		return models.Demo{}, inputval.Field(entity, "create", "scheduled_end", "scheduled_end must be after scheduled_start")
	}

	now := s.opts.Now()
	d := models.Demo{
		ID:             primitive.NewObjectID(),
		StudentName:    in.StudentName,
		ParentName:     in.ParentName,
		ParentEmail:    in.ParentEmail,
		ScheduledStart: start,
		ScheduledEnd:   end,
		CoachID:        *in.CoachID,
		AdminID:        *in.AdminID,
		MeetingLink:    s.meetingLink(),
		Status:         lifecycle.InitialDemoStatus,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.c.Insert(ctx, d)
}

func (s *Store) meetingLink() string {
	base := s.opts.MeetingBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + uuid.NewString()
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Demo, error) {
	return s.c.Get(ctx, id)
}

// List returns every demo in booking order.
func (s *Store) List(ctx context.Context) ([]models.Demo, error) {
	return s.c.All(ctx)
}

// Snapshot and Peek skip the simulated latency; the resolver uses them to
// enrich records it has already fetched.
func (s *Store) Snapshot() []models.Demo { return s.c.Snapshot() }

func (s *Store) Peek(id primitive.ObjectID) (models.Demo, bool) { return s.c.Peek(id) }

func (s *Store) Count() int { return s.c.Len() }

// Update merges non-nil patch fields. Moving the start without giving a new
// end keeps the scheduled length.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.DemoPatch) (models.Demo, error) {
	const op = "update"
	return s.c.Update(ctx, id, op, func(d models.Demo) (models.Demo, error) {
		var fields []storeerr.FieldError
		if p.StudentName != nil {
			d.StudentName = htmlsanitize.PlainText(normalize.Name(*p.StudentName))
			if d.StudentName == "" {
				fields = append(fields, storeerr.FieldError{Field: "student_name", Message: "student_name cannot be blank"})
			}
		}
		if p.ParentName != nil {
			d.ParentName = htmlsanitize.PlainText(normalize.Name(*p.ParentName))
			if d.ParentName == "" {
				fields = append(fields, storeerr.FieldError{Field: "parent_name", Message: "parent_name cannot be blank"})
			}
		}
		if p.ParentEmail != nil {
			d.ParentEmail = normalize.Email(*p.ParentEmail)
			if !inputval.IsValidEmail(d.ParentEmail) {
				fields = append(fields, storeerr.FieldError{Field: "parent_email", Message: "parent_email must be a valid email address"})
			}
		}
		if p.ScheduledStart != nil {
			length := d.ScheduledEnd.Sub(d.ScheduledStart)
			d.ScheduledStart = p.ScheduledStart.UTC()
			if p.ScheduledEnd == nil {
				d.ScheduledEnd = d.ScheduledStart.Add(length)
			}
		}
		if p.ScheduledEnd != nil {
			d.ScheduledEnd = p.ScheduledEnd.UTC()
		}
		if !d.ScheduledEnd.After(d.ScheduledStart) {
			fields = append(fields, storeerr.FieldError{Field: "scheduled_end", Message: "scheduled_end must be after scheduled_start"})
		}
		if p.CoachID != nil {
			if p.CoachID.IsZero() {
				fields = append(fields, storeerr.FieldError{Field: "coach_id", Message: "coach_id cannot be empty"})
			}
			d.CoachID = *p.CoachID
		}
		if p.MeetingLink != nil {
			d.MeetingLink = strings.TrimSpace(*p.MeetingLink)
			if d.MeetingLink == "" {
				fields = append(fields, storeerr.FieldError{Field: "meeting_link", Message: "meeting_link cannot be blank"})
			}
		}
		if len(fields) > 0 {
			return d, storeerr.Invalid(entity, op, fields...)
		}
		d.UpdatedAt = s.opts.Now()
		return d, nil
	})
}

// Transition moves a demo along one lifecycle edge and returns the updated
// demo with the status it left.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to models.DemoStatus) (models.Demo, models.DemoStatus, error) {
	var from models.DemoStatus
	d, err := s.c.Update(ctx, id, "transition", func(d models.Demo) (models.Demo, error) {
		from = d.Status
		if err := lifecycle.CheckDemoTransition(id.Hex(), d.Status, to); err != nil {
			return d, err
		}
		d.Status = to
		d.UpdatedAt = s.opts.Now()
		return d, nil
	})
	return d, from, err
}

// UpdateOutcome merges outcome metadata and, when p.Status is set, moves the
// demo to that status in the same write. A rejected transition leaves the
// outcome untouched. Extra keys with an empty value are removed.
func (s *Store) UpdateOutcome(ctx context.Context, id primitive.ObjectID, p models.OutcomePatch) (models.Demo, models.DemoStatus, error) {
	var from models.DemoStatus
	d, err := s.c.Update(ctx, id, "update_outcome", func(d models.Demo) (models.Demo, error) {
		from = d.Status
		if p.Status != "" {
			if err := lifecycle.CheckDemoTransition(id.Hex(), d.Status, p.Status); err != nil {
				return d, err
			}
			d.Status = p.Status
		}

		o := models.DemoOutcome{}
		if d.Outcome != nil {
			o = *d.Outcome
		}
		if p.Reason != nil {
			o.Reason = htmlsanitize.PlainText(*p.Reason)
		}
		if p.Plan != nil {
			o.Plan = htmlsanitize.PlainText(*p.Plan)
		}
		if p.Notes != nil {
			o.Notes = htmlsanitize.Sanitize(*p.Notes)
		}
		for k, v := range p.Extra {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if v == "" {
				delete(o.Extra, k)
				continue
			}
			if o.Extra == nil {
				o.Extra = make(map[string]string, len(p.Extra))
			}
			o.Extra[k] = htmlsanitize.PlainText(v)
		}
		now := s.opts.Now()
		o.RecordedAt = now
		d.Outcome = &o
		d.UpdatedAt = now
		return d, nil
	})
	return d, from, err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.Delete(ctx, id)
}
