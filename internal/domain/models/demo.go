// internal/domain/models/demo.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DemoStatus is the lifecycle state of a trial class.
type DemoStatus string

const (
	DemoBooked         DemoStatus = "BOOKED"
	DemoAttended       DemoStatus = "ATTENDED"
	DemoPaymentPending DemoStatus = "PAYMENT_PENDING"
	DemoConverted      DemoStatus = "CONVERTED"
	DemoCancelled      DemoStatus = "CANCELLED"
)

// DemoStatuses lists every declared demo status in lifecycle order.
var DemoStatuses = []DemoStatus{
	DemoBooked,
	DemoAttended,
	DemoPaymentPending,
	DemoConverted,
	DemoCancelled,
}

// Valid reports whether s is one of the declared demo statuses.
func (s DemoStatus) Valid() bool {
	for _, v := range DemoStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DemoOutcome is the structured payload attached when a demo is converted
// or rejected. Extra carries free-form keys the dashboard wants to keep
// (e.g. "payment_ref").
type DemoOutcome struct {
	Reason     string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Plan       string            `bson:"plan,omitempty" json:"plan,omitempty"`
	Notes      string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Extra      map[string]string `bson:"extra,omitempty" json:"extra,omitempty"`
	RecordedAt time.Time         `bson:"recorded_at" json:"recorded_at"`
}

// Demo is a booked trial class for a prospective student.
//
// NOTE:
//   - Status only changes through the lifecycle operations
//     (Transition / UpdateOutcome), never through a patch.
//   - CoachID and AdminID are foreign identities; resolve them through the
//     resolver rather than copying coach data onto the demo.
type Demo struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	StudentName    string             `bson:"student_name" json:"student_name"`
	ParentName     string             `bson:"parent_name" json:"parent_name"`
	ParentEmail    string             `bson:"parent_email" json:"parent_email"`
	ScheduledStart time.Time          `bson:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time          `bson:"scheduled_end" json:"scheduled_end"`
	CoachID        primitive.ObjectID `bson:"coach_id" json:"coach_id"`
	AdminID        primitive.ObjectID `bson:"admin_id" json:"admin_id"`
	MeetingLink    string             `bson:"meeting_link" json:"meeting_link"`
	Status         DemoStatus         `bson:"status" json:"status"`
	Outcome        *DemoOutcome       `bson:"outcome,omitempty" json:"outcome,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with d.
func (d Demo) Clone() Demo {
	if d.Outcome != nil {
		o := *d.Outcome
		if d.Outcome.Extra != nil {
			o.Extra = make(map[string]string, len(d.Outcome.Extra))
			for k, v := range d.Outcome.Extra {
				o.Extra[k] = v
			}
		}
		d.Outcome = &o
	}
	return d
}

// NewDemo is the input for booking a demo. ScheduledEnd defaults to
// ScheduledStart plus the configured demo duration; CoachID and AdminID
// default when nil.
type NewDemo struct {
	StudentName    string              `json:"student_name" validate:"notblank,max=120"`
	ParentName     string              `json:"parent_name" validate:"notblank,max=120"`
	ParentEmail    string              `json:"parent_email" validate:"required,max=254,email_simple"`
	ScheduledStart time.Time           `json:"scheduled_start" validate:"required"`
	ScheduledEnd   *time.Time          `json:"scheduled_end,omitempty"`
	CoachID        *primitive.ObjectID `json:"coach_id,omitempty"`
	AdminID        *primitive.ObjectID `json:"admin_id,omitempty"`
}

// DemoPatch is a shallow patch: nil fields are left untouched.
type DemoPatch struct {
	StudentName    *string             `json:"student_name,omitempty"`
	ParentName     *string             `json:"parent_name,omitempty"`
	ParentEmail    *string             `json:"parent_email,omitempty"`
	ScheduledStart *time.Time          `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time          `json:"scheduled_end,omitempty"`
	CoachID        *primitive.ObjectID `json:"coach_id,omitempty"`
	MeetingLink    *string             `json:"meeting_link,omitempty"`
}

// OutcomePatch pairs a status change with outcome metadata. Both are applied
// together or not at all.
type OutcomePatch struct {
	Status DemoStatus        `json:"status"`
	Reason *string           `json:"reason,omitempty"`
	Plan   *string           `json:"plan,omitempty"`
	Notes  *string           `json:"notes,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}
