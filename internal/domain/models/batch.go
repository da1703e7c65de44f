// internal/domain/models/batch.go
package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BatchStatus is derived from membership unless the batch has been
// administratively deactivated.
type BatchStatus string

const (
	BatchActive   BatchStatus = "ACTIVE"
	BatchFull     BatchStatus = "FULL"
	BatchInactive BatchStatus = "INACTIVE"
)

var BatchStatuses = []BatchStatus{BatchActive, BatchFull, BatchInactive}

func (s BatchStatus) Valid() bool {
	for _, v := range BatchStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultMaxStudents is used when a batch is created without a capacity.
const DefaultMaxStudents = 10

// Schedule describes when a batch meets, in the batch's timezone.
type Schedule struct {
	Days            []string `bson:"days" json:"days"`
	StartTime       string   `bson:"start_time" json:"start_time"` // "HH:MM"
	DurationMinutes int      `bson:"duration_minutes" json:"duration_minutes"`
}

// Batch is a recurring class cohort taught by one coach.
//
// NOTE:
//   - StudentIDs is a set; order is join order.
//   - Status is recomputed after every membership change. Inactive is the
//     administrative override and wins over the count-derived value.
type Batch struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Level       string               `bson:"level" json:"level"`
	Timezone    string               `bson:"timezone" json:"timezone"`
	Schedule    Schedule             `bson:"schedule" json:"schedule"`
	CoachID     *primitive.ObjectID  `bson:"coach_id,omitempty" json:"coach_id,omitempty"`
	StudentIDs  []primitive.ObjectID `bson:"student_ids" json:"student_ids"`
	MaxStudents int                  `bson:"max_students" json:"max_students"`
	Inactive    bool                 `bson:"inactive" json:"inactive"`
	Status      BatchStatus          `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with b.
func (b Batch) Clone() Batch {
	if b.CoachID != nil {
		id := *b.CoachID
		b.CoachID = &id
	}
	b.StudentIDs = slices.Clone(b.StudentIDs)
	b.Schedule.Days = slices.Clone(b.Schedule.Days)
	return b
}

// HasStudent reports whether id is a member of the batch.
func (b Batch) HasStudent(id primitive.ObjectID) bool {
	for _, sid := range b.StudentIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// NewBatch is the input for creating a batch. MaxStudents of 0 means the
// default capacity.
type NewBatch struct {
	Name        string               `json:"name" validate:"notblank,max=120"`
	Level       string               `json:"level" validate:"max=60"`
	Timezone    string               `json:"timezone"`
	Schedule    Schedule             `json:"schedule"`
	CoachID     *primitive.ObjectID  `json:"coach_id,omitempty"`
	StudentIDs  []primitive.ObjectID `json:"student_ids,omitempty"`
	MaxStudents int                  `json:"max_students" validate:"gte=0,lte=500"`
}

// BatchPatch is a shallow patch. Membership, coach and status have their
// own operations.
type BatchPatch struct {
	Name        *string   `json:"name,omitempty"`
	Level       *string   `json:"level,omitempty"`
	Timezone    *string   `json:"timezone,omitempty"`
	Schedule    *Schedule `json:"schedule,omitempty"`
	MaxStudents *int      `json:"max_students,omitempty"`
}
