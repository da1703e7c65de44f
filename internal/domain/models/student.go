// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "ACTIVE"
	StudentInactive StudentStatus = "INACTIVE"
)

func (s StudentStatus) Valid() bool {
	return s == StudentActive || s == StudentInactive
}

// StudentType says whether the student takes one-to-one or group classes.
type StudentType string

const (
	StudentIndividual StudentType = "INDIVIDUAL"
	StudentGroup      StudentType = "GROUP"
)

func (t StudentType) Valid() bool {
	return t == StudentIndividual || t == StudentGroup
}

// Student is an enrolled learner. BatchID mirrors batch membership and is
// only written by the batch membership operations.
type Student struct {
	ID      primitive.ObjectID  `bson:"_id" json:"id"`
	Name    string              `bson:"name" json:"name"`
	Age     int                 `bson:"age" json:"age"`
	Level   string              `bson:"level" json:"level"`
	Type    StudentType         `bson:"type" json:"type"`
	Status  StudentStatus       `bson:"status" json:"status"`
	BatchID *primitive.ObjectID `bson:"batch_id,omitempty" json:"batch_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (s Student) Clone() Student {
	if s.BatchID != nil {
		id := *s.BatchID
		s.BatchID = &id
	}
	return s
}

type NewStudent struct {
	Name   string        `json:"name" validate:"notblank,max=120"`
	Age    int           `json:"age" validate:"omitempty,gte=3,lte=120"`
	Level  string        `json:"level" validate:"max=60"`
	Type   StudentType   `json:"type"`
	Status StudentStatus `json:"status"`
}

type StudentPatch struct {
	Name  *string      `json:"name,omitempty"`
	Age   *int         `json:"age,omitempty"`
	Level *string      `json:"level,omitempty"`
	Type  *StudentType `json:"type,omitempty"`
}
