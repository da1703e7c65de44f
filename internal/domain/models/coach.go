// internal/domain/models/coach.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CoachStatus string

const (
	CoachActive   CoachStatus = "ACTIVE"
	CoachInactive CoachStatus = "INACTIVE"
)

func (s CoachStatus) Valid() bool {
	return s == CoachActive || s == CoachInactive
}

// Coach teaches batches and runs demos.
type Coach struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Status CoachStatus        `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type NewCoach struct {
	Name   string      `json:"name" validate:"notblank,max=120"`
	Email  string      `json:"email" validate:"omitempty,max=254,email_simple"`
	Status CoachStatus `json:"status"`
}

type CoachPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
