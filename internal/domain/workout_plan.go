package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is one weekday's training assignment for a student.
// In practice a student has at most one plan per weekday; creating a plan for
// an already-planned weekday replaces the existing one at the service layer.
type WorkoutPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfessionalID primitive.ObjectID `bson:"professionalId" json:"professionalId"`
	StudentID      primitive.ObjectID `bson:"studentId" json:"studentId"`
	Weekday        Weekday            `bson:"weekday" json:"weekday"`
	WorkoutType    string             `bson:"workoutType" json:"workoutType"` // e.g. "Upper Body"
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
