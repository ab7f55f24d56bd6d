package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise belongs to exactly one WorkoutPlan. StudentID is denormalized from
// the owning plan so load-history queries and ownership checks don't need a
// plan lookup.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	Name      string             `bson:"name" json:"name"`
	Sets      int                `bson:"sets" json:"sets"`
	Reps      string             `bson:"reps" json:"reps"` // numeric or free-text range, e.g. "10" or "8-12"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
