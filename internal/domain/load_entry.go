package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoadEntry is a single lift-load sample a student logs against one of their
// exercises during or after training. Append-only, like WeightEntry.
type LoadEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID  primitive.ObjectID `bson:"studentId" json:"studentId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Load       float64            `bson:"load" json:"load"` // kilograms
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
