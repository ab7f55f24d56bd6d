package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightEntry is a single body-weight sample logged by a student.
// Entries are append-only; chronology comes from CreatedAt, never from
// any client-supplied ordering.
type WeightEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	Weight    float64            `bson:"weight" json:"weight"` // kilograms
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
