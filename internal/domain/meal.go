package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType is the fixed enumeration of meal slots in a diet plan.
type MealType string

const (
	MealPreWorkout  MealType = "pre_workout"
	MealPostWorkout MealType = "post_workout"
	MealBreakfast   MealType = "breakfast"
	MealLunch       MealType = "lunch"
	MealSnack       MealType = "snack"
	MealDinner      MealType = "dinner"
	MealLateSnack   MealType = "late_snack"
)

// ValidMealType reports whether t is one of the known meal slots.
func ValidMealType(t MealType) bool {
	switch t {
	case MealPreWorkout, MealPostWorkout, MealBreakfast, MealLunch,
		MealSnack, MealDinner, MealLateSnack:
		return true
	}
	return false
}

// Meal is one entry of a student's diet plan, scoped to a weekday and a
// time of day. Created and edited only by the linked professional.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"studentId" json:"studentId"`
	Weekday     Weekday            `bson:"weekday" json:"weekday"`
	MealType    MealType           `bson:"mealType" json:"mealType"`
	Time        string             `bson:"time" json:"time"` // zero-padded "HH:MM", sorts lexicographically
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
