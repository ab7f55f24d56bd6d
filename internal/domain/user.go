package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleProfessional Role = "professional"
	RoleStudent      Role = "student"
)

// StudentStatus is the coaching status a professional sets on a student.
type StudentStatus string

const (
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
	StatusOnLeave  StudentStatus = "on_leave"
)

// ValidStudentStatus reports whether s is one of the known status values.
func ValidStudentStatus(s StudentStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

// User represents a profile in the system (either a Professional or a Student).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Student-specific, set by the linked professional ---
	Goal         string        `bson:"goal,omitempty" json:"goal,omitempty"`
	TargetWeight *float64      `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	Status       StudentStatus `bson:"status,omitempty" json:"status,omitempty"`

	// --- Professional-specific ---
	// ObjectIDs of students currently linked to this professional.
	StudentIDs []primitive.ObjectID `bson:"studentIds,omitempty" json:"studentIds,omitempty"`

	// --- Student-specific ---
	// The professional this student is linked to, at most one.
	ProfessionalID *primitive.ObjectID `bson:"professionalId,omitempty" json:"professionalId,omitempty"`
}

func (u *User) IsProfessional() bool {
	return u.Role == RoleProfessional
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
