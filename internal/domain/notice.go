package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoticeSeverity is set only by the professional side of the relationship.
type NoticeSeverity string

const (
	SeverityNormal    NoticeSeverity = "normal"
	SeverityImportant NoticeSeverity = "important"
	SeverityUrgent    NoticeSeverity = "urgent"
)

// ValidNoticeSeverity reports whether s is one of the known severities.
func ValidNoticeSeverity(s NoticeSeverity) bool {
	switch s {
	case SeverityNormal, SeverityImportant, SeverityUrgent:
		return true
	}
	return false
}

// Notice is a directed message within a professional/student link. AuthorID
// identifies which party wrote it; the read flag is meaningful only to the
// student recipient.
type Notice struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfessionalID primitive.ObjectID `bson:"professionalId" json:"professionalId"`
	StudentID      primitive.ObjectID `bson:"studentId" json:"studentId"`
	AuthorID       primitive.ObjectID `bson:"authorId" json:"authorId"`
	Message        string             `bson:"message" json:"message"`
	Severity       NoticeSeverity     `bson:"severity" json:"severity"`
	Read           bool               `bson:"read" json:"read"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
