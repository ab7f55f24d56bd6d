package session

import (
	"fittrack/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityKind names a mutation target for capability checks.
type EntityKind string

const (
	KindWeightEntry     EntityKind = "weight_entry"
	KindLoadEntry       EntityKind = "load_entry"
	KindWorkoutPlan     EntityKind = "workout_plan"
	KindExercise        EntityKind = "exercise"
	KindMeal            EntityKind = "meal"
	KindNotice          EntityKind = "notice"
	KindNoticeSeverity  EntityKind = "notice_severity"
	KindNoticeReadState EntityKind = "notice_read_state"
	KindStudentSettings EntityKind = "student_settings"
)

// Allow is the single capability check every mutation runs through before a
// remote call is attempted. ownerID is the subject who owns the target
// entity. The remote store enforces the same rules authoritatively; this
// gate exists so unauthorized mutations are refused without a network call.
//
// Rules (mirroring the entity mutation rules of the data model):
//   - weight and load entries: only the owning student appends them;
//   - notice read-state: only the recipient student flips it;
//   - plans, exercises, meals, notice severity, student settings: only the
//     professional currently linked to the owning student;
//   - notices: either party of the link may author one.
func Allow(actor *domain.User, kind EntityKind, ownerID primitive.ObjectID) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	switch kind {
	case KindWeightEntry, KindLoadEntry, KindNoticeReadState:
		if !actor.IsStudent() || actor.ID != ownerID {
			return ErrNotPermitted
		}
		return nil

	case KindWorkoutPlan, KindExercise, KindMeal, KindNoticeSeverity, KindStudentSettings:
		if !actor.IsProfessional() {
			return ErrNotPermitted
		}
		if !linked(actor, ownerID) {
			return ErrStudentNotLinked
		}
		return nil

	case KindNotice:
		if actor.IsStudent() {
			if actor.ID != ownerID {
				return ErrNotPermitted
			}
			return nil
		}
		if !linked(actor, ownerID) {
			return ErrStudentNotLinked
		}
		return nil
	}

	return ErrNotPermitted
}
