package session

import (
	"fittrack/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is the last-known-good copy of one subject's collections, as the
// presentation layer last saw them. It mirrors remote state: fetches replace
// whole collections, confirmed mutations patch them, and nothing else writes
// here. Projections are always re-derived from the snapshot, never stored.
type Snapshot struct {
	SubjectID primitive.ObjectID

	Weights   []domain.WeightEntry
	Plans     []domain.WorkoutPlan
	Exercises []domain.Exercise
	Loads     []domain.LoadEntry
	Meals     []domain.Meal
	Notices   []domain.Notice
}

// AddWeight appends a confirmed weight entry.
func (s *Snapshot) AddWeight(entry domain.WeightEntry) {
	s.Weights = append(s.Weights, entry)
}

// AddLoad appends a confirmed load entry.
func (s *Snapshot) AddLoad(entry domain.LoadEntry) {
	s.Loads = append(s.Loads, entry)
}

// AddExercise appends a confirmed exercise.
func (s *Snapshot) AddExercise(exercise domain.Exercise) {
	s.Exercises = append(s.Exercises, exercise)
}

// PatchExercise applies a partial update to the exercise with the given id.
// Fields the mutation did not touch keep their cached values.
func (s *Snapshot) PatchExercise(id primitive.ObjectID, patch func(*domain.Exercise)) {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			patch(&s.Exercises[i])
			return
		}
	}
}

// RemoveExercise removes the exercise with the given id, if cached.
func (s *Snapshot) RemoveExercise(id primitive.ObjectID) {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			s.Exercises = append(s.Exercises[:i], s.Exercises[i+1:]...)
			return
		}
	}
}

// AddMeal appends a confirmed meal.
func (s *Snapshot) AddMeal(meal domain.Meal) {
	s.Meals = append(s.Meals, meal)
}

// PatchMeal applies a partial update to the meal with the given id.
func (s *Snapshot) PatchMeal(id primitive.ObjectID, patch func(*domain.Meal)) {
	for i := range s.Meals {
		if s.Meals[i].ID == id {
			patch(&s.Meals[i])
			return
		}
	}
}

// RemoveMeal removes the meal with the given id, if cached.
func (s *Snapshot) RemoveMeal(id primitive.ObjectID) {
	for i := range s.Meals {
		if s.Meals[i].ID == id {
			s.Meals = append(s.Meals[:i], s.Meals[i+1:]...)
			return
		}
	}
}

// AddPlan appends a confirmed workout plan.
func (s *Snapshot) AddPlan(plan domain.WorkoutPlan) {
	s.Plans = append(s.Plans, plan)
}

// RemovePlan removes a plan and its cached exercises.
func (s *Snapshot) RemovePlan(id primitive.ObjectID) {
	for i := range s.Plans {
		if s.Plans[i].ID == id {
			s.Plans = append(s.Plans[:i], s.Plans[i+1:]...)
			break
		}
	}
	kept := s.Exercises[:0]
	for _, ex := range s.Exercises {
		if ex.PlanID != id {
			kept = append(kept, ex)
		}
	}
	s.Exercises = kept
}

// AddNotice appends a confirmed notice.
func (s *Snapshot) AddNotice(notice domain.Notice) {
	s.Notices = append(s.Notices, notice)
}

// MarkNoticeRead flips the read flag on the cached notice.
func (s *Snapshot) MarkNoticeRead(id primitive.ObjectID) {
	for i := range s.Notices {
		if s.Notices[i].ID == id {
			s.Notices[i].Read = true
			return
		}
	}
}

// RemoveNotice removes the notice with the given id, if cached.
func (s *Snapshot) RemoveNotice(id primitive.ObjectID) {
	for i := range s.Notices {
		if s.Notices[i].ID == id {
			s.Notices = append(s.Notices[:i], s.Notices[i+1:]...)
			return
		}
	}
}
