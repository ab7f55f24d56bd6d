package api

import (
	"time"

	"fittrack/coach-app/internal/domain"
)

// Entity DTOs shared by the professional and student handlers. ObjectIDs
// are converted to hex strings at the boundary.

type PlanResponse struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"studentId"`
	Weekday     domain.Weekday `json:"weekday"`
	WorkoutType string         `json:"workoutType"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type ExerciseResponse struct {
	ID     string `json:"id"`
	PlanID string `json:"planId"`
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
}

type MealResponse struct {
	ID          string          `json:"id"`
	Weekday     domain.Weekday  `json:"weekday"`
	MealType    domain.MealType `json:"mealType"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
}

type NoticeResponse struct {
	ID        string                `json:"id"`
	AuthorID  string                `json:"authorId"`
	Message   string                `json:"message"`
	Severity  domain.NoticeSeverity `json:"severity"`
	Read      bool                  `json:"read"`
	CreatedAt time.Time             `json:"createdAt"`
}

type WeightEntryResponse struct {
	ID        string    `json:"id"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID.Hex(),
		StudentID:   plan.StudentID.Hex(),
		Weekday:     plan.Weekday,
		WorkoutType: plan.WorkoutType,
		CreatedAt:   plan.CreatedAt,
	}
}

func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:     exercise.ID.Hex(),
		PlanID: exercise.PlanID.Hex(),
		Name:   exercise.Name,
		Sets:   exercise.Sets,
		Reps:   exercise.Reps,
	}
}

func MapMealToResponse(meal *domain.Meal) MealResponse {
	return MealResponse{
		ID:          meal.ID.Hex(),
		Weekday:     meal.Weekday,
		MealType:    meal.MealType,
		Time:        meal.Time,
		Description: meal.Description,
	}
}

func MapNoticeToResponse(notice *domain.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        notice.ID.Hex(),
		AuthorID:  notice.AuthorID.Hex(),
		Message:   notice.Message,
		Severity:  notice.Severity,
		Read:      notice.Read,
		CreatedAt: notice.CreatedAt,
	}
}

func MapWeightEntryToResponse(entry *domain.WeightEntry) WeightEntryResponse {
	return WeightEntryResponse{
		ID:        entry.ID.Hex(),
		Weight:    entry.Weight,
		CreatedAt: entry.CreatedAt,
	}
}
