package repository

import (
	"context"

	"fittrack/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StudentSettings is the partial field-set a professional may change on a
// linked student's profile. Nil fields are left untouched.
type StudentSettings struct {
	Goal         *string
	TargetWeight *float64
	Status       *domain.StudentStatus
}

// UserRepository defines the interface for interacting with profile data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// Link management: professional side keeps a studentIds array, student
	// side keeps a single professionalId. Both are updated on link/unlink.
	AddStudentToProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error
	RemoveStudentFromProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error
	SetProfessionalForStudent(ctx context.Context, studentID, professionalID primitive.ObjectID) error
	ClearProfessionalForStudent(ctx context.Context, studentID primitive.ObjectID) error
	GetStudentsByProfessionalID(ctx context.Context, professionalID primitive.ObjectID) ([]domain.User, error)

	UpdateStudentSettings(ctx context.Context, studentID primitive.ObjectID, settings StudentSettings) error
}

// WeightRepository defines the interface for body-weight history.
type WeightRepository interface {
	Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.WeightEntry, error)
}

// WorkoutPlanRepository defines the interface for weekday workout plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetByStudentAndWeekday(ctx context.Context, studentID primitive.ObjectID, weekday domain.Weekday) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	// Delete requires the owning student id to match (defense in depth).
	Delete(ctx context.Context, id, studentID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for plan exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Exercise, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, studentID primitive.ObjectID) error
	// DeleteByPlanID removes all exercises of a plan (used when a weekday's
	// plan is replaced or deleted).
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// LoadRepository defines the interface for lift-load history.
type LoadRepository interface {
	Create(ctx context.Context, entry *domain.LoadEntry) (primitive.ObjectID, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.LoadEntry, error)
}

// MealRepository defines the interface for diet-plan meals.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id, studentID primitive.ObjectID) error
}

// NoticeRepository defines the interface for notices within a link.
type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notice, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Notice, error)
	UpdateSeverity(ctx context.Context, id primitive.ObjectID, severity domain.NoticeSeverity) error
	// MarkRead flips the read flag; the student id in the filter guarantees
	// only the recipient's notice can be marked.
	MarkRead(ctx context.Context, id, studentID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
