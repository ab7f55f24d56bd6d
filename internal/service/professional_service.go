package service

import (
	"context"
	"errors"
	"regexp"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound      = errors.New("no student account exists with this email")
	ErrNotAStudent          = errors.New("the account with this email is not a student account")
	ErrStudentAlreadyLinked = errors.New("student is already linked to a professional")
	ErrStudentNotLinked     = errors.New("student is not linked to this professional")
	ErrPlanNotFound         = errors.New("workout plan not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrMealNotFound         = errors.New("meal not found")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrInvalidInput         = errors.New("invalid input")
)

// timePattern matches zero-padded 24h clock times such as "07:30".
var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ProfessionalService covers everything a professional does for their
// linked students: roster management, workout plans and exercises, diet
// plans, notices and per-student settings.
type ProfessionalService interface {
	AddStudentByEmail(ctx context.Context, professionalID primitive.ObjectID, studentEmail string) (*domain.User, error)
	GetStudents(ctx context.Context, professionalID primitive.ObjectID) ([]domain.User, error)
	RemoveStudent(ctx context.Context, professionalID, studentID primitive.ObjectID) error
	UpdateStudentSettings(ctx context.Context, professionalID, studentID primitive.ObjectID, settings repository.StudentSettings) error

	CreatePlan(ctx context.Context, professionalID, studentID primitive.ObjectID, weekday domain.Weekday, workoutType string) (*domain.WorkoutPlan, error)
	GetPlans(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, professionalID, planID primitive.ObjectID, workoutType string) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, professionalID, planID primitive.ObjectID) error

	AddExercise(ctx context.Context, professionalID, planID primitive.ObjectID, name string, sets int, reps string) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, professionalID, exerciseID primitive.ObjectID, name string, sets int, reps string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, professionalID, exerciseID primitive.ObjectID) error

	AddMeal(ctx context.Context, professionalID, studentID primitive.ObjectID, weekday domain.Weekday, mealType domain.MealType, timeOfDay, description string) (*domain.Meal, error)
	GetMeals(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, professionalID, mealID primitive.ObjectID, mealType domain.MealType, timeOfDay, description string) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, professionalID, mealID primitive.ObjectID) error

	SendNotice(ctx context.Context, professionalID, studentID primitive.ObjectID, message string, severity domain.NoticeSeverity) (*domain.Notice, error)
	GetNotices(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.Notice, error)
	ChangeNoticeSeverity(ctx context.Context, professionalID, noticeID primitive.ObjectID, severity domain.NoticeSeverity) error
	DeleteNotice(ctx context.Context, professionalID, noticeID primitive.ObjectID) error
}

type professionalService struct {
	userRepo     repository.UserRepository
	planRepo     repository.WorkoutPlanRepository
	exerciseRepo repository.ExerciseRepository
	mealRepo     repository.MealRepository
	noticeRepo   repository.NoticeRepository
}

// NewProfessionalService creates a new instance of professionalService.
func NewProfessionalService(
	userRepo repository.UserRepository,
	planRepo repository.WorkoutPlanRepository,
	exerciseRepo repository.ExerciseRepository,
	mealRepo repository.MealRepository,
	noticeRepo repository.NoticeRepository,
) ProfessionalService {
	return &professionalService{
		userRepo:     userRepo,
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		mealRepo:     mealRepo,
		noticeRepo:   noticeRepo,
	}
}

// requireLink verifies that studentID belongs to the professional's roster.
func (s *professionalService) requireLink(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	professional, err := s.userRepo.GetByID(ctx, professionalID)
	if err != nil {
		return err
	}
	for _, id := range professional.StudentIDs {
		if id == studentID {
			return nil
		}
	}
	return ErrStudentNotLinked
}

// --- Roster ---

// AddStudentByEmail links an existing, unlinked student account to the
// professional. Failures are distinguished so the caller can show a precise
// message: unknown email, wrong role, or already taken.
func (s *professionalService) AddStudentByEmail(ctx context.Context, professionalID primitive.ObjectID, studentEmail string) (*domain.User, error) {
	if studentEmail == "" {
		return nil, ErrInvalidInput
	}

	student, err := s.userRepo.GetByEmail(ctx, studentEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if !student.IsStudent() {
		return nil, ErrNotAStudent
	}
	if student.ProfessionalID != nil {
		return nil, ErrStudentAlreadyLinked
	}

	if err := s.userRepo.SetProfessionalForStudent(ctx, student.ID, professionalID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddStudentToProfessional(ctx, professionalID, student.ID); err != nil {
		// Roll the student side back so the link stays consistent.
		_ = s.userRepo.ClearProfessionalForStudent(ctx, student.ID)
		return nil, err
	}

	student.ProfessionalID = &professionalID
	student.PasswordHash = ""
	return student, nil
}

func (s *professionalService) GetStudents(ctx context.Context, professionalID primitive.ObjectID) ([]domain.User, error) {
	students, err := s.userRepo.GetStudentsByProfessionalID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].PasswordHash = ""
	}
	return students, nil
}

func (s *professionalService) RemoveStudent(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return err
	}
	if err := s.userRepo.RemoveStudentFromProfessional(ctx, professionalID, studentID); err != nil {
		return err
	}
	return s.userRepo.ClearProfessionalForStudent(ctx, studentID)
}

func (s *professionalService) UpdateStudentSettings(ctx context.Context, professionalID, studentID primitive.ObjectID, settings repository.StudentSettings) error {
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return err
	}
	if settings.Status != nil && !domain.ValidStudentStatus(*settings.Status) {
		return ErrInvalidInput
	}
	if settings.TargetWeight != nil && *settings.TargetWeight <= 0 {
		return ErrInvalidInput
	}
	return s.userRepo.UpdateStudentSettings(ctx, studentID, settings)
}

// --- Workout Plans ---

// CreatePlan assigns a weekday workout plan. A weekday holds at most one
// plan per student, so an existing plan for the same weekday is replaced
// and its exercises removed.
func (s *professionalService) CreatePlan(ctx context.Context, professionalID, studentID primitive.ObjectID, weekday domain.Weekday, workoutType string) (*domain.WorkoutPlan, error) {
	if !domain.ValidWeekday(weekday) || workoutType == "" {
		return nil, ErrInvalidInput
	}
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}

	existing, err := s.planRepo.GetByStudentAndWeekday(ctx, studentID, weekday)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := s.exerciseRepo.DeleteByPlanID(ctx, existing.ID); err != nil {
			return nil, err
		}
		if err := s.planRepo.Delete(ctx, existing.ID, studentID); err != nil {
			return nil, err
		}
	}

	plan := &domain.WorkoutPlan{
		ProfessionalID: professionalID,
		StudentID:      studentID,
		Weekday:        weekday,
		WorkoutType:    workoutType,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

func (s *professionalService) GetPlans(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}
	return s.planRepo.GetByStudentID(ctx, studentID)
}

// ownedPlan loads a plan and verifies the professional may edit it.
func (s *professionalService) ownedPlan(ctx context.Context, professionalID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if err := s.requireLink(ctx, professionalID, plan.StudentID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *professionalService) UpdatePlan(ctx context.Context, professionalID, planID primitive.ObjectID, workoutType string) (*domain.WorkoutPlan, error) {
	if workoutType == "" {
		return nil, ErrInvalidInput
	}
	plan, err := s.ownedPlan(ctx, professionalID, planID)
	if err != nil {
		return nil, err
	}
	plan.WorkoutType = workoutType
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes the plan and cascades to its exercises.
func (s *professionalService) DeletePlan(ctx context.Context, professionalID, planID primitive.ObjectID) error {
	plan, err := s.ownedPlan(ctx, professionalID, planID)
	if err != nil {
		return err
	}
	if err := s.exerciseRepo.DeleteByPlanID(ctx, plan.ID); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, plan.ID, plan.StudentID)
}

// --- Exercises ---

func validExerciseInput(name string, sets int, reps string) bool {
	return name != "" && sets > 0 && reps != ""
}

func (s *professionalService) AddExercise(ctx context.Context, professionalID, planID primitive.ObjectID, name string, sets int, reps string) (*domain.Exercise, error) {
	if !validExerciseInput(name, sets, reps) {
		return nil, ErrInvalidInput
	}
	plan, err := s.ownedPlan(ctx, professionalID, planID)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		PlanID:    plan.ID,
		StudentID: plan.StudentID,
		Name:      name,
		Sets:      sets,
		Reps:      reps,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// ownedExercise loads an exercise and verifies the professional may edit it.
func (s *professionalService) ownedExercise(ctx context.Context, professionalID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if err := s.requireLink(ctx, professionalID, exercise.StudentID); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *professionalService) UpdateExercise(ctx context.Context, professionalID, exerciseID primitive.ObjectID, name string, sets int, reps string) (*domain.Exercise, error) {
	if !validExerciseInput(name, sets, reps) {
		return nil, ErrInvalidInput
	}
	exercise, err := s.ownedExercise(ctx, professionalID, exerciseID)
	if err != nil {
		return nil, err
	}
	exercise.Name = name
	exercise.Sets = sets
	exercise.Reps = reps
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *professionalService) DeleteExercise(ctx context.Context, professionalID, exerciseID primitive.ObjectID) error {
	exercise, err := s.ownedExercise(ctx, professionalID, exerciseID)
	if err != nil {
		return err
	}
	return s.exerciseRepo.Delete(ctx, exercise.ID, exercise.StudentID)
}

// --- Diet Plan ---

func (s *professionalService) AddMeal(ctx context.Context, professionalID, studentID primitive.ObjectID, weekday domain.Weekday, mealType domain.MealType, timeOfDay, description string) (*domain.Meal, error) {
	if !domain.ValidWeekday(weekday) || !domain.ValidMealType(mealType) ||
		!timePattern.MatchString(timeOfDay) || description == "" {
		return nil, ErrInvalidInput
	}
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}

	meal := &domain.Meal{
		StudentID:   studentID,
		Weekday:     weekday,
		MealType:    mealType,
		Time:        timeOfDay,
		Description: description,
	}
	mealID, err := s.mealRepo.Create(ctx, meal)
	if err != nil {
		return nil, err
	}
	meal.ID = mealID
	return meal, nil
}

func (s *professionalService) GetMeals(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.Meal, error) {
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}
	return s.mealRepo.GetByStudentID(ctx, studentID)
}

func (s *professionalService) UpdateMeal(ctx context.Context, professionalID, mealID primitive.ObjectID, mealType domain.MealType, timeOfDay, description string) (*domain.Meal, error) {
	if !domain.ValidMealType(mealType) || !timePattern.MatchString(timeOfDay) || description == "" {
		return nil, ErrInvalidInput
	}
	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if err := s.requireLink(ctx, professionalID, meal.StudentID); err != nil {
		return nil, err
	}

	meal.MealType = mealType
	meal.Time = timeOfDay
	meal.Description = description
	if err := s.mealRepo.Update(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *professionalService) DeleteMeal(ctx context.Context, professionalID, mealID primitive.ObjectID) error {
	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	if err := s.requireLink(ctx, professionalID, meal.StudentID); err != nil {
		return err
	}
	return s.mealRepo.Delete(ctx, meal.ID, meal.StudentID)
}

// --- Notices ---

func (s *professionalService) SendNotice(ctx context.Context, professionalID, studentID primitive.ObjectID, message string, severity domain.NoticeSeverity) (*domain.Notice, error) {
	if message == "" || !domain.ValidNoticeSeverity(severity) {
		return nil, ErrInvalidInput
	}
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}

	notice := &domain.Notice{
		ProfessionalID: professionalID,
		StudentID:      studentID,
		AuthorID:       professionalID,
		Message:        message,
		Severity:       severity,
	}
	noticeID, err := s.noticeRepo.Create(ctx, notice)
	if err != nil {
		return nil, err
	}
	notice.ID = noticeID
	return notice, nil
}

func (s *professionalService) GetNotices(ctx context.Context, professionalID, studentID primitive.ObjectID) ([]domain.Notice, error) {
	if err := s.requireLink(ctx, professionalID, studentID); err != nil {
		return nil, err
	}
	return s.noticeRepo.GetByStudentID(ctx, studentID)
}

// ownedNotice loads a notice and verifies it belongs to the professional's link.
func (s *professionalService) ownedNotice(ctx context.Context, professionalID, noticeID primitive.ObjectID) (*domain.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	if notice.ProfessionalID != professionalID {
		return nil, ErrStudentNotLinked
	}
	return notice, nil
}

func (s *professionalService) ChangeNoticeSeverity(ctx context.Context, professionalID, noticeID primitive.ObjectID, severity domain.NoticeSeverity) error {
	if !domain.ValidNoticeSeverity(severity) {
		return ErrInvalidInput
	}
	notice, err := s.ownedNotice(ctx, professionalID, noticeID)
	if err != nil {
		return err
	}
	return s.noticeRepo.UpdateSeverity(ctx, notice.ID, severity)
}

func (s *professionalService) DeleteNotice(ctx context.Context, professionalID, noticeID primitive.ObjectID) error {
	notice, err := s.ownedNotice(ctx, professionalID, noticeID)
	if err != nil {
		return err
	}
	return s.noticeRepo.Delete(ctx, notice.ID)
}
