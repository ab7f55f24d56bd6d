package service

import (
	"context"
	"errors"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/projection"
	"fittrack/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotLinked      = errors.New("student has no linked professional")
	ErrNotNoticeOwner = errors.New("notice does not belong to this student")
	ErrNotAuthor      = errors.New("only the author may delete this notice")
)

// WeightHistory bundles raw entries with the derived summary.
type WeightHistory struct {
	Entries []domain.WeightEntry
	Summary projection.WeightSummary
}

// TrainingWeek is the full weekday-grouped training view.
type TrainingWeek struct {
	Days []projection.WeekdayTraining
}

// DietWeek is the full weekday-grouped diet view.
type DietWeek struct {
	Days []projection.WeekdayMeals
}

// NoticeBoard bundles notices with their derived counts.
type NoticeBoard struct {
	Notices []domain.Notice
	Counts  projection.NoticeCounts
}

// StudentService covers a student's own data: weight and load logging,
// the weekly training and diet views, and the notice board.
type StudentService interface {
	LogWeight(ctx context.Context, studentID primitive.ObjectID, weight float64) (*domain.WeightEntry, error)
	GetWeightHistory(ctx context.Context, studentID primitive.ObjectID) (*WeightHistory, error)

	LogLoad(ctx context.Context, studentID, exerciseID primitive.ObjectID, load float64) (*domain.LoadEntry, error)
	GetLoadHistory(ctx context.Context, studentID primitive.ObjectID) (map[string][]projection.LoadPoint, error)

	GetTrainingWeek(ctx context.Context, studentID primitive.ObjectID) (*TrainingWeek, error)
	GetDietWeek(ctx context.Context, studentID primitive.ObjectID) (*DietWeek, error)

	GetNotices(ctx context.Context, studentID primitive.ObjectID) (*NoticeBoard, error)
	MarkNoticeRead(ctx context.Context, studentID, noticeID primitive.ObjectID) error
	SendNotice(ctx context.Context, studentID primitive.ObjectID, message string) (*domain.Notice, error)
	DeleteOwnNotice(ctx context.Context, studentID, noticeID primitive.ObjectID) error
}

type studentService struct {
	userRepo     repository.UserRepository
	weightRepo   repository.WeightRepository
	planRepo     repository.WorkoutPlanRepository
	exerciseRepo repository.ExerciseRepository
	loadRepo     repository.LoadRepository
	mealRepo     repository.MealRepository
	noticeRepo   repository.NoticeRepository
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(
	userRepo repository.UserRepository,
	weightRepo repository.WeightRepository,
	planRepo repository.WorkoutPlanRepository,
	exerciseRepo repository.ExerciseRepository,
	loadRepo repository.LoadRepository,
	mealRepo repository.MealRepository,
	noticeRepo repository.NoticeRepository,
) StudentService {
	return &studentService{
		userRepo:     userRepo,
		weightRepo:   weightRepo,
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		loadRepo:     loadRepo,
		mealRepo:     mealRepo,
		noticeRepo:   noticeRepo,
	}
}

// --- Weight ---

func (s *studentService) LogWeight(ctx context.Context, studentID primitive.ObjectID, weight float64) (*domain.WeightEntry, error) {
	if weight <= 0 {
		return nil, ErrInvalidInput
	}
	entry := &domain.WeightEntry{
		StudentID: studentID,
		Weight:    weight,
	}
	entryID, err := s.weightRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

func (s *studentService) GetWeightHistory(ctx context.Context, studentID primitive.ObjectID) (*WeightHistory, error) {
	entries, err := s.weightRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &WeightHistory{
		Entries: entries,
		Summary: projection.DeriveWeightSummary(entries),
	}, nil
}

// --- Load ---

// LogLoad records a lift load against one of the student's own exercises.
func (s *studentService) LogLoad(ctx context.Context, studentID, exerciseID primitive.ObjectID, load float64) (*domain.LoadEntry, error) {
	if load <= 0 {
		return nil, ErrInvalidInput
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.StudentID != studentID {
		return nil, ErrExerciseNotFound
	}

	entry := &domain.LoadEntry{
		StudentID:  studentID,
		ExerciseID: exerciseID,
		Load:       load,
	}
	entryID, err := s.loadRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// GetLoadHistory returns per-exercise load series with resolved names.
func (s *studentService) GetLoadHistory(ctx context.Context, studentID primitive.ObjectID) (map[string][]projection.LoadPoint, error) {
	loads, err := s.loadRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return projection.BuildLoadSeries(loads, projection.ExerciseNameLookup(exercises)), nil
}

// --- Weekly views ---

func (s *studentService) GetTrainingWeek(ctx context.Context, studentID primitive.ObjectID) (*TrainingWeek, error) {
	plans, err := s.planRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &TrainingWeek{Days: projection.GroupPlansByWeekday(plans, exercises)}, nil
}

func (s *studentService) GetDietWeek(ctx context.Context, studentID primitive.ObjectID) (*DietWeek, error) {
	meals, err := s.mealRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &DietWeek{Days: projection.GroupMealsByWeekday(meals)}, nil
}

// --- Notices ---

func (s *studentService) GetNotices(ctx context.Context, studentID primitive.ObjectID) (*NoticeBoard, error) {
	notices, err := s.noticeRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &NoticeBoard{
		Notices: notices,
		Counts:  projection.DeriveNoticeCounts(notices, domain.RoleStudent),
	}, nil
}

func (s *studentService) MarkNoticeRead(ctx context.Context, studentID, noticeID primitive.ObjectID) error {
	err := s.noticeRepo.MarkRead(ctx, noticeID, studentID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotNoticeOwner
	}
	return err
}

// SendNotice lets a student post to their own board; the linked
// professional sees it from the other side. Student notices always carry
// normal severity; only the professional changes severity.
func (s *studentService) SendNotice(ctx context.Context, studentID primitive.ObjectID, message string) (*domain.Notice, error) {
	if message == "" {
		return nil, ErrInvalidInput
	}
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.ProfessionalID == nil {
		return nil, ErrNotLinked
	}

	notice := &domain.Notice{
		ProfessionalID: *student.ProfessionalID,
		StudentID:      studentID,
		AuthorID:       studentID,
		Message:        message,
		Severity:       domain.SeverityNormal,
	}
	noticeID, err := s.noticeRepo.Create(ctx, notice)
	if err != nil {
		return nil, err
	}
	notice.ID = noticeID
	return notice, nil
}

// DeleteOwnNotice removes a notice the student authored themselves.
func (s *studentService) DeleteOwnNotice(ctx context.Context, studentID, noticeID primitive.ObjectID) error {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	if notice.StudentID != studentID {
		return ErrNotNoticeOwner
	}
	if notice.AuthorID != studentID {
		return ErrNotAuthor
	}
	return s.noticeRepo.Delete(ctx, notice.ID)
}
