package service

import (
	"context"
	"errors"
	"time"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository stubs. They mirror the persistence contracts closely
// enough for service-level tests: generated ids, creation timestamps and
// owner-scoped deletes.

type stubUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email and role are required")
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) AddStudentToProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	pro, ok := r.users[professionalID]
	if !ok {
		return repository.ErrNotFound
	}
	pro.StudentIDs = append(pro.StudentIDs, studentID)
	return nil
}

func (r *stubUserRepo) RemoveStudentFromProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	pro, ok := r.users[professionalID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := pro.StudentIDs[:0]
	for _, id := range pro.StudentIDs {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	pro.StudentIDs = kept
	return nil
}

func (r *stubUserRepo) SetProfessionalForStudent(ctx context.Context, studentID, professionalID primitive.ObjectID) error {
	student, ok := r.users[studentID]
	if !ok {
		return repository.ErrNotFound
	}
	student.ProfessionalID = &professionalID
	return nil
}

func (r *stubUserRepo) ClearProfessionalForStudent(ctx context.Context, studentID primitive.ObjectID) error {
	student, ok := r.users[studentID]
	if !ok {
		return repository.ErrNotFound
	}
	student.ProfessionalID = nil
	return nil
}

func (r *stubUserRepo) GetStudentsByProfessionalID(ctx context.Context, professionalID primitive.ObjectID) ([]domain.User, error) {
	pro, ok := r.users[professionalID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	students := []domain.User{}
	for _, id := range pro.StudentIDs {
		if s, ok := r.users[id]; ok {
			students = append(students, *s)
		}
	}
	return students, nil
}

func (r *stubUserRepo) UpdateStudentSettings(ctx context.Context, studentID primitive.ObjectID, settings repository.StudentSettings) error {
	student, ok := r.users[studentID]
	if !ok {
		return repository.ErrNotFound
	}
	if settings.Goal != nil {
		student.Goal = *settings.Goal
	}
	if settings.TargetWeight != nil {
		w := *settings.TargetWeight
		student.TargetWeight = &w
	}
	if settings.Status != nil {
		student.Status = *settings.Status
	}
	return nil
}

type stubWeightRepo struct {
	entries []domain.WeightEntry
	clock   time.Time
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (r *stubWeightRepo) tick() time.Time {
	if r.clock.IsZero() {
		r.clock = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	}
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *stubWeightRepo) Create(ctx context.Context, entry *domain.WeightEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = r.tick()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *stubWeightRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.WeightEntry, error) {
	out := []domain.WeightEntry{}
	for _, e := range r.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPlanRepo struct {
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (r *stubPlanRepo) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	clone := *plan
	r.plans[plan.ID] = &clone
	return plan.ID, nil
}

func (r *stubPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPlanRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) GetByStudentAndWeekday(ctx context.Context, studentID primitive.ObjectID, weekday domain.Weekday) (*domain.WorkoutPlan, error) {
	for _, p := range r.plans {
		if p.StudentID == studentID && p.Weekday == weekday {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubPlanRepo) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *plan
	clone.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = &clone
	return nil
}

func (r *stubPlanRepo) Delete(ctx context.Context, id, studentID primitive.ObjectID) error {
	p, ok := r.plans[id]
	if !ok || p.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type stubExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newStubExerciseRepo() *stubExerciseRepo {
	return &stubExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *stubExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()
	exercise.UpdatedAt = exercise.CreatedAt
	clone := *exercise
	r.exercises[exercise.ID] = &clone
	return exercise.ID, nil
}

func (r *stubExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubExerciseRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.PlanID == planID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExerciseRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *exercise
	clone.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = &clone
	return nil
}

func (r *stubExerciseRepo) Delete(ctx context.Context, id, studentID primitive.ObjectID) error {
	e, ok := r.exercises[id]
	if !ok || e.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *stubExerciseRepo) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	for id, e := range r.exercises {
		if e.PlanID == planID {
			delete(r.exercises, id)
		}
	}
	return nil
}

type stubLoadRepo struct {
	entries []domain.LoadEntry
	clock   time.Time
}

func (r *stubLoadRepo) tick() time.Time {
	if r.clock.IsZero() {
		r.clock = time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	}
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *stubLoadRepo) Create(ctx context.Context, entry *domain.LoadEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = r.tick()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *stubLoadRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.LoadEntry, error) {
	out := []domain.LoadEntry{}
	for _, e := range r.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubMealRepo struct {
	meals map[primitive.ObjectID]*domain.Meal
}

func newStubMealRepo() *stubMealRepo {
	return &stubMealRepo{meals: make(map[primitive.ObjectID]*domain.Meal)}
}

func (r *stubMealRepo) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	meal.ID = primitive.NewObjectID()
	meal.CreatedAt = time.Now().UTC()
	meal.UpdatedAt = meal.CreatedAt
	clone := *meal
	r.meals[meal.ID] = &clone
	return meal.ID, nil
}

func (r *stubMealRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	m, ok := r.meals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMealRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for _, m := range r.meals {
		if m.StudentID == studentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMealRepo) Update(ctx context.Context, meal *domain.Meal) error {
	if _, ok := r.meals[meal.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *meal
	clone.UpdatedAt = time.Now().UTC()
	r.meals[meal.ID] = &clone
	return nil
}

func (r *stubMealRepo) Delete(ctx context.Context, id, studentID primitive.ObjectID) error {
	m, ok := r.meals[id]
	if !ok || m.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}

type stubNoticeRepo struct {
	notices map[primitive.ObjectID]*domain.Notice
}

func newStubNoticeRepo() *stubNoticeRepo {
	return &stubNoticeRepo{notices: make(map[primitive.ObjectID]*domain.Notice)}
}

func (r *stubNoticeRepo) Create(ctx context.Context, notice *domain.Notice) (primitive.ObjectID, error) {
	notice.ID = primitive.NewObjectID()
	notice.CreatedAt = time.Now().UTC()
	clone := *notice
	r.notices[notice.ID] = &clone
	return notice.ID, nil
}

func (r *stubNoticeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoticeRepo) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Notice, error) {
	out := []domain.Notice{}
	for _, n := range r.notices {
		if n.StudentID == studentID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNoticeRepo) UpdateSeverity(ctx context.Context, id primitive.ObjectID, severity domain.NoticeSeverity) error {
	n, ok := r.notices[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.Severity = severity
	return nil
}

func (r *stubNoticeRepo) MarkRead(ctx context.Context, id, studentID primitive.ObjectID) error {
	n, ok := r.notices[id]
	if !ok || n.StudentID != studentID {
		return repository.ErrNotFound
	}
	n.Read = true
	return nil
}

func (r *stubNoticeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.notices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notices, id)
	return nil
}
