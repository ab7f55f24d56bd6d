package service

import (
	"context"
	"testing"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	users     *stubUserRepo
	weights   *stubWeightRepo
	plans     *stubPlanRepo
	exercises *stubExerciseRepo
	loads     *stubLoadRepo
	meals     *stubMealRepo
	notices   *stubNoticeRepo

	professionals ProfessionalService
	students      StudentService

	proID primitive.ObjectID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     newStubUserRepo(),
		weights:   &stubWeightRepo{},
		plans:     newStubPlanRepo(),
		exercises: newStubExerciseRepo(),
		loads:     &stubLoadRepo{},
		meals:     newStubMealRepo(),
		notices:   newStubNoticeRepo(),
	}
	f.professionals = NewProfessionalService(f.users, f.plans, f.exercises, f.meals, f.notices)
	f.students = NewStudentService(f.users, f.weights, f.plans, f.exercises, f.loads, f.meals, f.notices)

	proID, err := f.users.Create(context.Background(), &domain.User{
		Name:  "Coach",
		Email: "coach@example.com",
		Role:  domain.RoleProfessional,
	})
	require.NoError(t, err)
	f.proID = proID
	return f
}

func (f *fixture) registerStudent(t *testing.T, name, email string) primitive.ObjectID {
	t.Helper()
	id, err := f.users.Create(context.Background(), &domain.User{
		Name:  name,
		Email: email,
		Role:  domain.RoleStudent,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) linkStudent(t *testing.T, email string) primitive.ObjectID {
	t.Helper()
	student, err := f.professionals.AddStudentByEmail(context.Background(), f.proID, email)
	require.NoError(t, err)
	return student.ID
}

func TestAddStudentByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")

	student, err := f.professionals.AddStudentByEmail(ctx, f.proID, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.Name)
	require.NotNil(t, student.ProfessionalID)
	assert.Equal(t, f.proID, *student.ProfessionalID)

	roster, err := f.professionals.GetStudents(ctx, f.proID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Empty(t, roster[0].PasswordHash)
}

func TestAddStudentByEmailFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")

	_, err := f.professionals.AddStudentByEmail(ctx, f.proID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = f.professionals.AddStudentByEmail(ctx, f.proID, "coach@example.com")
	assert.ErrorIs(t, err, ErrNotAStudent)

	f.linkStudent(t, "ana@example.com")
	otherPro, err := f.users.Create(ctx, &domain.User{
		Name: "Rival", Email: "rival@example.com", Role: domain.RoleProfessional,
	})
	require.NoError(t, err)
	_, err = f.professionals.AddStudentByEmail(ctx, otherPro, "ana@example.com")
	assert.ErrorIs(t, err, ErrStudentAlreadyLinked)
}

func TestRemoveStudentClearsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	require.NoError(t, f.professionals.RemoveStudent(ctx, f.proID, ana))

	roster, err := f.professionals.GetStudents(ctx, f.proID)
	require.NoError(t, err)
	assert.Empty(t, roster)

	student, err := f.users.GetByID(ctx, ana)
	require.NoError(t, err)
	assert.Nil(t, student.ProfessionalID)

	// unlinked student can join another professional again
	_, err = f.professionals.AddStudentByEmail(ctx, f.proID, "ana@example.com")
	assert.NoError(t, err)
}

func TestUpdateStudentSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	goal := "cutting"
	target := 62.5
	status := domain.StatusOnLeave
	err := f.professionals.UpdateStudentSettings(ctx, f.proID, ana, repository.StudentSettings{
		Goal: &goal, TargetWeight: &target, Status: &status,
	})
	require.NoError(t, err)

	student, err := f.users.GetByID(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, "cutting", student.Goal)
	require.NotNil(t, student.TargetWeight)
	assert.Equal(t, 62.5, *student.TargetWeight)
	assert.Equal(t, domain.StatusOnLeave, student.Status)

	bogus := domain.StudentStatus("vanished")
	err = f.professionals.UpdateStudentSettings(ctx, f.proID, ana, repository.StudentSettings{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.professionals.UpdateStudentSettings(ctx, f.proID, primitive.NewObjectID(), repository.StudentSettings{Goal: &goal})
	assert.ErrorIs(t, err, ErrStudentNotLinked)
}

func TestCreatePlanReplacesSameWeekday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	first, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Monday, "Upper Body")
	require.NoError(t, err)
	_, err = f.professionals.AddExercise(ctx, f.proID, first.ID, "Bench Press", 3, "10")
	require.NoError(t, err)

	// assigning Monday again replaces the plan and drops its exercises
	second, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Monday, "Legs")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	plans, err := f.professionals.GetPlans(ctx, f.proID, ana)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Legs", plans[0].WorkoutType)

	orphans, err := f.exercises.GetByPlanID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestDeletePlanCascadesExercises(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	plan, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Tuesday, "Pull")
	require.NoError(t, err)
	_, err = f.professionals.AddExercise(ctx, f.proID, plan.ID, "Deadlift", 5, "5")
	require.NoError(t, err)

	require.NoError(t, f.professionals.DeletePlan(ctx, f.proID, plan.ID))

	remaining, err := f.exercises.GetByStudentID(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestExerciseValidationAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")
	plan, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Wednesday, "Push")
	require.NoError(t, err)

	_, err = f.professionals.AddExercise(ctx, f.proID, plan.ID, "", 3, "10")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.professionals.AddExercise(ctx, f.proID, plan.ID, "Dips", 0, "10")
	assert.ErrorIs(t, err, ErrInvalidInput)

	ex, err := f.professionals.AddExercise(ctx, f.proID, plan.ID, "Dips", 3, "12")
	require.NoError(t, err)

	updated, err := f.professionals.UpdateExercise(ctx, f.proID, ex.ID, "Weighted Dips", 4, "8")
	require.NoError(t, err)
	assert.Equal(t, "Weighted Dips", updated.Name)
	assert.Equal(t, 4, updated.Sets)

	// an unrelated professional cannot touch the exercise
	rival, err := f.users.Create(ctx, &domain.User{
		Name: "Rival", Email: "rival2@example.com", Role: domain.RoleProfessional,
	})
	require.NoError(t, err)
	_, err = f.professionals.UpdateExercise(ctx, rival, ex.ID, "Stolen", 1, "1")
	assert.ErrorIs(t, err, ErrStudentNotLinked)
}

func TestMealLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	_, err := f.professionals.AddMeal(ctx, f.proID, ana, domain.Monday, domain.MealBreakfast, "8:00", "oats")
	assert.ErrorIs(t, err, ErrInvalidInput, "time must be zero-padded")
	_, err = f.professionals.AddMeal(ctx, f.proID, ana, domain.Monday, domain.MealType("brunch"), "08:00", "oats")
	assert.ErrorIs(t, err, ErrInvalidInput)

	meal, err := f.professionals.AddMeal(ctx, f.proID, ana, domain.Monday, domain.MealBreakfast, "08:00", "oats")
	require.NoError(t, err)

	updated, err := f.professionals.UpdateMeal(ctx, f.proID, meal.ID, domain.MealBreakfast, "07:30", "oats and eggs")
	require.NoError(t, err)
	assert.Equal(t, "07:30", updated.Time)

	require.NoError(t, f.professionals.DeleteMeal(ctx, f.proID, meal.ID))
	meals, err := f.professionals.GetMeals(ctx, f.proID, ana)
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestNoticeLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	notice, err := f.professionals.SendNotice(ctx, f.proID, ana, "Drink water", domain.SeverityImportant)
	require.NoError(t, err)
	assert.False(t, notice.Read)

	require.NoError(t, f.professionals.ChangeNoticeSeverity(ctx, f.proID, notice.ID, domain.SeverityUrgent))

	stored, err := f.notices.GetByID(ctx, notice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityUrgent, stored.Severity)

	require.NoError(t, f.professionals.DeleteNotice(ctx, f.proID, notice.ID))
	_, err = f.notices.GetByID(ctx, notice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
