package service

import (
	"context"
	"testing"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLogWeightAndSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	_, err := f.students.LogWeight(ctx, ana, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.students.LogWeight(ctx, ana, 70)
	require.NoError(t, err)
	_, err = f.students.LogWeight(ctx, ana, 68.5)
	require.NoError(t, err)

	history, err := f.students.GetWeightHistory(ctx, ana)
	require.NoError(t, err)
	require.Len(t, history.Entries, 2)
	require.True(t, history.Summary.DeltaDefined)
	assert.Equal(t, 70.0, *history.Summary.Initial)
	assert.Equal(t, 68.5, *history.Summary.Current)
	assert.InDelta(t, -1.5, history.Summary.Delta, 1e-9)
}

func TestLogLoadRequiresOwnExercise(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	f.registerStudent(t, "Bruno", "bruno@example.com")
	ana := f.linkStudent(t, "ana@example.com")
	bruno := f.linkStudent(t, "bruno@example.com")

	plan, err := f.professionals.CreatePlan(ctx, f.proID, bruno, domain.Monday, "Push")
	require.NoError(t, err)
	brunosExercise, err := f.professionals.AddExercise(ctx, f.proID, plan.ID, "Bench Press", 3, "10")
	require.NoError(t, err)

	// ana cannot log against bruno's exercise
	_, err = f.students.LogLoad(ctx, ana, brunosExercise.ID, 40)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	_, err = f.students.LogLoad(ctx, bruno, brunosExercise.ID, 40)
	assert.NoError(t, err)
}

func TestTrainingWeekView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	plan, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Friday, "Full Body")
	require.NoError(t, err)
	_, err = f.professionals.AddExercise(ctx, f.proID, plan.ID, "Squat", 5, "5")
	require.NoError(t, err)

	week, err := f.students.GetTrainingWeek(ctx, ana)
	require.NoError(t, err)
	require.Len(t, week.Days, 7)
	assert.Equal(t, domain.Monday, week.Days[0].Weekday)
	assert.Equal(t, domain.Sunday, week.Days[6].Weekday)

	friday := week.Days[4]
	require.NotNil(t, friday.Plan)
	assert.Equal(t, "Full Body", friday.Plan.WorkoutType)
	require.Len(t, friday.Exercises, 1)
	assert.Equal(t, "Squat", friday.Exercises[0].Name)
}

func TestDietWeekSortsByTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	_, err := f.professionals.AddMeal(ctx, f.proID, ana, domain.Monday, domain.MealLunch, "12:30", "chicken and rice")
	require.NoError(t, err)
	_, err = f.professionals.AddMeal(ctx, f.proID, ana, domain.Monday, domain.MealBreakfast, "08:00", "oats")
	require.NoError(t, err)

	week, err := f.students.GetDietWeek(ctx, ana)
	require.NoError(t, err)
	monday := week.Days[0]
	require.Len(t, monday.Meals, 2)
	assert.Equal(t, "08:00", monday.Meals[0].Time)
	assert.Equal(t, "12:30", monday.Meals[1].Time)
}

func TestNoticeBoardReadFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	notice, err := f.professionals.SendNotice(ctx, f.proID, ana, "Sleep more", domain.SeverityNormal)
	require.NoError(t, err)

	board, err := f.students.GetNotices(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Counts.Total)
	assert.Equal(t, 1, board.Counts.Unread)
	assert.True(t, board.Counts.HasUnread)

	// another student cannot mark it read
	assert.ErrorIs(t, f.students.MarkNoticeRead(ctx, primitive.NewObjectID(), notice.ID), ErrNotNoticeOwner)

	require.NoError(t, f.students.MarkNoticeRead(ctx, ana, notice.ID))
	board, err = f.students.GetNotices(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 0, board.Counts.Unread)
	assert.False(t, board.Counts.HasUnread)
}

func TestStudentNoticeAuthorship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	fromCoach, err := f.professionals.SendNotice(ctx, f.proID, ana, "Check in Friday", domain.SeverityNormal)
	require.NoError(t, err)
	fromAna, err := f.students.SendNotice(ctx, ana, "Knee feels off")
	require.NoError(t, err)

	// students delete only what they authored
	assert.ErrorIs(t, f.students.DeleteOwnNotice(ctx, ana, fromCoach.ID), ErrNotAuthor)
	assert.NoError(t, f.students.DeleteOwnNotice(ctx, ana, fromAna.ID))

	// unlinked students cannot post at all
	f.registerStudent(t, "Carla", "carla@example.com")
	carla, err := f.users.GetByEmail(ctx, "carla@example.com")
	require.NoError(t, err)
	_, err = f.students.SendNotice(ctx, carla.ID, "hello?")
	assert.ErrorIs(t, err, ErrNotLinked)
}

func TestStudentNoticesAlwaysNormalSeverity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	// students have no say in severity
	fromAna, err := f.students.SendNotice(ctx, ana, "Knee feels off")
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityNormal, fromAna.Severity)

	// raising severity stays a professional operation
	require.NoError(t, f.professionals.ChangeNoticeSeverity(ctx, f.proID, fromAna.ID, domain.SeverityUrgent))
	board, err := f.students.GetNotices(ctx, ana)
	require.NoError(t, err)
	require.Len(t, board.Notices, 1)
	assert.Equal(t, domain.SeverityUrgent, board.Notices[0].Severity)
}

// TestFreshStudentOnboarding walks the first week of a newly linked student:
// empty state first, then plan, exercise and load logging, verifying each
// derived view along the way.
func TestFreshStudentOnboarding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerStudent(t, "Ana", "ana@example.com")
	ana := f.linkStudent(t, "ana@example.com")

	// freshly linked: all views empty, nothing derived
	history, err := f.students.GetWeightHistory(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, history.Entries)
	assert.Nil(t, history.Summary.Current)
	assert.Nil(t, history.Summary.Initial)
	assert.False(t, history.Summary.DeltaDefined)

	board, err := f.students.GetNotices(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 0, board.Counts.Total)

	series, err := f.students.GetLoadHistory(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, series)

	// the professional sets up Monday
	plan, err := f.professionals.CreatePlan(ctx, f.proID, ana, domain.Monday, "Upper Body")
	require.NoError(t, err)
	bench, err := f.professionals.AddExercise(ctx, f.proID, plan.ID, "Bench Press", 3, "10")
	require.NoError(t, err)

	// ana trains twice and logs her loads
	_, err = f.students.LogLoad(ctx, ana, bench.ID, 40)
	require.NoError(t, err)
	_, err = f.students.LogLoad(ctx, ana, bench.ID, 45)
	require.NoError(t, err)

	series, err = f.students.GetLoadHistory(ctx, ana)
	require.NoError(t, err)
	require.Contains(t, series, "Bench Press")
	points := series["Bench Press"]
	require.Len(t, points, 2)
	assert.Equal(t, 40.0, points[0].Load)
	assert.Equal(t, 45.0, points[1].Load)
	assert.Less(t, int64(points[0].At), int64(points[1].At), "series ascends chronologically")

	// weight summary still absent until she logs weight
	history, err = f.students.GetWeightHistory(ctx, ana)
	require.NoError(t, err)
	assert.False(t, history.Summary.DeltaDefined)

	// renaming the exercise moves the series to the new name
	_, err = f.professionals.UpdateExercise(ctx, f.proID, bench.ID, "Incline Bench", 3, "10")
	require.NoError(t, err)
	series, err = f.students.GetLoadHistory(ctx, ana)
	require.NoError(t, err)
	assert.NotContains(t, series, "Bench Press")
	require.Contains(t, series, "Incline Bench")
	assert.Len(t, series["Incline Bench"], 2)

	// deleting the plan cascades; orphaned loads fall under the placeholder
	require.NoError(t, f.professionals.DeletePlan(ctx, f.proID, plan.ID))
	series, err = f.students.GetLoadHistory(ctx, ana)
	require.NoError(t, err)
	require.Contains(t, series, projection.UnknownExerciseName)
	assert.Len(t, series[projection.UnknownExerciseName], 2)
}
