package projection

import (
	"testing"
	"time"

	"fittrack/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func meal(day domain.Weekday, timeOfDay string) domain.Meal {
	return domain.Meal{
		ID:       primitive.NewObjectID(),
		Weekday:  day,
		MealType: domain.MealBreakfast,
		Time:     timeOfDay,
	}
}

func TestGroupMealsByWeekdayCanonicalOrder(t *testing.T) {
	// deliberately shuffled input: Sunday, Wednesday, Monday
	meals := []domain.Meal{
		meal(domain.Sunday, "09:00"),
		meal(domain.Wednesday, "12:30"),
		meal(domain.Monday, "20:00"),
		meal(domain.Monday, "07:15"),
	}

	groups := GroupMealsByWeekday(meals)
	require.Len(t, groups, 7)

	for i, day := range domain.WeekdayOrder {
		assert.Equal(t, day, groups[i].Weekday)
	}

	// Monday's meals sorted by time of day
	require.Len(t, groups[0].Meals, 2)
	assert.Equal(t, "07:15", groups[0].Meals[0].Time)
	assert.Equal(t, "20:00", groups[0].Meals[1].Time)

	// empty weekdays still present, with empty (not nil-length) groups
	assert.Empty(t, groups[1].Meals) // Tuesday
	assert.Len(t, groups[2].Meals, 1)
	assert.Empty(t, groups[3].Meals)
	assert.Empty(t, groups[4].Meals)
	assert.Empty(t, groups[5].Meals)
	assert.Len(t, groups[6].Meals, 1)
}

func TestGroupMealsByWeekdayDoesNotMutateInput(t *testing.T) {
	meals := []domain.Meal{
		meal(domain.Monday, "20:00"),
		meal(domain.Monday, "07:15"),
	}

	_ = GroupMealsByWeekday(meals)

	assert.Equal(t, "20:00", meals[0].Time)
	assert.Equal(t, "07:15", meals[1].Time)
}

func TestGroupMealsByWeekdayEmpty(t *testing.T) {
	groups := GroupMealsByWeekday(nil)
	require.Len(t, groups, 7)
	for _, g := range groups {
		assert.Empty(t, g.Meals)
	}
}

func TestGroupPlansByWeekday(t *testing.T) {
	mondayPlan := domain.WorkoutPlan{
		ID:          primitive.NewObjectID(),
		Weekday:     domain.Monday,
		WorkoutType: "Upper Body",
	}
	fridayPlan := domain.WorkoutPlan{
		ID:          primitive.NewObjectID(),
		Weekday:     domain.Friday,
		WorkoutType: "Legs",
	}
	bench := domain.Exercise{ID: primitive.NewObjectID(), PlanID: mondayPlan.ID, Name: "Bench Press", Sets: 3, Reps: "10"}
	squat := domain.Exercise{ID: primitive.NewObjectID(), PlanID: fridayPlan.ID, Name: "Squat", Sets: 4, Reps: "8-12"}

	week := GroupPlansByWeekday(
		[]domain.WorkoutPlan{fridayPlan, mondayPlan},
		[]domain.Exercise{squat, bench},
	)
	require.Len(t, week, 7)

	assert.Equal(t, domain.Monday, week[0].Weekday)
	require.NotNil(t, week[0].Plan)
	assert.Equal(t, "Upper Body", week[0].Plan.WorkoutType)
	require.Len(t, week[0].Exercises, 1)
	assert.Equal(t, "Bench Press", week[0].Exercises[0].Name)

	assert.Nil(t, week[1].Plan)
	assert.Empty(t, week[1].Exercises)

	require.NotNil(t, week[4].Plan)
	assert.Equal(t, "Legs", week[4].Plan.WorkoutType)
	require.Len(t, week[4].Exercises, 1)
	assert.Equal(t, "Squat", week[4].Exercises[0].Name)
}

func weightAt(at time.Time, kg float64) domain.WeightEntry {
	return domain.WeightEntry{
		ID:        primitive.NewObjectID(),
		Weight:    kg,
		CreatedAt: at,
	}
}

func TestDeriveWeightSummaryEmpty(t *testing.T) {
	summary := DeriveWeightSummary(nil)
	assert.Nil(t, summary.Current)
	assert.Nil(t, summary.Initial)
	assert.False(t, summary.DeltaDefined)
}

func TestDeriveWeightSummarySingleEntry(t *testing.T) {
	summary := DeriveWeightSummary([]domain.WeightEntry{
		weightAt(time.Now(), 70),
	})

	require.NotNil(t, summary.Current)
	require.NotNil(t, summary.Initial)
	assert.Equal(t, 70.0, *summary.Current)
	assert.Equal(t, 70.0, *summary.Initial)
	// one entry: delta is a defined zero, not "no data"
	assert.True(t, summary.DeltaDefined)
	assert.Equal(t, 0.0, summary.Delta)
}

func TestDeriveWeightSummaryOutOfOrderInput(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)

	// later entry fetched first
	summary := DeriveWeightSummary([]domain.WeightEntry{
		weightAt(t2, 72),
		weightAt(t1, 70),
	})

	require.NotNil(t, summary.Current)
	require.NotNil(t, summary.Initial)
	assert.Equal(t, 72.0, *summary.Current)
	assert.Equal(t, 70.0, *summary.Initial)
	assert.True(t, summary.DeltaDefined)
	assert.InDelta(t, 2.0, summary.Delta, 1e-9)
}

func TestDeriveWeightSummaryDoesNotMutateInput(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)
	entries := []domain.WeightEntry{weightAt(t2, 72), weightAt(t1, 70)}

	_ = DeriveWeightSummary(entries)

	assert.Equal(t, 72.0, entries[0].Weight)
	assert.Equal(t, 70.0, entries[1].Weight)
}

func loadAt(exerciseID primitive.ObjectID, at time.Time, kg float64) domain.LoadEntry {
	return domain.LoadEntry{
		ID:         primitive.NewObjectID(),
		ExerciseID: exerciseID,
		Load:       kg,
		CreatedAt:  at,
	}
}

func TestBuildLoadSeriesSortsUnconditionally(t *testing.T) {
	benchID := primitive.NewObjectID()
	t1 := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 4, 3, 18, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC)

	// fetch order deliberately scrambled
	series := BuildLoadSeries(
		[]domain.LoadEntry{
			loadAt(benchID, t3, 50),
			loadAt(benchID, t1, 40),
			loadAt(benchID, t2, 45),
		},
		map[primitive.ObjectID]string{benchID: "Bench Press"},
	)

	points := series["Bench Press"]
	require.Len(t, points, 3)
	assert.Equal(t, 40.0, points[0].Load)
	assert.Equal(t, 45.0, points[1].Load)
	assert.Equal(t, 50.0, points[2].Load)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].At, points[i].At)
	}
}

func TestBuildLoadSeriesNamesJoinVerbatim(t *testing.T) {
	upper := primitive.NewObjectID()
	lower := primitive.NewObjectID()
	now := time.Now()

	series := BuildLoadSeries(
		[]domain.LoadEntry{
			loadAt(upper, now, 60),
			loadAt(lower, now.Add(time.Hour), 65),
		},
		map[primitive.ObjectID]string{
			upper: "Squat",
			lower: "squat", // different case, no normalization: distinct series
		},
	)

	require.Len(t, series, 2)
	assert.Len(t, series["Squat"], 1)
	assert.Len(t, series["squat"], 1)
}

func TestBuildLoadSeriesUnresolvedExercise(t *testing.T) {
	series := BuildLoadSeries(
		[]domain.LoadEntry{loadAt(primitive.NewObjectID(), time.Now(), 30)},
		nil,
	)

	require.Len(t, series, 1)
	assert.Len(t, series[UnknownExerciseName], 1)
}

func TestBuildLoadSeriesEmpty(t *testing.T) {
	series := BuildLoadSeries(nil, nil)
	assert.Empty(t, series)
	assert.NotNil(t, series)
}

func TestDeriveNoticeCounts(t *testing.T) {
	notices := []domain.Notice{
		{Read: true},
		{Read: false},
		{Read: false},
	}

	student := DeriveNoticeCounts(notices, domain.RoleStudent)
	assert.Equal(t, 3, student.Total)
	assert.Equal(t, 2, student.Unread)
	assert.True(t, student.HasUnread)

	// unread has no meaning for the professional viewer
	pro := DeriveNoticeCounts(notices, domain.RoleProfessional)
	assert.Equal(t, 3, pro.Total)
	assert.Equal(t, 0, pro.Unread)
	assert.False(t, pro.HasUnread)

	empty := DeriveNoticeCounts(nil, domain.RoleStudent)
	assert.Equal(t, 0, empty.Total)
	assert.False(t, empty.HasUnread)
}

func TestExerciseNameLookup(t *testing.T) {
	bench := domain.Exercise{ID: primitive.NewObjectID(), Name: "Bench Press"}
	squat := domain.Exercise{ID: primitive.NewObjectID(), Name: "Squat"}

	lookup := ExerciseNameLookup([]domain.Exercise{bench, squat})
	assert.Equal(t, "Bench Press", lookup[bench.ID])
	assert.Equal(t, "Squat", lookup[squat.ID])
}
