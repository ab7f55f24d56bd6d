// Package projection turns flat, already-fetched entity collections into the
// grouped and derived shapes the presentation layer consumes. All functions
// are pure: they tolerate empty input, never mutate their arguments, and can
// be re-run at any time against the current in-memory collections.
package projection

import (
	"sort"

	"fittrack/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownExerciseName is used when a load entry references an exercise id the
// name lookup cannot resolve (e.g. the exercise was deleted after logging).
const UnknownExerciseName = "Exercise"

// WeekdayMeals is one day of a diet plan, meals sorted by time of day.
type WeekdayMeals struct {
	Weekday domain.Weekday `json:"weekday"`
	Meals   []domain.Meal  `json:"meals"`
}

// WeekdayTraining is one day of a training week: the day's plan (nil when the
// professional hasn't assigned one) and its exercises.
type WeekdayTraining struct {
	Weekday   domain.Weekday      `json:"weekday"`
	Plan      *domain.WorkoutPlan `json:"plan,omitempty"`
	Exercises []domain.Exercise   `json:"exercises"`
}

// WeightSummary is the derived body-weight state of one student.
//
// Current and Initial are nil when there are no entries. DeltaDefined
// distinguishes "one entry, delta is exactly zero" from "no entries, delta
// undefined": a single sample yields DeltaDefined=true with Delta=0.
type WeightSummary struct {
	Current      *float64 `json:"current,omitempty"`
	Initial      *float64 `json:"initial,omitempty"`
	Delta        float64  `json:"delta"`
	DeltaDefined bool     `json:"deltaDefined"`
}

// LoadPoint is one sample of a per-exercise load progression series.
type LoadPoint struct {
	At   primitive.DateTime `json:"at"`
	Load float64            `json:"load"`
}

// NoticeCounts summarizes a relationship's notices for one viewer.
// Unread is meaningful only when the viewer is the student; for a
// professional viewer it is always zero and HasUnread is false.
type NoticeCounts struct {
	Total     int  `json:"total"`
	Unread    int  `json:"unread"`
	HasUnread bool `json:"hasUnread"`
}

// GroupMealsByWeekday groups meals into the canonical Monday..Sunday order,
// sorting each day's meals lexicographically by their zero-padded "HH:MM"
// time. Every weekday appears in the output; days with no meals carry an
// empty slice (the caller suppresses them from rendering).
func GroupMealsByWeekday(meals []domain.Meal) []WeekdayMeals {
	byDay := make(map[domain.Weekday][]domain.Meal, len(domain.WeekdayOrder))
	for _, meal := range meals {
		byDay[meal.Weekday] = append(byDay[meal.Weekday], meal)
	}

	groups := make([]WeekdayMeals, 0, len(domain.WeekdayOrder))
	for _, day := range domain.WeekdayOrder {
		dayMeals := make([]domain.Meal, len(byDay[day]))
		copy(dayMeals, byDay[day])
		sort.SliceStable(dayMeals, func(i, j int) bool {
			return dayMeals[i].Time < dayMeals[j].Time
		})
		groups = append(groups, WeekdayMeals{Weekday: day, Meals: dayMeals})
	}
	return groups
}

// GroupPlansByWeekday builds the weekly training view: for each canonical
// weekday, the student's plan (if any) and the exercises belonging to it,
// in creation order. When duplicate plans exist for one weekday the first
// fetched wins, matching the observed source behavior.
func GroupPlansByWeekday(plans []domain.WorkoutPlan, exercises []domain.Exercise) []WeekdayTraining {
	planByDay := make(map[domain.Weekday]*domain.WorkoutPlan, len(plans))
	for i := range plans {
		if _, taken := planByDay[plans[i].Weekday]; !taken {
			plan := plans[i] // copy, inputs stay untouched
			planByDay[plans[i].Weekday] = &plan
		}
	}

	byPlan := make(map[primitive.ObjectID][]domain.Exercise, len(plans))
	for _, ex := range exercises {
		byPlan[ex.PlanID] = append(byPlan[ex.PlanID], ex)
	}

	week := make([]WeekdayTraining, 0, len(domain.WeekdayOrder))
	for _, day := range domain.WeekdayOrder {
		entry := WeekdayTraining{Weekday: day, Exercises: []domain.Exercise{}}
		if plan := planByDay[day]; plan != nil {
			entry.Plan = plan
			entry.Exercises = append(entry.Exercises, byPlan[plan.ID]...)
		}
		week = append(week, entry)
	}
	return week
}

// DeriveWeightSummary computes current/initial weight and their delta from a
// possibly unordered set of entries. Entries are sorted ascending by creation
// timestamp (id as tiebreaker) before first/last are taken; display order is
// never trusted.
func DeriveWeightSummary(entries []domain.WeightEntry) WeightSummary {
	if len(entries) == 0 {
		return WeightSummary{}
	}

	sorted := make([]domain.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID.Hex() < sorted[j].ID.Hex()
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	initial := sorted[0].Weight
	current := sorted[len(sorted)-1].Weight
	return WeightSummary{
		Current:      &current,
		Initial:      &initial,
		Delta:        current - initial,
		DeltaDefined: true,
	}
}

// BuildLoadSeries maps each exercise name to its chronologically ascending
// load progression. Names resolve through the provided lookup; entries whose
// exercise id is missing from the lookup fall under UnknownExerciseName.
// Names join verbatim: duplicate ids resolving to the same string collapse
// into one series, but "Squat" and "squat" stay distinct (no case folding).
// The sort is unconditional; fetch order is never trusted for charting.
func BuildLoadSeries(loads []domain.LoadEntry, nameByExercise map[primitive.ObjectID]string) map[string][]LoadPoint {
	series := make(map[string][]LoadPoint)
	if len(loads) == 0 {
		return series
	}

	sorted := make([]domain.LoadEntry, len(loads))
	copy(sorted, loads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for _, entry := range sorted {
		name := nameByExercise[entry.ExerciseID]
		if name == "" {
			name = UnknownExerciseName
		}
		series[name] = append(series[name], LoadPoint{
			At:   primitive.NewDateTimeFromTime(entry.CreatedAt),
			Load: entry.Load,
		})
	}
	return series
}

// DeriveNoticeCounts counts a relationship's notices for the given viewer
// role. Unread is surfaced only to the student recipient; "unread" has no
// meaning for the professional author and stays zeroed.
func DeriveNoticeCounts(notices []domain.Notice, viewer domain.Role) NoticeCounts {
	counts := NoticeCounts{Total: len(notices)}
	if viewer != domain.RoleStudent {
		return counts
	}
	for _, n := range notices {
		if !n.Read {
			counts.Unread++
		}
	}
	counts.HasUnread = counts.Unread > 0
	return counts
}

// ExerciseNameLookup builds the id → display-name mapping BuildLoadSeries
// consumes from a student's exercises.
func ExerciseNameLookup(exercises []domain.Exercise) map[primitive.ObjectID]string {
	lookup := make(map[primitive.ObjectID]string, len(exercises))
	for _, ex := range exercises {
		lookup[ex.ID] = ex.Name
	}
	return lookup
}
