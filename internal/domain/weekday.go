package domain

// Weekday is the day label workout plans and meals are scoped to.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekdayOrder is the canonical display order. Weekly groupings always emit
// days in this order regardless of fetch order.
var WeekdayOrder = []Weekday{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// ValidWeekday reports whether d is one of the seven known weekday labels.
func ValidWeekday(d Weekday) bool {
	for _, day := range WeekdayOrder {
		if day == d {
			return true
		}
	}
	return false
}
