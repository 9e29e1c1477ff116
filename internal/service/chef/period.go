package chef

import "time"

// MealPeriod is a coarse bucket of the day used to frame a suggestion.
type MealPeriod string

const (
	Breakfast      MealPeriod = "breakfast"
	Lunch          MealPeriod = "lunch"
	Dinner         MealPeriod = "dinner"
	LateNightSnack MealPeriod = "late-night snack"
)

// MealPeriodAt maps an hour of the day onto its meal period.
// [5,11) breakfast, [11,16) lunch, [16,22) dinner, anything else a late-night snack.
func MealPeriodAt(hour int) MealPeriod {
	switch {
	case hour >= 5 && hour < 11:
		return Breakfast
	case hour >= 11 && hour < 16:
		return Lunch
	case hour >= 16 && hour < 22:
		return Dinner
	default:
		return LateNightSnack
	}
}

// CurrentMealPeriod uses the local wall clock of t.
func CurrentMealPeriod(t time.Time) MealPeriod {
	return MealPeriodAt(t.Hour())
}
