package scheduler

import (
	"time"

	"github.com/complymate/doorguard/app/models"
)

// Re-inspection intervals mandated for fire doors: flat entrance doors are
// inspected yearly, any door in a building whose top storey sits above 11m
// every three months, everything else yearly.
const (
	IntervalFlatEntranceMonths = 12
	IntervalHighRiseMonths     = 3
	IntervalDefaultMonths      = 12

	HighRiseThresholdM = 11.0
)

// AddMonths advances a date by whole calendar months, clamping to the last
// valid day of the target month (31 Jan + 1 month = 28/29 Feb, never 2/3 Mar).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	h, m, s := t.Clock()
	return time.Date(first.Year(), first.Month(), day, h, m, s, t.Nanosecond(), t.Location())
}

// NextDue computes the next mandatory inspection date for a door. The rules
// apply in priority order: flat entrance doors first, then the high-rise
// height rule, then the default annual interval.
func NextDue(doorType string, topStoreyHeightM *float64, from time.Time) time.Time {
	switch {
	case doorType == models.DOOR_TYPE_FLAT_ENTRANCE:
		return AddMonths(from, IntervalFlatEntranceMonths)
	case topStoreyHeightM != nil && *topStoreyHeightM > HighRiseThresholdM:
		return AddMonths(from, IntervalHighRiseMonths)
	default:
		return AddMonths(from, IntervalDefaultMonths)
	}
}

// NextDueForDoor computes the due date from a door and its building.
func NextDueForDoor(door *models.FireDoor, building *models.Building, from time.Time) time.Time {
	var height *float64
	if building != nil {
		height = building.TopStoreyHeightM
	}
	return NextDue(door.DoorType, height, from)
}

// IsOverdue reports whether the due date has passed.
func IsOverdue(due, now time.Time) bool {
	return now.After(due)
}

// DaysUntilDue returns the number of whole days remaining until the due date,
// rounding partial days up. The result is negative once the door is overdue.
func DaysUntilDue(due, now time.Time) int {
	diff := due.Sub(now)
	days := int(diff / (24 * time.Hour))
	// Go's integer division truncates toward zero, which already rounds
	// negative part-days up; only positive part-days need the bump.
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
