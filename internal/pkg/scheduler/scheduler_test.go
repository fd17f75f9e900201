package scheduler

import (
	"testing"
	"time"

	"github.com/complymate/doorguard/app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{name: "plain month", from: date(2024, 3, 15), months: 1, want: date(2024, 4, 15)},
		{name: "31 Jan plus one month leap year", from: date(2024, 1, 31), months: 1, want: date(2024, 2, 29)},
		{name: "31 Jan plus one month common year", from: date(2025, 1, 31), months: 1, want: date(2025, 2, 28)},
		{name: "31 Jan plus three months", from: date(2024, 1, 31), months: 3, want: date(2024, 4, 30)},
		{name: "year rollover", from: date(2024, 11, 30), months: 3, want: date(2025, 2, 28)},
		{name: "twelve months", from: date(2024, 2, 29), months: 12, want: date(2025, 2, 28)},
	}

	for _, tt := range tests {
		if got := AddMonths(tt.from, tt.months); !got.Equal(tt.want) {
			t.Fatalf("%s: AddMonths(%v, %d) = %v, want %v", tt.name, tt.from, tt.months, got, tt.want)
		}
	}
}

func TestAddMonthsPreservesClock(t *testing.T) {
	from := time.Date(2024, 1, 31, 9, 30, 15, 0, time.UTC)
	got := AddMonths(from, 1)
	want := time.Date(2024, 2, 29, 9, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddMonths(%v, 1) = %v, want %v", from, got, want)
	}
}

func TestNextDueRulePriority(t *testing.T) {
	from := date(2024, 1, 31)
	height12 := 12.0
	height5 := 5.0

	tests := []struct {
		name     string
		doorType string
		height   *float64
		want     time.Time
	}{
		{name: "flat entrance is annual", doorType: models.DOOR_TYPE_FLAT_ENTRANCE, height: nil, want: date(2025, 1, 31)},
		// Flat entrance wins even in a high-rise building.
		{name: "flat entrance beats high rise", doorType: models.DOOR_TYPE_FLAT_ENTRANCE, height: &height12, want: date(2025, 1, 31)},
		{name: "high rise is quarterly", doorType: models.DOOR_TYPE_OTHER, height: &height12, want: date(2024, 4, 30)},
		{name: "low rise falls to default", doorType: models.DOOR_TYPE_OTHER, height: &height5, want: date(2025, 1, 31)},
		{name: "unknown height falls to default", doorType: models.DOOR_TYPE_COMMUNAL, height: nil, want: date(2025, 1, 31)},
	}

	for _, tt := range tests {
		if got := NextDue(tt.doorType, tt.height, from); !got.Equal(tt.want) {
			t.Fatalf("%s: NextDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNextDueHighRiseThresholdIsExclusive(t *testing.T) {
	from := date(2024, 1, 1)
	exactly11 := 11.0
	just := 11.01

	if got := NextDue(models.DOOR_TYPE_OTHER, &exactly11, from); !got.Equal(date(2025, 1, 1)) {
		t.Fatalf("11m exactly should use the annual interval, got %v", got)
	}
	if got := NextDue(models.DOOR_TYPE_OTHER, &just, from); !got.Equal(date(2024, 4, 1)) {
		t.Fatalf("above 11m should use the quarterly interval, got %v", got)
	}
}

func TestNextDueForDoor(t *testing.T) {
	from := date(2024, 1, 31)
	height := 14.5
	building := &models.Building{TopStoreyHeightM: &height}
	door := &models.FireDoor{DoorType: models.DOOR_TYPE_STAIRWELL}

	if got := NextDueForDoor(door, building, from); !got.Equal(date(2024, 4, 30)) {
		t.Fatalf("NextDueForDoor = %v, want 2024-04-30", got)
	}
	// Without a building the height rule cannot apply.
	if got := NextDueForDoor(door, nil, from); !got.Equal(date(2025, 1, 31)) {
		t.Fatalf("NextDueForDoor without building = %v, want 2025-01-31", got)
	}
}

func TestIsOverdue(t *testing.T) {
	due := date(2024, 6, 1)
	if IsOverdue(due, due) {
		t.Fatalf("a door is not overdue on its due date")
	}
	if !IsOverdue(due, due.Add(time.Second)) {
		t.Fatalf("a door is overdue once the due date has passed")
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := date(2024, 6, 1)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{name: "due today", due: now, want: 0},
		{name: "due tomorrow", due: now.AddDate(0, 0, 1), want: 1},
		{name: "partial day rounds up", due: now.Add(6 * time.Hour), want: 1},
		{name: "a week out", due: now.AddDate(0, 0, 7), want: 7},
		{name: "overdue by two days", due: now.AddDate(0, 0, -2), want: -2},
		{name: "overdue by part of a day", due: now.Add(-6 * time.Hour), want: 0},
	}

	for _, tt := range tests {
		if got := DaysUntilDue(tt.due, now); got != tt.want {
			t.Fatalf("%s: DaysUntilDue = %d, want %d", tt.name, got, tt.want)
		}
	}
}
