package mealplan

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	monday := date(2025, time.March, 3)

	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"monday maps to itself", monday, monday},
		{"wednesday rolls back two days", date(2025, time.March, 5), monday},
		{"saturday rolls back five days", date(2025, time.March, 8), monday},
		{"sunday belongs to the previous week", date(2025, time.March, 9), monday},
		{"next monday starts a new week", date(2025, time.March, 10), date(2025, time.March, 10)},
		{"time of day is irrelevant", time.Date(2025, time.March, 5, 23, 45, 0, 0, time.UTC), monday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayOf(tt.ref))
		})
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(date(2025, time.March, 3))

	assert.Equal(t, date(2025, time.March, 3), days[0])
	assert.Equal(t, date(2025, time.March, 9), days[6])
}

func TestInWeek(t *testing.T) {
	weekStart := date(2025, time.March, 3)

	assert.True(t, InWeek(date(2025, time.March, 3), weekStart))
	assert.True(t, InWeek(date(2025, time.March, 9), weekStart))
	assert.False(t, InWeek(date(2025, time.March, 2), weekStart))
	assert.False(t, InWeek(date(2025, time.March, 10), weekStart))
}

func newTestSlot(t *testing.T, day time.Time, mealType MealType, title string) *Slot {
	t.Helper()
	slot, err := NewSlot(uuid.New(), day, mealType, uuid.New(), title)
	require.NoError(t, err)
	return slot
}

func TestBuildGridPlacesSlots(t *testing.T) {
	weekStart := date(2025, time.March, 3)
	lunch := newTestSlot(t, date(2025, time.March, 4), MealLunch, "Gratin")
	dinner := newTestSlot(t, date(2025, time.March, 9), MealDinner, "Soupe")

	grid := BuildGrid(weekStart, []*Slot{lunch, dinner})

	assert.Same(t, lunch, grid.At(date(2025, time.March, 4), MealLunch))
	assert.Same(t, dinner, grid.At(date(2025, time.March, 9), MealDinner))
	assert.Nil(t, grid.At(date(2025, time.March, 4), MealDinner))
}

func TestBuildGridIgnoresSlotsOutsideWeek(t *testing.T) {
	weekStart := date(2025, time.March, 3)
	stray := newTestSlot(t, date(2025, time.March, 10), MealLunch, "Hors semaine")

	grid := BuildGrid(weekStart, []*Slot{stray})

	for dayIdx := range grid.Cells {
		for mealIdx := range grid.Cells[dayIdx] {
			assert.Nil(t, grid.Cells[dayIdx][mealIdx])
		}
	}
}

func TestBuildGridLaterSlotSupersedes(t *testing.T) {
	weekStart := date(2025, time.March, 3)
	day := date(2025, time.March, 5)
	old := newTestSlot(t, day, MealBreakfast, "Ancien")
	replacement := newTestSlot(t, day, MealBreakfast, "Nouveau")

	grid := BuildGrid(weekStart, []*Slot{old, replacement})

	assert.Same(t, replacement, grid.At(day, MealBreakfast))
}

func TestNewSlotValidation(t *testing.T) {
	_, err := NewSlot(uuid.Nil, date(2025, time.March, 3), MealLunch, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrFoyerIDRequired)

	_, err = NewSlot(uuid.New(), date(2025, time.March, 3), "brunch", uuid.New(), "x")
	assert.ErrorIs(t, err, ErrInvalidMealType)

	_, err = NewSlot(uuid.New(), date(2025, time.March, 3), MealLunch, uuid.Nil, "x")
	assert.ErrorIs(t, err, ErrRecipeRequired)
}

func TestNewSlotNormalizesDate(t *testing.T) {
	slot, err := NewSlot(uuid.New(), time.Date(2025, time.March, 5, 18, 30, 0, 0, time.UTC), MealSnack, uuid.New(), "Goûter")

	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 5), slot.Date)
}
