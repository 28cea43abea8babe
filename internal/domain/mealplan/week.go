package mealplan

import "time"

// DaysPerWeek is the width of the planning grid
const DaysPerWeek = 7

// MondayOf returns the most recent Monday at or before the reference date,
// truncated to midnight UTC. Sunday is treated as day 7 of the previous
// week, so a Sunday reference rolls back six days.
func MondayOf(ref time.Time) time.Time {
	day := Day(ref)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the seven days of the week starting at weekStart
func WeekDays(weekStart time.Time) [DaysPerWeek]time.Time {
	var days [DaysPerWeek]time.Time
	start := Day(weekStart)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// InWeek reports whether date falls within [weekStart, weekStart+6 days]
func InWeek(date, weekStart time.Time) bool {
	d := Day(date)
	start := Day(weekStart)
	end := start.AddDate(0, 0, DaysPerWeek-1)
	return !d.Before(start) && !d.After(end)
}

// Grid is the 7x4 planning grid for one week. Cells without an assignment
// are nil; the grid is fully determined by (weekStart, slots-in-range).
type Grid struct {
	WeekStart time.Time
	Cells     [DaysPerWeek][len(MealTypes)]*Slot
}

// BuildGrid merges the persisted slots for a week into the grid. Slots
// outside the week are ignored; a later slot for an occupied cell
// supersedes the earlier one.
func BuildGrid(weekStart time.Time, slots []*Slot) Grid {
	grid := Grid{WeekStart: Day(weekStart)}
	for _, s := range slots {
		if !InWeek(s.Date, weekStart) {
			continue
		}
		dayIdx := int(Day(s.Date).Sub(grid.WeekStart).Hours() / 24)
		for mealIdx, mt := range MealTypes {
			if s.MealType == mt {
				grid.Cells[dayIdx][mealIdx] = s
			}
		}
	}
	return grid
}

// At returns the slot for a (date, meal type) cell, or nil
func (g *Grid) At(date time.Time, mealType MealType) *Slot {
	if !InWeek(date, g.WeekStart) {
		return nil
	}
	dayIdx := int(Day(date).Sub(g.WeekStart).Hours() / 24)
	for mealIdx, mt := range MealTypes {
		if mealType == mt {
			return g.Cells[dayIdx][mealIdx]
		}
	}
	return nil
}
