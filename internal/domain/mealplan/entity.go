// Package mealplan contains the core domain logic for the weekly planning
// grid: Monday-start week arithmetic and slot assignment.
package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// MealType is one of the four fixed meal rows of the grid
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// MealTypes lists the grid rows in display order
var MealTypes = [4]MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}

// Valid reports whether t is one of the four fixed meal types
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealSnack, MealDinner:
		return true
	}
	return false
}

// Slot is one (date, meal type) cell of the grid with a recipe assigned.
// The recipe title is denormalized so the grid renders without a join.
type Slot struct {
	ID          uuid.UUID
	FoyerID     uuid.UUID
	Date        time.Time
	MealType    MealType
	RecipeID    uuid.UUID
	RecipeTitle string
	CreatedAt   time.Time
}

// NewSlot creates a slot with validation. The date is normalized to midnight
// UTC so (date, meal type) uniqueness is a plain equality check.
func NewSlot(foyerID uuid.UUID, date time.Time, mealType MealType, recipeID uuid.UUID, recipeTitle string) (*Slot, error) {
	if foyerID == uuid.Nil {
		return nil, ErrFoyerIDRequired
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	if !mealType.Valid() {
		return nil, ErrInvalidMealType
	}
	if recipeID == uuid.Nil {
		return nil, ErrRecipeRequired
	}

	return &Slot{
		ID:          uuid.New(),
		FoyerID:     foyerID,
		Date:        Day(date),
		MealType:    mealType,
		RecipeID:    recipeID,
		RecipeTitle: recipeTitle,
		CreatedAt:   time.Now(),
	}, nil
}

// Day truncates a time to its calendar day in UTC
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
