package mealplan

import "errors"

var (
	ErrFoyerIDRequired = errors.New("foyer id is required")
	ErrInvalidDate     = errors.New("invalid slot date")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrRecipeRequired  = errors.New("recipe id is required")
)
