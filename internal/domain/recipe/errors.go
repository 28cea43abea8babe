package recipe

import "errors"

var (
	ErrTitleRequired          = errors.New("recipe title is required")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
)
