// Package recipe contains the core domain logic for recipes.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe represents a recipe. Recipes are immutable once created; meal-plan
// slots reference them but do not own them.
type Recipe struct {
	ID          uuid.UUID
	FoyerID     uuid.UUID
	Title       string
	Description string
	Ingredients []Ingredient
	Steps       []string
	PrepTime    string
	Calories    int
	Servings    int
	ImageRef    string
	AIGenerated bool
	CreatedAt   time.Time
}

// Ingredient is one ordered entry in a recipe's ingredient list
type Ingredient struct {
	Name     string
	Quantity string
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientNameRequired
	}
	return nil
}

// NewRecipe creates a recipe with validation. Ingredient and step lists are
// ordered and may be empty.
func NewRecipe(foyerID uuid.UUID, title, description string, ingredients []Ingredient, steps []string) (*Recipe, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return nil, err
		}
	}

	return &Recipe{
		ID:          uuid.New(),
		FoyerID:     foyerID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   time.Now(),
	}, nil
}
