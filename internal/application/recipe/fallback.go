package recipe

import (
	"fmt"
	"strings"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	domain "github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/google/uuid"
)

// FallbackRecipe builds a deterministic suggestion from whatever is in
// stock when the AI adapter is unavailable. It picks up to five products
// and frames them as a simple one-pot dish.
func FallbackRecipe(foyerID uuid.UUID, products []*pantry.Product, mealType string) *domain.Recipe {
	names := make([]string, 0, 5)
	ingredients := make([]domain.Ingredient, 0, 5)
	for _, p := range products {
		if p.Quantity <= 0 {
			continue
		}
		names = append(names, p.Name)
		ingredients = append(ingredients, domain.Ingredient{
			Name:     p.Name,
			Quantity: fmt.Sprintf("%g %s", p.Quantity, p.Unit),
		})
		if len(names) == 5 {
			break
		}
	}

	title := "Poêlée du placard"
	if mealType != "" {
		title = fmt.Sprintf("Idée %s du placard", mealType)
	}

	description := "Suggestion à partir de votre stock actuel."
	if len(names) > 0 {
		description = fmt.Sprintf("Suggestion à partir de votre stock : %s.", strings.Join(names, ", "))
	}

	r, err := domain.NewRecipe(foyerID, title, description, ingredients, []string{
		"Rassemblez les ingrédients disponibles.",
		"Faites revenir le tout à feu moyen avec un filet d'huile.",
		"Assaisonnez et servez chaud.",
	})
	if err != nil {
		// Inputs above are constant and valid
		panic(err)
	}
	r.PrepTime = "20 min"
	r.Servings = 2
	return r
}

// FallbackRecipes is the deterministic recipe list served when storage is
// unavailable
func FallbackRecipes(foyerID uuid.UUID) []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:          uuid.MustParse("00000000-0000-0000-0000-000000000101"),
			FoyerID:     foyerID,
			Title:       "Omelette aux herbes",
			Description: "Un classique rapide avec ce qu'il reste d'œufs.",
			Ingredients: []domain.Ingredient{
				{Name: "Œufs", Quantity: "3 pièces"},
				{Name: "Herbes fraîches", Quantity: "1 c. à soupe"},
			},
			Steps: []string{
				"Battez les œufs avec les herbes.",
				"Cuisez à la poêle 3 minutes de chaque côté.",
			},
			PrepTime: "10 min",
			Servings: 1,
		},
		{
			ID:          uuid.MustParse("00000000-0000-0000-0000-000000000102"),
			FoyerID:     foyerID,
			Title:       "Riz sauté aux légumes",
			Description: "Pour écouler le riz et les légumes de la semaine.",
			Ingredients: []domain.Ingredient{
				{Name: "Riz", Quantity: "200 g"},
				{Name: "Légumes de saison", Quantity: "300 g"},
			},
			Steps: []string{
				"Cuisez le riz.",
				"Faites sauter les légumes puis ajoutez le riz.",
			},
			PrepTime: "25 min",
			Servings: 2,
		},
	}
}
