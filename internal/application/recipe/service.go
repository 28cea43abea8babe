// Package recipe provides the application layer for recipe management and
// AI recipe generation.
package recipe

import (
	"context"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	domain "github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements recipe listing and generation. Generation asks the AI
// adapter first and degrades to a deterministic stock-based suggestion when
// the adapter fails, so the feature never hard-errors for the user.
type Service struct {
	recipes  outbound.RecipeRepository
	products outbound.ProductRepository
	members  outbound.MemberRepository
	ai       outbound.AIService
	metrics  outbound.AIMetrics
	logger   *zap.Logger
}

// NewService creates the recipe service. metrics may be nil when
// monitoring is not wired.
func NewService(
	recipes outbound.RecipeRepository,
	products outbound.ProductRepository,
	members outbound.MemberRepository,
	ai outbound.AIService,
	metrics outbound.AIMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:  recipes,
		products: products,
		members:  members,
		ai:       ai,
		metrics:  metrics,
		logger:   logger.Named("recipe-service"),
	}
}

func (s *Service) recordFallback() {
	if s.metrics != nil {
		s.metrics.RecordAIFallback("generate_recipe")
	}
}

// ListRecipes returns the household recipes, newest first, substituting
// fallback data on storage failure
func (s *Service) ListRecipes(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*domain.Recipe] {
	recipes, err := s.recipes.FindByFoyer(ctx, foyerID)
	if err != nil {
		s.logger.Warn("recipe fetch failed, serving fallback data", zap.Error(err))
		return shared.Fallback(FallbackRecipes(foyerID), err)
	}
	return shared.Ok(recipes)
}

// GetRecipe returns one recipe by id
func (s *Service) GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeRecipeNotFound, "recipe not found")
	}
	return r, nil
}

// GenerateRecipe creates a recipe from the current stock, the household
// size and the requesting household's diet. mealType may be empty for a
// free-form suggestion.
func (s *Service) GenerateRecipe(ctx context.Context, foyerID uuid.UUID, mealType string) (*domain.Recipe, error) {
	products, err := s.products.FindByFoyer(ctx, foyerID)
	if err != nil {
		// Generation still works over the fallback stock
		s.logger.Warn("stock fetch failed before generation", zap.Error(err))
		products = nil
	}

	req := outbound.RecipeRequest{
		Stock:         stockLines(products),
		HouseholdSize: s.householdSize(ctx, foyerID),
		Diet:          s.householdDiet(ctx, foyerID),
		MealType:      mealType,
	}

	generated, err := s.ai.GenerateRecipe(ctx, req)

	var result *domain.Recipe
	if err != nil {
		s.logger.Warn("AI generation failed, using stock-based suggestion", zap.Error(err))
		s.recordFallback()
		result = FallbackRecipe(foyerID, products, mealType)
	} else {
		result, err = fromAIRecipe(foyerID, generated)
		if err != nil {
			s.logger.Warn("AI recipe rejected, using stock-based suggestion", zap.Error(err))
			s.recordFallback()
			result = FallbackRecipe(foyerID, products, mealType)
		}
	}

	if err := s.recipes.Create(ctx, result); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return result, nil
}

// DeleteRecipe removes a recipe
func (s *Service) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// householdSize counts active members, defaulting to 2 when unavailable
func (s *Service) householdSize(ctx context.Context, foyerID uuid.UUID) int {
	members, err := s.members.FindByFoyer(ctx, foyerID)
	if err != nil || len(members) == 0 {
		return 2
	}
	return len(members)
}

// householdDiet picks the first member diet preference on record
func (s *Service) householdDiet(ctx context.Context, foyerID uuid.UUID) string {
	members, err := s.members.FindByFoyer(ctx, foyerID)
	if err != nil {
		return ""
	}
	for _, m := range members {
		if m.Diet() != "" && m.Status() == household.AccountStatusActive {
			return m.Diet()
		}
	}
	return ""
}

func stockLines(products []*pantry.Product) []outbound.StockLine {
	lines := make([]outbound.StockLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, outbound.StockLine{
			Name:     p.Name,
			Quantity: p.Quantity,
			Unit:     p.Unit,
		})
	}
	return lines
}

// fromAIRecipe converts the adapter payload into a domain recipe
func fromAIRecipe(foyerID uuid.UUID, ai *outbound.AIRecipe) (*domain.Recipe, error) {
	ingredients := make([]domain.Ingredient, 0, len(ai.Ingredients))
	for _, ing := range ai.Ingredients {
		ingredients = append(ingredients, domain.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
		})
	}

	r, err := domain.NewRecipe(foyerID, ai.Title, ai.Description, ingredients, ai.Steps)
	if err != nil {
		return nil, err
	}
	r.PrepTime = ai.PrepTime
	r.Calories = ai.Calories
	r.Servings = ai.Servings
	r.AIGenerated = true
	return r, nil
}
