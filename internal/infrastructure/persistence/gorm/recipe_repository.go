package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository with GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return fmt.Errorf("failed to map recipe: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Delete removes a recipe
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID retrieves a recipe by id
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return RecipeToDomain(&model)
}

// FindByFoyer retrieves the household's recipe book, newest first
func (r *RecipeRepository) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Where("foyer_id = ?", foyerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		rec, err := RecipeToDomain(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map recipe %s: %w", models[i].ID, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}
