// Package mealplan provides the application layer for the weekly planning grid.
package mealplan

import (
	"context"
	"time"

	domain "github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives the planning grid. The grid is fully determined by
// (weekStart, slots-in-range); nothing is cached across week changes.
type Service struct {
	slots   outbound.SlotRepository
	recipes inbound.RecipeService
	logger  *zap.Logger
}

// NewService creates the meal-plan service
func NewService(slots outbound.SlotRepository, recipes inbound.RecipeService, logger *zap.Logger) *Service {
	return &Service{
		slots:   slots,
		recipes: recipes,
		logger:  logger.Named("mealplan-service"),
	}
}

// WeekGrid fetches the slots for the week containing ref and merges them
// into the 7x4 grid
func (s *Service) WeekGrid(ctx context.Context, foyerID uuid.UUID, ref time.Time) (domain.Grid, error) {
	weekStart := domain.MondayOf(ref)
	slots, err := s.slots.FindWeek(ctx, foyerID, weekStart)
	if err != nil {
		return domain.Grid{WeekStart: weekStart}, apperrors.NewStorageError(err)
	}
	return domain.BuildGrid(weekStart, slots), nil
}

// AssignSlot assigns a recipe to a (date, meal type) cell. An occupied
// cell is fully superseded in a single storage write, so a failed assign
// never leaves the cell empty.
func (s *Service) AssignSlot(ctx context.Context, foyerID uuid.UUID, date time.Time, mealType domain.MealType, recipeID uuid.UUID) (*domain.Slot, error) {
	rec, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	slot, err := domain.NewSlot(foyerID, date, mealType, rec.ID, rec.Title)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid slot", err.Error())
	}

	if err := s.slots.Replace(ctx, slot); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.logger.Info("slot assigned",
		zap.String("date", slot.Date.Format("2006-01-02")),
		zap.String("meal_type", string(mealType)),
		zap.String("recipe", rec.Title))
	return slot, nil
}

// RemoveSlot deletes a slot. Confirmation happens at the UI boundary; the
// operation itself is unconditional.
func (s *Service) RemoveSlot(ctx context.Context, slotID uuid.UUID) error {
	if _, err := s.slots.FindByID(ctx, slotID); err != nil {
		return apperrors.NewNotFoundError(apperrors.CodeSlotNotFound, "slot not found")
	}
	if err := s.slots.Delete(ctx, slotID); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// GenerateForSlot is the two-step composite: generate a recipe for the
// slot's meal type, then assign it. When generation fails no slot is
// mutated and the failure is surfaced.
func (s *Service) GenerateForSlot(ctx context.Context, foyerID uuid.UUID, date time.Time, mealType domain.MealType) (*domain.Slot, *recipe.Recipe, error) {
	if !mealType.Valid() {
		return nil, nil, apperrors.NewValidationError("invalid slot", domain.ErrInvalidMealType.Error())
	}

	rec, err := s.recipes.GenerateRecipe(ctx, foyerID, string(mealType))
	if err != nil {
		return nil, nil, err
	}

	slot, err := s.AssignSlot(ctx, foyerID, date, mealType, rec.ID)
	if err != nil {
		return nil, nil, err
	}
	return slot, rec, nil
}
