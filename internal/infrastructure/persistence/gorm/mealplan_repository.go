package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// SlotRepository implements outbound.SlotRepository with GORM
type SlotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *gorm.DB) outbound.SlotRepository {
	return &SlotRepository{db: db}
}

// Replace assigns a slot to its cell in one statement. The uk_cell unique
// index resolves the conflict, so supersession of an occupied cell is
// atomic: the old slot can never be lost without the new one landing.
func (r *SlotRepository) Replace(ctx context.Context, slot *mealplan.Slot) error {
	model := SlotToModel(slot)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "foyer_id"}, {Name: "date"}, {Name: "meal_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "recipe_id", "recipe_title", "created_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to replace slot: %w", err)
	}
	return nil
}

// Delete removes a slot
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&SlotModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID retrieves a slot by id
func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.Slot, error) {
	var model SlotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return SlotToDomain(&model), nil
}

// FindWeek retrieves all slots whose date falls within the seven days
// starting at weekStart
func (r *SlotRepository) FindWeek(ctx context.Context, foyerID uuid.UUID, weekStart time.Time) ([]*mealplan.Slot, error) {
	start := mealplan.Day(weekStart)
	end := start.AddDate(0, 0, mealplan.DaysPerWeek)

	var models []SlotModel
	err := r.db.WithContext(ctx).
		Where("foyer_id = ? AND date >= ? AND date < ?", foyerID, start, end).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	slots := make([]*mealplan.Slot, 0, len(models))
	for i := range models {
		slots = append(slots, SlotToDomain(&models[i]))
	}
	return slots, nil
}
