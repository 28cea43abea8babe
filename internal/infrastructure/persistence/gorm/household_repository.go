package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// MemberRepository implements outbound.MemberRepository with GORM
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) outbound.MemberRepository {
	return &MemberRepository{db: db}
}

// Upsert creates the profile row or replaces the mutable columns of an
// existing one, keyed on the identity-provider id
func (r *MemberRepository) Upsert(ctx context.Context, member *household.Member) error {
	model := MemberToModel(member)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "diet", "email_alerts", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// Update persists every mutable column of the profile
func (r *MemberRepository) Update(ctx context.Context, member *household.Member) error {
	model := MemberToModel(member)
	result := r.db.WithContext(ctx).Model(&MemberModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name": model.DisplayName,
			"plan":         model.Plan,
			"diet":         model.Diet,
			"email_alerts": model.EmailAlerts,
			"role":         model.Role,
			"permissions":  model.Permissions,
			"status":       model.Status,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID retrieves a member by the identity-provider id
func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Member, error) {
	var model MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return MemberToDomain(&model), nil
}

// FindByFoyer retrieves every member of a household
func (r *MemberRepository) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*household.Member, error) {
	var models []MemberModel
	err := r.db.WithContext(ctx).
		Where("foyer_id = ?", foyerID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*household.Member, 0, len(models))
	for i := range models {
		members = append(members, MemberToDomain(&models[i]))
	}
	return members, nil
}
