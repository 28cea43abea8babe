package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// TicketRepository implements outbound.TicketRepository with GORM
type TicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) outbound.TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a new ticket
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model, err := TicketToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ticket: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Update persists every editable column of the ticket
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := TicketToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ticket: %w", err)
	}
	result := r.db.WithContext(ctx).Model(&TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"store_name": model.StoreName,
			"date":       model.Date,
			"total":      model.Total,
			"items":      model.Items,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TicketModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID retrieves a ticket by id
func (r *TicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	var model TicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return TicketToDomain(&model)
}

// FindByFoyer retrieves the household's receipt history, newest first
func (r *TicketRepository) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*ticket.Ticket, error) {
	var models []TicketModel
	err := r.db.WithContext(ctx).
		Where("foyer_id = ?", foyerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(models))
	for i := range models {
		t, err := TicketToDomain(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket %s: %w", models[i].ID, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
