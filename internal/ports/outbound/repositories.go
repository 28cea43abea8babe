// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/google/uuid"
)

// MemberRepository defines the interface for member profile persistence.
// Profiles are never hard-deleted; suspension is the terminal state.
type MemberRepository interface {
	Upsert(ctx context.Context, member *household.Member) error
	Update(ctx context.Context, member *household.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*household.Member, error)
	FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*household.Member, error)
}

// ProductRepository defines the interface for pantry persistence
type ProductRepository interface {
	Create(ctx context.Context, product *pantry.Product) error
	Update(ctx context.Context, product *pantry.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Product, error)
	// FindByFoyer returns the full collection for a household, newest first
	FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*pantry.Product, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*recipe.Recipe, error)
}

// SlotRepository defines the interface for meal-plan slot persistence
type SlotRepository interface {
	// Replace assigns the slot to its (foyer, date, meal type) cell in a
	// single atomic write, superseding any slot already stored there
	Replace(ctx context.Context, slot *mealplan.Slot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.Slot, error)
	// FindWeek returns all slots within [weekStart, weekStart+6 days]
	FindWeek(ctx context.Context, foyerID uuid.UUID, weekStart time.Time) ([]*mealplan.Slot, error)
}

// TicketRepository defines the interface for receipt persistence
type TicketRepository interface {
	Create(ctx context.Context, t *ticket.Ticket) error
	Update(ctx context.Context, t *ticket.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error)
	FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*ticket.Ticket, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
