// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP layer drives.
package inbound

import (
	"context"
	"time"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/google/uuid"
)

// PantryService is the stock façade
type PantryService interface {
	ListProducts(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*pantry.Product]
	CreateProduct(ctx context.Context, foyerID uuid.UUID, input ProductInput) (*pantry.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*pantry.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Watchlist(ctx context.Context, foyerID uuid.UUID) shared.Result[pantry.Watchlist]
	ApplyCommandText(ctx context.Context, foyerID uuid.UUID, text string) ([]pantry.CommandOutcome, error)
}

// ProductInput carries the caller-editable product fields
type ProductInput struct {
	Name         string     `json:"name" validate:"required"`
	Quantity     float64    `json:"quantity" validate:"gte=0"`
	Unit         string     `json:"unit"`
	Category     string     `json:"category"`
	MinThreshold float64    `json:"min_threshold" validate:"gte=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// MealPlanService drives the weekly planning grid
type MealPlanService interface {
	WeekGrid(ctx context.Context, foyerID uuid.UUID, ref time.Time) (mealplan.Grid, error)
	AssignSlot(ctx context.Context, foyerID uuid.UUID, date time.Time, mealType mealplan.MealType, recipeID uuid.UUID) (*mealplan.Slot, error)
	RemoveSlot(ctx context.Context, slotID uuid.UUID) error
	GenerateForSlot(ctx context.Context, foyerID uuid.UUID, date time.Time, mealType mealplan.MealType) (*mealplan.Slot, *recipe.Recipe, error)
}

// RecipeService manages stored recipes
type RecipeService interface {
	ListRecipes(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*recipe.Recipe]
	GetRecipe(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	GenerateRecipe(ctx context.Context, foyerID uuid.UUID, mealType string) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// TicketService manages receipts and their stock ingestion
type TicketService interface {
	ListTickets(ctx context.Context, foyerID uuid.UUID) shared.Result[[]*ticket.Ticket]
	// ScanReceipt extracts a receipt from a photo and ingests its items.
	// The source reports whether the AI extraction or the manual-entry
	// template produced the ticket.
	ScanReceipt(ctx context.Context, foyerID uuid.UUID, imageBase64 string) (*ticket.Ticket, shared.Source, error)
	CreateTicket(ctx context.Context, foyerID uuid.UUID, input TicketInput) (*ticket.Ticket, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, input TicketInput) (*ticket.Ticket, error)
	DeleteTicket(ctx context.Context, id uuid.UUID) error
}

// TicketInput carries the caller-editable ticket fields
type TicketInput struct {
	StoreName string            `json:"store_name" validate:"required"`
	Date      time.Time         `json:"date"`
	Total     float64           `json:"total"`
	Items     []TicketItemInput `json:"items" validate:"dive"`
}

// TicketItemInput is one editable receipt line
type TicketItemInput struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// HouseholdService manages member profiles and access
type HouseholdService interface {
	GetMember(ctx context.Context, id uuid.UUID) (*household.Member, error)
	UpsertProfile(ctx context.Context, id, foyerID uuid.UUID, input ProfileInput) (*household.Member, error)
	ChangePlan(ctx context.Context, id uuid.UUID, plan household.Plan) error
	SetPermissions(ctx context.Context, id uuid.UUID, role household.Role, perms []household.Permission) error
	Suspend(ctx context.Context, id uuid.UUID) error
}

// ProfileInput carries the caller-editable profile fields
type ProfileInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name"`
	Diet        string `json:"diet"`
	EmailAlerts bool   `json:"email_alerts"`
}

// AdvisorService exposes the remaining AI-backed read operations
type AdvisorService interface {
	InventoryHealth(ctx context.Context, foyerID uuid.UUID) (score int, summary string, err error)
	BudgetAdvice(ctx context.Context, foyerID uuid.UUID) (string, error)
	IdentifyProduct(ctx context.Context, foyerID uuid.UUID, imageBase64 string) (*pantry.Product, error)
}
