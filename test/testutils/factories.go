// Package testutils provides factories for test data.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
)

// ProductFactory creates test products
type ProductFactory struct {
	FoyerID uuid.UUID
}

// NewProductFactory creates a product factory for one household
func NewProductFactory(foyerID uuid.UUID) *ProductFactory {
	return &ProductFactory{FoyerID: foyerID}
}

// ProductOption customizes a generated product
type ProductOption func(*pantry.Product)

// WithName sets the product name
func WithName(name string) ProductOption {
	return func(p *pantry.Product) { p.Name = name }
}

// WithQuantity sets quantity and threshold together
func WithQuantity(quantity, minThreshold float64) ProductOption {
	return func(p *pantry.Product) {
		p.Quantity = quantity
		p.MinThreshold = minThreshold
	}
}

// WithExpiry sets the expiry date
func WithExpiry(expiry time.Time) ProductOption {
	return func(p *pantry.Product) { p.ExpiryDate = &expiry }
}

// Build generates a product
func (f *ProductFactory) Build(opts ...ProductOption) *pantry.Product {
	now := time.Now()
	p := &pantry.Product{
		ID:           uuid.New(),
		FoyerID:      f.FoyerID,
		Name:         gofakeit.Fruit(),
		Quantity:     float64(gofakeit.Number(2, 10)),
		Unit:         "pcs",
		Category:     "épicerie",
		MinThreshold: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildMember generates an active member profile
func BuildMember(foyerID uuid.UUID, plan household.Plan, role household.Role, perms ...household.Permission) *household.Member {
	now := time.Now()
	return household.RehydrateMember(
		uuid.New(),
		foyerID,
		gofakeit.Email(),
		gofakeit.Name(),
		plan,
		"",
		true,
		role,
		household.NewPermissionSet(perms...),
		household.AccountStatusActive,
		now,
		now,
	)
}

// BuildRecipe generates a stored recipe
func BuildRecipe(foyerID uuid.UUID) *recipe.Recipe {
	return &recipe.Recipe{
		ID:      uuid.New(),
		FoyerID: foyerID,
		Title:   gofakeit.Dinner(),
		Ingredients: []recipe.Ingredient{
			{Name: gofakeit.Vegetable(), Quantity: "200 g"},
			{Name: gofakeit.Fruit(), Quantity: "2"},
		},
		Steps:     []string{gofakeit.Sentence(8), gofakeit.Sentence(6)},
		PrepTime:  "25 min",
		Servings:  2,
		CreatedAt: time.Now(),
	}
}

// BuildTicket generates a receipt with line items
func BuildTicket(foyerID uuid.UUID, itemCount int) *ticket.Ticket {
	items := make([]ticket.LineItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, ticket.LineItem{
			Name:     gofakeit.Fruit(),
			Quantity: float64(gofakeit.Number(1, 5)),
			Unit:     "pcs",
			Price:    gofakeit.Float64Range(0.5, 12),
		})
	}
	now := time.Now()
	return &ticket.Ticket{
		ID:        uuid.New(),
		FoyerID:   foyerID,
		StoreName: gofakeit.Company(),
		Date:      now.AddDate(0, 0, -1),
		Total:     gofakeit.Float64Range(10, 120),
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
