package gorm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
)

func TestMemberRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	member := household.RehydrateMember(
		uuid.New(), uuid.New(),
		"camille@example.fr", "Camille",
		household.PlanFamily,
		"végétarien", true,
		household.RoleManager,
		household.NewPermissionSet(household.PermissionManageStock, household.PermissionViewBudget),
		household.AccountStatusSuspended,
		created, updated,
	)

	got := MemberToDomain(MemberToModel(member))

	assert.Equal(t, member.ID(), got.ID())
	assert.Equal(t, member.FoyerID(), got.FoyerID())
	assert.Equal(t, "camille@example.fr", got.Email())
	assert.Equal(t, "Camille", got.DisplayName())
	assert.Equal(t, household.PlanFamily, got.Plan())
	assert.Equal(t, "végétarien", got.Diet())
	assert.True(t, got.EmailAlerts())
	assert.Equal(t, household.RoleManager, got.Role())
	assert.Equal(t, household.AccountStatusSuspended, got.Status())
	assert.True(t, got.Permissions().Contains(household.PermissionManageStock))
	assert.True(t, got.Permissions().Contains(household.PermissionViewBudget))
	assert.False(t, got.Permissions().Contains(household.PermissionAdminAccess))
	assert.Equal(t, created, got.CreatedAt())
	assert.Equal(t, updated, got.UpdatedAt())
}

func TestProductRoundTrip(t *testing.T) {
	expiry := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	product, err := pantry.NewProduct(uuid.New(), "Œufs Bio", 6, "pcs", "Frais", 4, &expiry)
	require.NoError(t, err)

	got := ProductToDomain(ProductToModel(product))
	assert.Equal(t, product, got)
}

func TestRecipeRoundTrip(t *testing.T) {
	r := &recipe.Recipe{
		ID:      uuid.New(),
		FoyerID: uuid.New(),
		Title:   "Gratin dauphinois",
		Ingredients: []recipe.Ingredient{
			{Name: "Pommes de terre", Quantity: "1 kg"},
			{Name: "Crème fraîche", Quantity: "20 cl"},
		},
		Steps:       []string{"Éplucher les pommes de terre", "Enfourner 45 minutes"},
		PrepTime:    "1h",
		Calories:    520,
		Servings:    4,
		AIGenerated: true,
		CreatedAt:   time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC),
	}

	model, err := RecipeToModel(r)
	require.NoError(t, err)
	got, err := RecipeToDomain(model)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRecipeToDomainEmptyIngredients(t *testing.T) {
	got, err := RecipeToDomain(&RecipeModel{ID: uuid.New(), Title: "Riz nature"})
	require.NoError(t, err)
	assert.Empty(t, got.Ingredients)
}

func TestSlotRoundTripNormalizesDate(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	slot, err := mealplan.NewSlot(uuid.New(), time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), mealplan.MealLunch, uuid.New(), "Quiche lorraine")
	require.NoError(t, err)

	model := SlotToModel(slot)
	// Some drivers hand dates back in local time.
	model.Date = model.Date.In(paris)

	got := SlotToDomain(model)
	assert.Equal(t, slot.Date, got.Date)
	assert.Equal(t, time.UTC, got.Date.Location())
	assert.Equal(t, mealplan.MealLunch, got.MealType)
	assert.Equal(t, "Quiche lorraine", got.RecipeTitle)
}

func TestTicketRoundTrip(t *testing.T) {
	tk, err := ticket.NewTicket(uuid.New(), "Carrefour", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 34.75, []ticket.LineItem{
		{Name: "Lait demi-écrémé", Quantity: 2, Unit: "L", Category: "Frais", Price: 2.30},
		{Name: "Farine T55", Quantity: 1, Unit: "kg", Category: "Épicerie", Price: 1.15},
	})
	require.NoError(t, err)

	model, err := TicketToModel(tk)
	require.NoError(t, err)
	got, err := TicketToDomain(model)
	require.NoError(t, err)
	assert.Equal(t, tk, got)
}

func TestTicketToDomainEmptyItems(t *testing.T) {
	got, err := TicketToDomain(&TicketModel{ID: uuid.New(), StoreName: "Lidl"})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}
