package gorm

import (
	"encoding/json"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
)

// ingredientDoc is the JSON shape of one recipe ingredient
type ingredientDoc struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// lineItemDoc is the JSON shape of one ticket line item
type lineItemDoc struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// MemberToModel converts a domain member to its persistence model
func MemberToModel(m *household.Member) *MemberModel {
	perms := m.Permissions().List()
	names := make(StringSlice, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}
	return &MemberModel{
		ID:          m.ID(),
		FoyerID:     m.FoyerID(),
		Email:       m.Email(),
		DisplayName: m.DisplayName(),
		Plan:        string(m.Plan()),
		Diet:        m.Diet(),
		EmailAlerts: m.EmailAlerts(),
		Role:        string(m.Role()),
		Permissions: names,
		Status:      string(m.Status()),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

// MemberToDomain converts a persistence model back to the domain member
func MemberToDomain(model *MemberModel) *household.Member {
	perms := make([]household.Permission, 0, len(model.Permissions))
	for _, name := range model.Permissions {
		perms = append(perms, household.Permission(name))
	}
	return household.RehydrateMember(
		model.ID,
		model.FoyerID,
		model.Email,
		model.DisplayName,
		household.Plan(model.Plan),
		model.Diet,
		model.EmailAlerts,
		household.Role(model.Role),
		household.NewPermissionSet(perms...),
		household.AccountStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ProductToModel converts a domain product to its persistence model
func ProductToModel(p *pantry.Product) *ProductModel {
	return &ProductModel{
		ID:           p.ID,
		FoyerID:      p.FoyerID,
		Name:         p.Name,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		Category:     p.Category,
		MinThreshold: p.MinThreshold,
		ExpiryDate:   p.ExpiryDate,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductToDomain converts a persistence model back to the domain product
func ProductToDomain(model *ProductModel) *pantry.Product {
	return &pantry.Product{
		ID:           model.ID,
		FoyerID:      model.FoyerID,
		Name:         model.Name,
		Quantity:     model.Quantity,
		Unit:         model.Unit,
		Category:     model.Category,
		MinThreshold: model.MinThreshold,
		ExpiryDate:   model.ExpiryDate,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// RecipeToModel converts a domain recipe to its persistence model
func RecipeToModel(r *recipe.Recipe) (*RecipeModel, error) {
	docs := make([]ingredientDoc, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		docs = append(docs, ingredientDoc{Name: ing.Name, Quantity: ing.Quantity})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	return &RecipeModel{
		ID:          r.ID,
		FoyerID:     r.FoyerID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: JSONColumn(raw),
		Steps:       StringSlice(r.Steps),
		PrepTime:    r.PrepTime,
		Calories:    r.Calories,
		Servings:    r.Servings,
		ImageRef:    r.ImageRef,
		AIGenerated: r.AIGenerated,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// RecipeToDomain converts a persistence model back to the domain recipe
func RecipeToDomain(model *RecipeModel) (*recipe.Recipe, error) {
	var docs []ingredientDoc
	if len(model.Ingredients) > 0 {
		if err := json.Unmarshal(model.Ingredients, &docs); err != nil {
			return nil, err
		}
	}
	ingredients := make([]recipe.Ingredient, 0, len(docs))
	for _, doc := range docs {
		ingredients = append(ingredients, recipe.Ingredient{Name: doc.Name, Quantity: doc.Quantity})
	}
	return &recipe.Recipe{
		ID:          model.ID,
		FoyerID:     model.FoyerID,
		Title:       model.Title,
		Description: model.Description,
		Ingredients: ingredients,
		Steps:       []string(model.Steps),
		PrepTime:    model.PrepTime,
		Calories:    model.Calories,
		Servings:    model.Servings,
		ImageRef:    model.ImageRef,
		AIGenerated: model.AIGenerated,
		CreatedAt:   model.CreatedAt,
	}, nil
}

// SlotToModel converts a domain slot to its persistence model
func SlotToModel(s *mealplan.Slot) *SlotModel {
	return &SlotModel{
		ID:          s.ID,
		FoyerID:     s.FoyerID,
		Date:        s.Date,
		MealType:    string(s.MealType),
		RecipeID:    s.RecipeID,
		RecipeTitle: s.RecipeTitle,
		CreatedAt:   s.CreatedAt,
	}
}

// SlotToDomain converts a persistence model back to the domain slot. Dates
// are re-normalized to UTC midnight because some drivers return local time.
func SlotToDomain(model *SlotModel) *mealplan.Slot {
	return &mealplan.Slot{
		ID:          model.ID,
		FoyerID:     model.FoyerID,
		Date:        mealplan.Day(model.Date),
		MealType:    mealplan.MealType(model.MealType),
		RecipeID:    model.RecipeID,
		RecipeTitle: model.RecipeTitle,
		CreatedAt:   model.CreatedAt,
	}
}

// TicketToModel converts a domain ticket to its persistence model
func TicketToModel(t *ticket.Ticket) (*TicketModel, error) {
	docs := make([]lineItemDoc, 0, len(t.Items))
	for _, item := range t.Items {
		docs = append(docs, lineItemDoc{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Category: item.Category,
			Price:    item.Price,
		})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	return &TicketModel{
		ID:        t.ID,
		FoyerID:   t.FoyerID,
		StoreName: t.StoreName,
		Date:      t.Date,
		Total:     t.Total,
		Items:     JSONColumn(raw),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

// TicketToDomain converts a persistence model back to the domain ticket
func TicketToDomain(model *TicketModel) (*ticket.Ticket, error) {
	var docs []lineItemDoc
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &docs); err != nil {
			return nil, err
		}
	}
	items := make([]ticket.LineItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, ticket.LineItem{
			Name:     doc.Name,
			Quantity: doc.Quantity,
			Unit:     doc.Unit,
			Category: doc.Category,
			Price:    doc.Price,
		})
	}
	return &ticket.Ticket{
		ID:        model.ID,
		FoyerID:   model.FoyerID,
		StoreName: model.StoreName,
		Date:      model.Date,
		Total:     model.Total,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
