package handlers

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/domain/recipe"
	"github.com/foyerapp/foyer/internal/domain/ticket"
)

// View types decouple the JSON surface from the domain entities.

type productView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit,omitempty"`
	Category     string     `json:"category,omitempty"`
	MinThreshold float64    `json:"min_threshold"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	LowStock     bool       `json:"low_stock"`
	Expiring     bool       `json:"expiring"`
	Expired      bool       `json:"expired"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toProductView(p *pantry.Product, now time.Time) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		Category:     p.Category,
		MinThreshold: p.MinThreshold,
		ExpiryDate:   p.ExpiryDate,
		LowStock:     p.IsLowStock(),
		Expiring:     p.IsExpiring(now),
		Expired:      p.IsExpired(now),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductViews(products []*pantry.Product, now time.Time) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, now))
	}
	return views
}

type watchlistView struct {
	Headline       string        `json:"headline"`
	Products       []productView `json:"products"`
	AttentionCount int           `json:"attention_count"`
}

func toWatchlistView(w pantry.Watchlist, now time.Time, headline string) watchlistView {
	return watchlistView{
		Headline:       headline,
		Products:       toProductViews(w.Products, now),
		AttentionCount: w.AttentionCount,
	}
}

type commandOutcomeView struct {
	Action   string       `json:"action"`
	Item     string       `json:"item"`
	Quantity float64      `json:"quantity"`
	Unit     string       `json:"unit,omitempty"`
	Created  *productView `json:"created,omitempty"`
	Updated  *productView `json:"updated,omitempty"`
	Dropped  bool         `json:"dropped"`
}

func toCommandOutcomeViews(outcomes []pantry.CommandOutcome, now time.Time) []commandOutcomeView {
	views := make([]commandOutcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		view := commandOutcomeView{
			Action:   string(o.Command.Action),
			Item:     o.Command.Item,
			Quantity: o.Command.Quantity,
			Unit:     o.Command.Unit,
			Dropped:  o.Dropped,
		}
		if o.Created != nil {
			created := toProductView(o.Created, now)
			view.Created = &created
		}
		if o.Updated != nil {
			updated := toProductView(o.Updated, now)
			view.Updated = &updated
		}
		views = append(views, view)
	}
	return views
}

type ingredientView struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

type recipeView struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Ingredients []ingredientView `json:"ingredients"`
	Steps       []string         `json:"steps"`
	PrepTime    string           `json:"prep_time,omitempty"`
	Calories    int              `json:"calories,omitempty"`
	Servings    int              `json:"servings,omitempty"`
	ImageRef    string           `json:"image_ref,omitempty"`
	AIGenerated bool             `json:"ai_generated"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toRecipeView(r *recipe.Recipe) recipeView {
	ingredients := make([]ingredientView, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ingredientView{Name: ing.Name, Quantity: ing.Quantity})
	}
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}
	return recipeView{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: ingredients,
		Steps:       steps,
		PrepTime:    r.PrepTime,
		Calories:    r.Calories,
		Servings:    r.Servings,
		ImageRef:    r.ImageRef,
		AIGenerated: r.AIGenerated,
		CreatedAt:   r.CreatedAt,
	}
}

func toRecipeViews(recipes []*recipe.Recipe) []recipeView {
	views := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, toRecipeView(r))
	}
	return views
}

type slotView struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	MealType    string    `json:"meal_type"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
}

func toSlotView(s *mealplan.Slot) slotView {
	return slotView{
		ID:          s.ID,
		Date:        s.Date.Format("2006-01-02"),
		MealType:    string(s.MealType),
		RecipeID:    s.RecipeID,
		RecipeTitle: s.RecipeTitle,
	}
}

type gridDayView struct {
	Date  string               `json:"date"`
	Meals map[string]*slotView `json:"meals"`
}

type gridView struct {
	WeekStart string        `json:"week_start"`
	Days      []gridDayView `json:"days"`
}

func toGridView(g mealplan.Grid) gridView {
	days := make([]gridDayView, 0, mealplan.DaysPerWeek)
	for dayIdx, date := range mealplan.WeekDays(g.WeekStart) {
		day := gridDayView{
			Date:  date.Format("2006-01-02"),
			Meals: make(map[string]*slotView, len(mealplan.MealTypes)),
		}
		for mealIdx, mealType := range mealplan.MealTypes {
			if slot := g.Cells[dayIdx][mealIdx]; slot != nil {
				view := toSlotView(slot)
				day.Meals[string(mealType)] = &view
			} else {
				day.Meals[string(mealType)] = nil
			}
		}
		days = append(days, day)
	}
	return gridView{
		WeekStart: g.WeekStart.Format("2006-01-02"),
		Days:      days,
	}
}

type lineItemView struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}

type ticketView struct {
	ID        uuid.UUID      `json:"id"`
	StoreName string         `json:"store_name"`
	Date      string         `json:"date"`
	Total     float64        `json:"total"`
	Items     []lineItemView `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toTicketView(t *ticket.Ticket) ticketView {
	items := make([]lineItemView, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, lineItemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Category: item.Category,
			Price:    item.Price,
		})
	}
	return ticketView{
		ID:        t.ID,
		StoreName: t.StoreName,
		Date:      t.Date.Format("2006-01-02"),
		Total:     t.Total,
		Items:     items,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTicketViews(tickets []*ticket.Ticket) []ticketView {
	views := make([]ticketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, toTicketView(t))
	}
	return views
}

type memberView struct {
	ID          uuid.UUID `json:"id"`
	FoyerID     uuid.UUID `json:"foyer_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Plan        string    `json:"plan"`
	Diet        string    `json:"diet,omitempty"`
	EmailAlerts bool      `json:"email_alerts"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMemberView(m *household.Member) memberView {
	perms := m.Permissions().List()
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return memberView{
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
	}
}
