package outbound

import (
	"context"

	"github.com/foyerapp/foyer/internal/domain/pantry"
)

// AIService defines the typed operations delegated to the generative-AI
// collaborator. Implementations send a natural-language prompt plus a strict
// output schema and parse the JSON result. Expected failure modes (missing
// key, transport error, malformed JSON) surface as errors here; callers own
// the deterministic fallbacks.
type AIService interface {
	// GenerateRecipe creates a recipe from the current stock, household
	// size, diet preference and an optional meal-type label
	GenerateRecipe(ctx context.Context, req RecipeRequest) (*AIRecipe, error)

	// ParseReceipt extracts a structured receipt from a photo
	ParseReceipt(ctx context.Context, imageBase64 string) (*AIReceipt, error)

	// ParseCommands turns free text into stock commands
	ParseCommands(ctx context.Context, text string) ([]pantry.StockCommand, error)

	// IdentifyProduct recognizes a single product from a photo
	IdentifyProduct(ctx context.Context, imageBase64 string) (*AIProduct, error)

	// ScoreInventoryHealth rates the household stock from 0 to 100 with a
	// short explanation
	ScoreInventoryHealth(ctx context.Context, stock []StockLine) (*HealthReport, error)

	// AdviseBudget produces spending advice from recent receipt totals
	AdviseBudget(ctx context.Context, totals []float64) (string, error)
}

// AIMetrics records AI collaborator activity. Implementations must be
// safe for concurrent use.
type AIMetrics interface {
	// RecordAIRequest counts one collaborator call by operation and
	// outcome ("ok" or "error")
	RecordAIRequest(operation, outcome string)
	// RecordAIFallback counts one deterministic fallback served in place
	// of an AI result
	RecordAIFallback(operation string)
}

// RecipeRequest parameterizes AI recipe generation
type RecipeRequest struct {
	Stock         []StockLine
	HouseholdSize int
	Diet          string
	MealType      string
}

// StockLine is the AI-facing summary of one product
type StockLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// AIRecipe is the schema-constrained recipe payload
type AIRecipe struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Ingredients []AIIngredient `json:"ingredients"`
	Steps       []string       `json:"steps"`
	PrepTime    string         `json:"prep_time"`
	Calories    int            `json:"calories"`
	Servings    int            `json:"servings"`
}

// AIIngredient is one ingredient in an AI recipe
type AIIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// AIReceipt is the schema-constrained receipt payload
type AIReceipt struct {
	StoreName string          `json:"store_name"`
	Date      string          `json:"date"`
	Total     float64         `json:"total"`
	Items     []AIReceiptItem `json:"items"`
}

// AIReceiptItem is one extracted receipt line
type AIReceiptItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// AIProduct is a product candidate identified from an image
type AIProduct struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// HealthReport rates the stock
type HealthReport struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}
