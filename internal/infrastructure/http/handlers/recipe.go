package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// RecipeHandler serves the recipe endpoints
type RecipeHandler struct {
	recipes  inbound.RecipeService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipeHandler creates the recipe handler
func NewRecipeHandler(recipes inbound.RecipeService, validate *validator.Validate, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		validate: validate,
		logger:   logger.Named("recipe-handler"),
	}
}

// RegisterRoutes mounts the recipe routes. Generation is a premium
// feature behind the recipe permission.
func (h *RecipeHandler) RegisterRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePlan(household.PlanPremium))
		r.Use(gate.RequirePermission(household.PermissionGenerateRecipes))
		r.Post("/generate", h.Generate)
	})
}

// List returns the household's recipe book, newest first
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	result := h.recipes.ListRecipes(r.Context(), foyerID)
	respondResult(w, r, toRecipeViews(result.Data), result.Source)
}

// Get returns one recipe
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe id"))
		return
	}

	rec, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toRecipeView(rec))
}

type generateRecipeRequest struct {
	MealType string `json:"meal_type"`
}

// Generate creates a recipe from the current stock. When the assistant is
// unreachable a deterministic suggestion built from the stock is stored
// instead, so the call still yields a recipe.
func (h *RecipeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req generateRecipeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
			return
		}
	}

	rec, err := h.recipes.GenerateRecipe(r.Context(), foyerID, req.MealType)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	resp := APIResponse{Success: true, Data: toRecipeView(rec)}
	if !rec.AIGenerated {
		resp.Source = string(shared.SourceFallback)
		resp.Message = messages(r).RecipeFallback
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Delete removes a recipe
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe id"))
		return
	}

	if err := h.recipes.DeleteRecipe(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
