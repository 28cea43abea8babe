package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/domain/mealplan"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// MealPlanHandler serves the weekly planning grid endpoints
type MealPlanHandler struct {
	plans    inbound.MealPlanService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewMealPlanHandler creates the meal plan handler
func NewMealPlanHandler(plans inbound.MealPlanService, validate *validator.Validate, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		plans:    plans,
		validate: validate,
		logger:   logger.Named("mealplan-handler"),
	}
}

// RegisterRoutes mounts the meal plan routes. Grid edits require the
// planning permission; single-step generation also needs the premium tier
// it rides on.
func (h *MealPlanHandler) RegisterRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Get("/week", h.Week)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePermission(household.PermissionManagePlanning))
		r.Post("/slots", h.Assign)
		r.Delete("/slots/{id}", h.Remove)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequirePlan(household.PlanPremium))
			r.Use(gate.RequirePermission(household.PermissionGenerateRecipes))
			r.Post("/slots/generate", h.Generate)
		})
	})
}

// Week returns the 7x4 grid for the week containing the requested date.
// Without a date parameter the current week is returned.
func (h *MealPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid date, expected YYYY-MM-DD"))
			return
		}
		ref = parsed
	}

	grid, err := h.plans.WeekGrid(r.Context(), foyerID, ref)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toGridView(grid))
}

type assignRequest struct {
	Date     string `json:"date" validate:"required"`
	MealType string `json:"meal_type" validate:"required"`
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
}

// Assign places a recipe on a grid cell, replacing any existing assignment
func (h *MealPlanHandler) Assign(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid slot", err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid date, expected YYYY-MM-DD"))
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe id"))
		return
	}

	slot, err := h.plans.AssignSlot(r.Context(), foyerID, date, mealplan.MealType(req.MealType), recipeID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, toSlotView(slot))
}

// Remove clears a grid cell
func (h *MealPlanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid slot id"))
		return
	}

	if err := h.plans.RemoveSlot(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Date     string `json:"date" validate:"required"`
	MealType string `json:"meal_type" validate:"required"`
}

type generateResponse struct {
	Slot   slotView   `json:"slot"`
	Recipe recipeView `json:"recipe"`
}

// Generate creates a recipe for a cell and assigns it in one step
func (h *MealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid request", err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid date, expected YYYY-MM-DD"))
		return
	}

	slot, rec, err := h.plans.GenerateForSlot(r.Context(), foyerID, date, mealplan.MealType(req.MealType))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp := APIResponse{Success: true, Data: generateResponse{
		Slot:   toSlotView(slot),
		Recipe: toRecipeView(rec),
	}}
	if !rec.AIGenerated {
		resp.Source = string(shared.SourceFallback)
		resp.Message = messages(r).RecipeFallback
	}
	respondJSON(w, http.StatusCreated, resp)
}
