package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// AdvisorHandler serves the AI-backed advisory endpoints
type AdvisorHandler struct {
	advisor  inbound.AdvisorService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAdvisorHandler creates the advisor handler
func NewAdvisorHandler(advisor inbound.AdvisorService, validate *validator.Validate, logger *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		advisor:  advisor,
		validate: validate,
		logger:   logger.Named("advisor-handler"),
	}
}

// RegisterRoutes mounts the advisor routes. The whole group is a premium
// feature; budget advice additionally requires the budget permission.
func (h *AdvisorHandler) RegisterRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Use(gate.RequirePlan(household.PlanPremium))

	r.Get("/inventory-health", h.InventoryHealth)
	r.Post("/identify-product", h.IdentifyProduct)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePermission(household.PermissionViewBudget))
		r.Get("/budget-advice", h.BudgetAdvice)
	})
}

type healthResponse struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// InventoryHealth rates the household's stock balance
func (h *AdvisorHandler) InventoryHealth(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	score, summary, err := h.advisor.InventoryHealth(r.Context(), foyerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, healthResponse{Score: score, Summary: summary})
}

// BudgetAdvice produces spending advice from the receipt history
func (h *AdvisorHandler) BudgetAdvice(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	advice, err := h.advisor.BudgetAdvice(r.Context(), foyerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"advice": advice})
}

type identifyRequest struct {
	Image string `json:"image" validate:"required"`
}

// IdentifyProduct recognizes a product from a photo and adds it to the
// stock
func (h *AdvisorHandler) IdentifyProduct(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req identifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("image is required", err.Error()))
		return
	}

	product, err := h.advisor.IdentifyProduct(r.Context(), foyerID, req.Image)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, toProductView(product, time.Now()))
}
