package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// PantryHandler serves the stock endpoints
type PantryHandler struct {
	pantry   inbound.PantryService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPantryHandler creates the pantry handler
func NewPantryHandler(pantry inbound.PantryService, validate *validator.Validate, logger *zap.Logger) *PantryHandler {
	return &PantryHandler{
		pantry:   pantry,
		validate: validate,
		logger:   logger.Named("pantry-handler"),
	}
}

// RegisterRoutes mounts the pantry routes. Reads are open to every active
// member; mutations require the stock permission.
func (h *PantryHandler) RegisterRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Get("/products", h.List)
	r.Get("/watchlist", h.Watchlist)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePermission(household.PermissionManageStock))
		r.Post("/products", h.Create)
		r.Put("/products/{id}", h.Update)
		r.Delete("/products/{id}", h.Delete)
		r.Post("/commands", h.ApplyCommands)
	})
}

// List returns the household's full stock
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	result := h.pantry.ListProducts(r.Context(), foyerID)
	respondResult(w, r, toProductViews(result.Data, time.Now()), result.Source)
}

// Create adds a product from manual entry
func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var input inbound.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid product", err.Error()))
		return
	}

	product, err := h.pantry.CreateProduct(r.Context(), foyerID, input)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, toProductView(product, time.Now()))
}

// Update edits a product
func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid product id"))
		return
	}

	var input inbound.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid product", err.Error()))
		return
	}

	product, err := h.pantry.UpdateProduct(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toProductView(product, time.Now()))
}

// Delete removes a product
func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid product id"))
		return
	}

	if err := h.pantry.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Watchlist returns the products needing attention, most urgent first
func (h *PantryHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	result := h.pantry.Watchlist(r.Context(), foyerID)
	respondResult(w, r, toWatchlistView(result.Data, time.Now(), messages(r).WatchlistHeadline), result.Source)
}

type commandRequest struct {
	Text string `json:"text" validate:"required"`
}

// ApplyCommands parses free text into stock commands and applies them
func (h *PantryHandler) ApplyCommands(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("text is required", err.Error()))
		return
	}

	outcomes, err := h.pantry.ApplyCommandText(r.Context(), foyerID, req.Text)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toCommandOutcomeViews(outcomes, time.Now()))
}
