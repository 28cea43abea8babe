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

// TicketHandler serves the receipt endpoints
type TicketHandler struct {
	tickets  inbound.TicketService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTicketHandler creates the ticket handler
func NewTicketHandler(tickets inbound.TicketService, validate *validator.Validate, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		tickets:  tickets,
		validate: validate,
		logger:   logger.Named("ticket-handler"),
	}
}

// RegisterRoutes mounts the ticket routes. Scanning and edits write to
// the stock ledger, so they sit behind the stock permission.
func (h *TicketHandler) RegisterRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePermission(household.PermissionManageStock))
		r.Post("/scan", h.Scan)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns the household's receipt history, newest first
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	result := h.tickets.ListTickets(r.Context(), foyerID)
	respondResult(w, r, toTicketViews(result.Data), result.Source)
}

type scanRequest struct {
	Image string `json:"image" validate:"required"`
}

// Scan extracts a receipt from a photo and ingests its items into the
// stock. An unreadable photo still produces an editable template ticket.
func (h *TicketHandler) Scan(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("image is required", err.Error()))
		return
	}

	t, source, err := h.tickets.ScanReceipt(r.Context(), foyerID, req.Image)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	resp := APIResponse{Success: true, Data: toTicketView(t)}
	if source == shared.SourceFallback {
		resp.Source = string(source)
		resp.Message = messages(r).ReceiptFallback
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Create records a receipt from manual entry
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, _ := middleware.FoyerID(r.Context())

	var input inbound.TicketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid ticket", err.Error()))
		return
	}

	t, err := h.tickets.CreateTicket(r.Context(), foyerID, input)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, toTicketView(t))
}

// Update edits a recorded receipt. Edits never re-ingest stock.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid ticket id"))
		return
	}

	var input inbound.TicketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid ticket", err.Error()))
		return
	}

	t, err := h.tickets.UpdateTicket(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toTicketView(t))
}

// Delete removes a receipt
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid ticket id"))
		return
	}

	if err := h.tickets.DeleteTicket(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
