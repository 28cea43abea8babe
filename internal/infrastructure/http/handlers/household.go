package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/infrastructure/http/middleware"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// HouseholdHandler serves the profile and access endpoints
type HouseholdHandler struct {
	households inbound.HouseholdService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewHouseholdHandler creates the household handler
func NewHouseholdHandler(households inbound.HouseholdService, validate *validator.Validate, logger *zap.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		households: households,
		validate:   validate,
		logger:     logger.Named("household-handler"),
	}
}

// RegisterRoutes mounts the profile routes. Role, plan and permission
// changes live under a separate admin group.
func (h *HouseholdHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.Me)
	r.Put("/me", h.UpsertProfile)
}

// RegisterAdminRoutes mounts the member administration routes behind the
// admin permission
func (h *HouseholdHandler) RegisterAdminRoutes(r chi.Router, gate *middleware.AccessGate) {
	r.Use(gate.RequirePermission(household.PermissionAdminAccess))

	r.Put("/members/{id}/plan", h.ChangePlan)
	r.Put("/members/{id}/access", h.SetAccess)
	r.Delete("/members/{id}", h.Suspend)
}

// Me returns the authenticated member's profile
func (h *HouseholdHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.MemberID(r.Context())

	member, err := h.households.GetMember(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toMemberView(member))
}

// UpsertProfile creates or updates the authenticated member's profile
func (h *HouseholdHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.MemberID(r.Context())
	foyerID, _ := middleware.FoyerID(r.Context())

	var input inbound.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid profile", err.Error()))
		return
	}

	member, err := h.households.UpsertProfile(r.Context(), id, foyerID, input)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, toMemberView(member))
}

type changePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free premium family"`
}

// ChangePlan moves a member to a different subscription tier
func (h *HouseholdHandler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid member id"))
		return
	}

	var req changePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid plan", err.Error()))
		return
	}

	if err := h.households.ChangePlan(r.Context(), id, household.Plan(req.Plan)); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"plan": req.Plan})
}

type setAccessRequest struct {
	Role        string   `json:"role" validate:"required,oneof=admin manager member"`
	Permissions []string `json:"permissions"`
}

// SetAccess replaces a member's role and explicit permission set
func (h *HouseholdHandler) SetAccess(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid member id"))
		return
	}

	var req setAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, h.logger, apperrors.NewValidationError("invalid access settings", err.Error()))
		return
	}

	perms := make([]household.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, household.Permission(p))
	}

	if err := h.households.SetPermissions(r.Context(), id, household.Role(req.Role), perms); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"role":        req.Role,
		"permissions": req.Permissions,
	})
}

// Suspend suspends a member's account. Profiles are never hard-deleted.
func (h *HouseholdHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, apperrors.NewBadRequestError("invalid member id"))
		return
	}

	if err := h.households.Suspend(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
