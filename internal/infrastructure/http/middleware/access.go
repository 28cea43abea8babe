package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

const memberKey contextKey = "member"

// AccessGate loads the authenticated member's profile and enforces plan
// and permission requirements per route group
type AccessGate struct {
	households inbound.HouseholdService
	logger     *zap.Logger
}

// NewAccessGate creates the gate
func NewAccessGate(households inbound.HouseholdService, logger *zap.Logger) *AccessGate {
	return &AccessGate{
		households: households,
		logger:     logger.Named("access-gate"),
	}
}

// LoadMember resolves the profile for the authenticated member id and
// stores it on the context. Suspended accounts are rejected here.
func (g *AccessGate) LoadMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := MemberID(r.Context())
		if !ok {
			unauthorized(w, "missing identity")
			return
		}

		member, err := g.households.GetMember(r.Context(), id)
		if err != nil {
			g.logger.Debug("member lookup failed", zap.String("member_id", id.String()), zap.Error(err))
			unauthorized(w, "unknown member")
			return
		}
		if !member.IsActive() {
			forbid(w, apperrors.CodeAccountSuspended, "account is suspended")
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePlan gates a route group behind a subscription tier
func (g *AccessGate) RequirePlan(plan household.Plan) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !household.HasAccess(Member(r.Context()), plan) {
				forbid(w, apperrors.CodePlanRequired, "subscription upgrade required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route group behind an explicit permission
func (g *AccessGate) RequirePermission(perm household.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !household.HasPermission(Member(r.Context()), perm) {
				forbid(w, apperrors.CodePermissionRequired, "permission required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Member extracts the loaded member profile from the context, or nil
func Member(ctx context.Context) *household.Member {
	member, _ := ctx.Value(memberKey).(*household.Member)
	return member
}

func forbid(w http.ResponseWriter, code apperrors.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}
