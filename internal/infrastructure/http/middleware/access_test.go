package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/ports/inbound"
)

type stubHouseholdService struct {
	member *household.Member
	err    error
}

func (s *stubHouseholdService) GetMember(ctx context.Context, id uuid.UUID) (*household.Member, error) {
	return s.member, s.err
}

func (s *stubHouseholdService) UpsertProfile(ctx context.Context, id, foyerID uuid.UUID, input inbound.ProfileInput) (*household.Member, error) {
	return nil, errors.New("not implemented")
}

func (s *stubHouseholdService) ChangePlan(ctx context.Context, id uuid.UUID, plan household.Plan) error {
	return errors.New("not implemented")
}

func (s *stubHouseholdService) SetPermissions(ctx context.Context, id uuid.UUID, role household.Role, perms []household.Permission) error {
	return errors.New("not implemented")
}

func (s *stubHouseholdService) Suspend(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func newMember(t *testing.T) *household.Member {
	t.Helper()
	member, err := household.NewMember(uuid.New(), uuid.New(), "jean@example.fr", "Jean")
	require.NoError(t, err)
	return member
}

func identityRequest(memberID, foyerID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pantry/products", nil)
	return req.WithContext(WithIdentity(req.Context(), memberID, foyerID))
}

func TestLoadMemberStoresProfile(t *testing.T) {
	member := newMember(t)
	gate := NewAccessGate(&stubHouseholdService{member: member}, zap.NewNop())

	var got *household.Member
	handler := gate.LoadMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Member(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(member.ID(), member.FoyerID()))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, member.ID(), got.ID())
}

func TestLoadMemberUnknownMember(t *testing.T) {
	gate := NewAccessGate(&stubHouseholdService{err: errors.New("not found")}, zap.NewNop())

	handler := gate.LoadMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(uuid.New(), uuid.New()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoadMemberSuspendedAccount(t *testing.T) {
	member := newMember(t)
	member.Suspend()
	gate := NewAccessGate(&stubHouseholdService{member: member}, zap.NewNop())

	handler := gate.LoadMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(member.ID(), member.FoyerID()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_SUSPENDED")
}

func TestLoadMemberMissingIdentity(t *testing.T) {
	gate := NewAccessGate(&stubHouseholdService{}, zap.NewNop())

	handler := gate.LoadMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pantry/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func memberRequest(member *household.Member) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/generate", nil)
	ctx := context.WithValue(req.Context(), memberKey, member)
	return req.WithContext(ctx)
}

func TestRequirePlan(t *testing.T) {
	gate := NewAccessGate(&stubHouseholdService{}, zap.NewNop())
	guard := gate.RequirePlan(household.PlanPremium)

	free := newMember(t)
	premium := newMember(t)
	require.NoError(t, premium.ChangePlan(household.PlanPremium))

	ok := func(w http.ResponseWriter, r *http.Request) {}

	rec := httptest.NewRecorder()
	guard(http.HandlerFunc(ok)).ServeHTTP(rec, memberRequest(premium))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	guard(http.HandlerFunc(ok)).ServeHTTP(rec, memberRequest(free))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAN_REQUIRED")
}

func TestRequirePermission(t *testing.T) {
	gate := NewAccessGate(&stubHouseholdService{}, zap.NewNop())
	guard := gate.RequirePermission(household.PermissionManageStock)

	granted := newMember(t)
	granted.GrantPermission(household.PermissionManageStock)
	denied := newMember(t)

	ok := func(w http.ResponseWriter, r *http.Request) {}

	rec := httptest.NewRecorder()
	guard(http.HandlerFunc(ok)).ServeHTTP(rec, memberRequest(granted))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	guard(http.HandlerFunc(ok)).ServeHTTP(rec, memberRequest(denied))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "PERMISSION_REQUIRED")
}
