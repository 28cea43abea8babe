package household

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

type stubMemberRepo struct {
	members map[uuid.UUID]*domain.Member
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{members: make(map[uuid.UUID]*domain.Member)}
}

func (r *stubMemberRepo) Upsert(ctx context.Context, m *domain.Member) error {
	r.members[m.ID()] = m
	return nil
}

func (r *stubMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	if _, ok := r.members[m.ID()]; !ok {
		return errors.New("not found")
	}
	r.members[m.ID()] = m
	return nil
}

func (r *stubMemberRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMemberRepo) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*domain.Member, error) {
	var out []*domain.Member
	for _, m := range r.members {
		if m.FoyerID() == foyerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestUpsertProfileCreatesOnFirstWrite(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewService(repo, zap.NewNop())
	id, foyerID := uuid.New(), uuid.New()

	member, err := svc.UpsertProfile(context.Background(), id, foyerID, inbound.ProfileInput{
		Email:       "claire@exemple.fr",
		DisplayName: "Claire",
		Diet:        "sans gluten",
		EmailAlerts: true,
	})

	require.NoError(t, err)
	assert.Equal(t, id, member.ID())
	assert.Equal(t, domain.PlanFree, member.Plan())
	assert.Equal(t, "sans gluten", member.Diet())
	assert.Contains(t, repo.members, id)
}

func TestUpsertProfileUpdatesExisting(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewService(repo, zap.NewNop())
	id, foyerID := uuid.New(), uuid.New()

	_, err := svc.UpsertProfile(context.Background(), id, foyerID, inbound.ProfileInput{
		Email: "claire@exemple.fr", DisplayName: "Claire", EmailAlerts: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePlan(context.Background(), id, domain.PlanPremium))

	member, err := svc.UpsertProfile(context.Background(), id, foyerID, inbound.ProfileInput{
		Email: "claire@exemple.fr", DisplayName: "Claire B.", EmailAlerts: false,
	})

	require.NoError(t, err)
	assert.Equal(t, "Claire B.", member.DisplayName())
	assert.False(t, member.EmailAlerts())
	// A profile update never resets the subscription.
	assert.Equal(t, domain.PlanPremium, member.Plan())
}

func TestUpsertProfileRejectsInvalidEmail(t *testing.T) {
	svc := NewService(newStubMemberRepo(), zap.NewNop())

	_, err := svc.UpsertProfile(context.Background(), uuid.New(), uuid.New(), inbound.ProfileInput{
		Email: "pas-un-email",
	})

	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestChangePlanUnknownMember(t *testing.T) {
	svc := NewService(newStubMemberRepo(), zap.NewNop())

	err := svc.ChangePlan(context.Background(), uuid.New(), domain.PlanPremium)

	assert.True(t, apperrors.IsCode(err, apperrors.CodeMemberNotFound))
}

func TestSetPermissionsReplacesSet(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewService(repo, zap.NewNop())
	id := uuid.New()

	_, err := svc.UpsertProfile(context.Background(), id, uuid.New(), inbound.ProfileInput{
		Email: "paul@exemple.fr",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetPermissions(context.Background(), id, domain.RoleManager,
		[]domain.Permission{domain.PermissionManageStock, domain.PermissionViewBudget}))

	member := repo.members[id]
	assert.Equal(t, domain.RoleManager, member.Role())
	assert.True(t, member.Permissions().Contains(domain.PermissionManageStock))
	assert.True(t, member.Permissions().Contains(domain.PermissionViewBudget))

	// A second call replaces, not merges.
	require.NoError(t, svc.SetPermissions(context.Background(), id, domain.RoleMember,
		[]domain.Permission{domain.PermissionManagePlanning}))

	member = repo.members[id]
	assert.False(t, member.Permissions().Contains(domain.PermissionManageStock))
	assert.True(t, member.Permissions().Contains(domain.PermissionManagePlanning))
}

func TestSuspendKeepsProfile(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewService(repo, zap.NewNop())
	id := uuid.New()

	_, err := svc.UpsertProfile(context.Background(), id, uuid.New(), inbound.ProfileInput{
		Email: "paul@exemple.fr",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Suspend(context.Background(), id))

	member, err := svc.GetMember(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusSuspended, member.Status())
}
