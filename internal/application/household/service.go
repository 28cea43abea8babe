// Package household provides the application layer for member profiles,
// plans and permissions.
package household

import (
	"context"

	domain "github.com/foyerapp/foyer/internal/domain/household"
	"github.com/foyerapp/foyer/internal/ports/inbound"
	"github.com/foyerapp/foyer/internal/ports/outbound"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements member profile management. Sign-up happens at the
// external identity provider; the profile row is created or updated on
// first write here.
type Service struct {
	members outbound.MemberRepository
	logger  *zap.Logger
}

// NewService creates the household service
func NewService(members outbound.MemberRepository, logger *zap.Logger) *Service {
	return &Service{
		members: members,
		logger:  logger.Named("household-service"),
	}
}

// GetMember returns one member profile
func (s *Service) GetMember(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeMemberNotFound, "member not found")
	}
	return m, nil
}

// UpsertProfile creates the profile row on first write, or updates the
// mutable fields of an existing one
func (s *Service) UpsertProfile(ctx context.Context, id, foyerID uuid.UUID, input inbound.ProfileInput) (*domain.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		member, err = domain.NewMember(id, foyerID, input.Email, input.DisplayName)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid profile", err.Error())
		}
	}

	member.UpdateProfile(input.DisplayName, input.Diet, input.EmailAlerts)

	if err := s.members.Upsert(ctx, member); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return member, nil
}

// ChangePlan moves a member to a different subscription tier
func (s *Service) ChangePlan(ctx context.Context, id uuid.UUID, plan domain.Plan) error {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return err
	}
	if err := member.ChangePlan(plan); err != nil {
		return apperrors.NewValidationError("invalid plan", err.Error())
	}
	if err := s.members.Update(ctx, member); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// SetPermissions replaces a member's role and explicit permission set
func (s *Service) SetPermissions(ctx context.Context, id uuid.UUID, role domain.Role, perms []domain.Permission) error {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return err
	}
	if err := member.ChangeRole(role); err != nil {
		return apperrors.NewValidationError("invalid role", err.Error())
	}

	for _, p := range member.Permissions().List() {
		member.RevokePermission(p)
	}
	for _, p := range perms {
		member.GrantPermission(p)
	}

	if err := s.members.Update(ctx, member); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Suspend suspends an account. Profiles are never hard-deleted.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID) error {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return err
	}
	member.Suspend()

	if err := s.members.Update(ctx, member); err != nil {
		return apperrors.NewStorageError(err)
	}
	s.logger.Info("member suspended", zap.String("member_id", id.String()))
	return nil
}
