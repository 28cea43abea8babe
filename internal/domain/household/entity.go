// Package household contains the core domain logic for household membership,
// subscription plans and feature access.
package household

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Member represents a household member profile. The identity itself lives in
// the external auth provider; this entity owns everything the application
// knows about the account.
type Member struct {
	id          uuid.UUID
	foyerID     uuid.UUID
	email       string
	displayName string
	plan        Plan
	diet        string
	emailAlerts bool
	role        Role
	permissions PermissionSet
	status      AccountStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// Role represents the role of a member within a household
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Plan represents the subscription tier of a member
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
	PlanFamily  Plan = "family"
)

// Permission represents an explicitly granted capability
type Permission string

const (
	PermissionManageStock     Permission = "manage_stock"
	PermissionViewBudget      Permission = "view_budget"
	PermissionManagePlanning  Permission = "manage_planning"
	PermissionGenerateRecipes Permission = "generate_recipes"
	PermissionAdminAccess     Permission = "admin_access"
)

// PermissionSet is the set of explicit permissions granted to a member
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from individual permissions
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether the permission is in the set
func (s PermissionSet) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the permissions in the set
func (s PermissionSet) List() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}
	return perms
}

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// NewMember creates a member profile with validation. The id comes from the
// external identity provider and is immutable afterwards.
func NewMember(id, foyerID uuid.UUID, email, displayName string) (*Member, error) {
	if id == uuid.Nil {
		return nil, ErrMemberIDRequired
	}
	if foyerID == uuid.Nil {
		return nil, ErrFoyerIDRequired
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Member{
		id:          id,
		foyerID:     foyerID,
		email:       strings.ToLower(email),
		displayName: displayName,
		plan:        PlanFree,
		role:        RoleMember,
		permissions: NewPermissionSet(),
		status:      AccountStatusActive,
		emailAlerts: true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RehydrateMember reconstructs a member from persisted state. It bypasses
// creation defaults and must only be called by the storage mappers.
func RehydrateMember(
	id, foyerID uuid.UUID,
	email, displayName string,
	plan Plan,
	diet string,
	emailAlerts bool,
	role Role,
	permissions PermissionSet,
	status AccountStatus,
	createdAt, updatedAt time.Time,
) *Member {
	return &Member{
		id:          id,
		foyerID:     foyerID,
		email:       email,
		displayName: displayName,
		plan:        plan,
		diet:        diet,
		emailAlerts: emailAlerts,
		role:        role,
		permissions: permissions,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the member's unique identifier
func (m *Member) ID() uuid.UUID { return m.id }

// FoyerID returns the household the member belongs to
func (m *Member) FoyerID() uuid.UUID { return m.foyerID }

// Email returns the member's email
func (m *Member) Email() string { return m.email }

// DisplayName returns the member's display name
func (m *Member) DisplayName() string { return m.displayName }

// Plan returns the member's subscription plan
func (m *Member) Plan() Plan { return m.plan }

// Diet returns the member's diet preference
func (m *Member) Diet() string { return m.diet }

// EmailAlerts reports whether the member wants email alerts
func (m *Member) EmailAlerts() bool { return m.emailAlerts }

// Role returns the member's role
func (m *Member) Role() Role { return m.role }

// Permissions returns the member's explicit permission set
func (m *Member) Permissions() PermissionSet { return m.permissions }

// Status returns the account status
func (m *Member) Status() AccountStatus { return m.status }

// CreatedAt returns when the profile was created
func (m *Member) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns when the profile was last updated
func (m *Member) UpdatedAt() time.Time { return m.updatedAt }

// IsActive reports whether the account is active
func (m *Member) IsActive() bool { return m.status == AccountStatusActive }

// UpdateProfile updates the mutable profile fields
func (m *Member) UpdateProfile(displayName, diet string, emailAlerts bool) {
	m.displayName = displayName
	m.diet = diet
	m.emailAlerts = emailAlerts
	m.updatedAt = time.Now()
}

// ChangePlan moves the member to a different subscription tier
func (m *Member) ChangePlan(plan Plan) error {
	switch plan {
	case PlanFree, PlanPremium, PlanFamily:
		m.plan = plan
		m.updatedAt = time.Now()
		return nil
	default:
		return ErrUnknownPlan
	}
}

// ChangeRole changes the member's role within the household
func (m *Member) ChangeRole(role Role) error {
	switch role {
	case RoleAdmin, RoleManager, RoleMember:
		m.role = role
		m.updatedAt = time.Now()
		return nil
	default:
		return ErrUnknownRole
	}
}

// GrantPermission grants an explicit permission
func (m *Member) GrantPermission(p Permission) {
	if m.permissions == nil {
		m.permissions = NewPermissionSet()
	}
	m.permissions[p] = struct{}{}
	m.updatedAt = time.Now()
}

// RevokePermission revokes an explicit permission
func (m *Member) RevokePermission(p Permission) {
	delete(m.permissions, p)
	m.updatedAt = time.Now()
}

// Suspend suspends the account. Profiles are never hard-deleted.
func (m *Member) Suspend() {
	m.status = AccountStatusSuspended
	m.updatedAt = time.Now()
}

// Reactivate reactivates a suspended account
func (m *Member) Reactivate() {
	m.status = AccountStatusActive
	m.updatedAt = time.Now()
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") || len(email) < 3 {
		return ErrInvalidEmail
	}
	return nil
}
