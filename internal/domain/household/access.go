package household

// Access gating. Plan tier and explicit permissions are independent axes:
// a feature may require a plan tier, a permission, or both. The admin role
// passes every gate regardless of plan or permission set, and an absent
// (unauthenticated) member fails every gate.

// HasAccess reports whether the member's subscription satisfies requiredPlan.
func HasAccess(m *Member, requiredPlan Plan) bool {
	if m == nil || !m.IsActive() {
		return false
	}
	if m.role == RoleAdmin {
		return true
	}

	switch requiredPlan {
	case PlanFree:
		return true
	case PlanPremium:
		return m.plan == PlanPremium || m.plan == PlanFamily
	case PlanFamily:
		return m.plan == PlanFamily
	default:
		return false
	}
}

// HasPermission reports whether the member holds the explicit permission.
// Admins hold every permission implicitly.
func HasPermission(m *Member, p Permission) bool {
	if m == nil || !m.IsActive() {
		return false
	}
	if m.role == RoleAdmin {
		return true
	}
	return m.permissions.Contains(p)
}

// CanManageStock reports whether the member may mutate the pantry
func CanManageStock(m *Member) bool { return HasPermission(m, PermissionManageStock) }

// CanViewBudget reports whether the member may see budget features
func CanViewBudget(m *Member) bool { return HasPermission(m, PermissionViewBudget) }

// CanManagePlanning reports whether the member may edit the meal plan
func CanManagePlanning(m *Member) bool { return HasPermission(m, PermissionManagePlanning) }

// CanGenerateRecipes reports whether the member may request AI recipes
func CanGenerateRecipes(m *Member) bool { return HasPermission(m, PermissionGenerateRecipes) }
