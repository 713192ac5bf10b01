package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestChecker() *Checker {
	return NewChecker(NewRegistry())
}

func TestCanAccessEndpoint_Matrix(t *testing.T) {
	checker := newTestChecker()

	tests := []struct {
		role   string
		method string
		path   string
		want   bool
	}{
		// Task creation is supervisory only.
		{RoleAdmin, "POST", "/api/tasks", true},
		{RoleStableManager, "POST", "/api/tasks", true},
		{RoleHeadGroom, "POST", "/api/tasks", true},
		{RoleGroom, "POST", "/api/tasks", false},
		{RoleVeterinarian, "POST", "/api/tasks", false},

		// Approval endpoints follow the same set.
		{RoleHeadGroom, "POST", "/api/tasks/:id/approve", true},
		{RoleTrainer, "POST", "/api/tasks/:id/approve", false},
		{RoleGroom, "POST", "/api/tasks/:id/reject", false},

		// Cancel is the admin-tier override.
		{RoleGeneralManager, "PATCH", "/api/tasks/:id/cancel", true},
		{RoleStableManager, "PATCH", "/api/tasks/:id/cancel", false},

		// Wildcard endpoints admit any known role.
		{RoleGroom, "GET", "/api/tasks", true},
		{RoleMaintenanceStaff, "POST", "/api/attendance/check-in", true},

		// Staff administration.
		{RoleAdmin, "PATCH", "/api/employees/:id/approve", true},
		{RoleStableManager, "PATCH", "/api/employees/:id/approve", false},
		{RoleStableManager, "GET", "/api/employees", true},
		{RoleGroom, "GET", "/api/employees", false},

		// Inventory includes the vet and feed staff.
		{RoleFeedStaff, "PATCH", "/api/inventory/:id/adjust", true},
		{RoleVeterinarian, "POST", "/api/inventory", true},
		{RoleGroom, "POST", "/api/inventory", false},
	}

	for _, tt := range tests {
		got := checker.CanAccessEndpoint(tt.role, tt.method, tt.path)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.role, tt.method, tt.path)
	}
}

func TestCanAccessEndpoint_MissingRuleDeniesEveryone(t *testing.T) {
	checker := newTestChecker()

	for _, role := range []string{RoleAdmin, RoleGeneralManager, RoleGroom} {
		assert.False(t, checker.CanAccessEndpoint(role, "GET", "/api/unlisted"), "role %q", role)
		assert.False(t, checker.CanAccessEndpoint(role, "PUT", "/api/tasks"), "role %q", role)
	}
}

func TestCanAccessEndpoint_WildcardStillRequiresKnownRole(t *testing.T) {
	checker := newTestChecker()

	assert.False(t, checker.CanAccessEndpoint("Janitor", "GET", "/api/tasks"))
	assert.False(t, checker.CanAccessEndpoint("", "GET", "/api/tasks"))
}

func TestCanAccessEndpoint_Deterministic(t *testing.T) {
	checker := newTestChecker()

	for i := 0; i < 100; i++ {
		assert.True(t, checker.CanAccessEndpoint(RoleHeadGroom, "POST", "/api/tasks"))
		assert.False(t, checker.CanAccessEndpoint(RoleGroom, "POST", "/api/tasks"))
	}
}

func TestCanApprove(t *testing.T) {
	checker := newTestChecker()

	assert.True(t, checker.CanApprove(RoleAdmin))
	assert.True(t, checker.CanApprove(RoleGeneralManager))
	assert.True(t, checker.CanApprove(RoleStableManager))
	assert.True(t, checker.CanApprove(RoleHeadGroom))

	assert.False(t, checker.CanApprove(RoleVeterinarian))
	assert.False(t, checker.CanApprove(RoleTrainer))
	assert.False(t, checker.CanApprove(RoleGroom))
	assert.False(t, checker.CanApprove("Janitor"))
}

func TestIsAdminTier(t *testing.T) {
	checker := newTestChecker()

	assert.True(t, checker.IsAdminTier(RoleAdmin))
	assert.True(t, checker.IsAdminTier(RoleGeneralManager))
	assert.False(t, checker.IsAdminTier(RoleStableManager))
	assert.False(t, checker.IsAdminTier(RoleGroom))
}

func TestApproverRoles_ReturnsCopy(t *testing.T) {
	roles := ApproverRoles()
	roles[0] = "Janitor"
	assert.Equal(t, RoleAdmin, ApproverRoles()[0])
}
