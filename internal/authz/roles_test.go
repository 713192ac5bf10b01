package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHierarchyLevels(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		role  string
		level int
	}{
		{RoleAdmin, 6},
		{RoleGeneralManager, 5},
		{RoleStableManager, 4},
		{RoleHeadGroom, 3},
		{RoleVeterinarian, 3},
		{RoleTrainer, 2},
		{RoleGroom, 1},
		{RoleFeedStaff, 1},
		{RoleMaintenanceStaff, 1},
		{"Janitor", UnknownLevel},
		{"", UnknownLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, registry.HierarchyLevel(tt.role), "role %q", tt.role)
	}
}

func TestMaxLevel(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 6, registry.MaxLevel())
}

func TestPermissions_UnknownRoleIsEmpty(t *testing.T) {
	registry := NewRegistry()

	assert.Empty(t, registry.Permissions("Janitor"))
	assert.Empty(t, registry.Permissions(""))
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	registry := NewRegistry()

	perms := registry.Permissions(RoleGeneralManager)
	perms["made-up:permission"] = struct{}{}

	// Mutating the returned set must not leak into the registry.
	assert.NotContains(t, registry.Permissions(RoleGeneralManager), "made-up:permission")
}

func TestPermissions_RoleMatrix(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleAdmin, PermTasksApprove, true},
		{RoleAdmin, PermEmployeesManage, true},
		{RoleGeneralManager, PermTasksCancel, true},
		{RoleStableManager, PermTasksCreate, true},
		{RoleStableManager, PermEmployeesManage, false},
		{RoleHeadGroom, PermTasksApprove, true},
		{RoleHeadGroom, PermHorsesManage, false},
		{RoleVeterinarian, PermInventoryManage, true},
		{RoleVeterinarian, PermTasksCreate, false},
		{RoleTrainer, PermInspectionsWrite, true},
		{RoleTrainer, PermFinesIssue, false},
		{RoleGroom, PermTasksCreate, false},
		{RoleFeedStaff, PermInventoryManage, true},
		{RoleMaintenanceStaff, PermInventoryManage, false},
	}

	for _, tt := range tests {
		_, ok := registry.Permissions(tt.role)[tt.permission]
		assert.Equal(t, tt.want, ok, "%s / %s", tt.role, tt.permission)
	}
}

func TestDepartmentRoles(t *testing.T) {
	registry := NewRegistry()

	stable := registry.DepartmentRoles(DeptStable)
	assert.ElementsMatch(t, []string{RoleStableManager, RoleHeadGroom, RoleGroom}, stable)

	management := registry.DepartmentRoles(DeptManagement)
	assert.ElementsMatch(t, []string{RoleAdmin, RoleGeneralManager}, management)

	assert.Empty(t, registry.DepartmentRoles("warehouse"))
}

func TestIsKnown(t *testing.T) {
	registry := NewRegistry()

	assert.True(t, registry.IsKnown(RoleGroom))
	assert.False(t, registry.IsKnown("groom"))
	assert.False(t, registry.IsKnown(""))
}
