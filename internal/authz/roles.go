package authz

// Designation strings recognized by the registry. Anything else is an
// unknown role and carries no permissions.
const (
	RoleAdmin            = "Admin"
	RoleGeneralManager   = "General Manager"
	RoleStableManager    = "Stable Manager"
	RoleHeadGroom        = "Head Groom"
	RoleVeterinarian     = "Veterinarian"
	RoleTrainer          = "Trainer"
	RoleGroom            = "Groom"
	RoleFeedStaff        = "Feed Staff"
	RoleMaintenanceStaff = "Maintenance Staff"
)

// Departments.
const (
	DeptManagement  = "management"
	DeptStable      = "stable"
	DeptMedical     = "medical"
	DeptTraining    = "training"
	DeptFeed        = "feed"
	DeptMaintenance = "maintenance"
)

// Permission names.
const (
	PermTasksCreate       = "tasks:create"
	PermTasksApprove      = "tasks:approve"
	PermTasksCancel       = "tasks:cancel"
	PermEmployeesManage   = "employees:manage"
	PermHorsesManage      = "horses:manage"
	PermInventoryManage   = "inventory:manage"
	PermFinesIssue        = "fines:issue"
	PermInspectionsWrite  = "inspections:write"
	PermMeetingsManage    = "meetings:manage"
	PermAttendanceViewAll = "attendance:view-all"
)

// UnknownLevel is returned for designations the registry does not recognize.
const UnknownLevel = -1

type roleInfo struct {
	level       int
	department  string
	permissions map[string]struct{}
}

// Registry is the immutable role table. Build it once at startup and inject
// it; there is no runtime mutation path.
type Registry struct {
	roles map[string]roleInfo
}

func perms(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// NewRegistry builds the static role table.
func NewRegistry() *Registry {
	return &Registry{roles: map[string]roleInfo{
		RoleAdmin: {
			level:      6,
			department: DeptManagement,
			permissions: perms(
				PermTasksCreate, PermTasksApprove, PermTasksCancel,
				PermEmployeesManage, PermHorsesManage, PermInventoryManage,
				PermFinesIssue, PermInspectionsWrite, PermMeetingsManage,
				PermAttendanceViewAll,
			),
		},
		RoleGeneralManager: {
			level:      5,
			department: DeptManagement,
			permissions: perms(
				PermTasksCreate, PermTasksApprove, PermTasksCancel,
				PermEmployeesManage, PermHorsesManage, PermInventoryManage,
				PermFinesIssue, PermInspectionsWrite, PermMeetingsManage,
				PermAttendanceViewAll,
			),
		},
		RoleStableManager: {
			level:      4,
			department: DeptStable,
			permissions: perms(
				PermTasksCreate, PermTasksApprove,
				PermHorsesManage, PermInventoryManage,
				PermFinesIssue, PermInspectionsWrite, PermMeetingsManage,
				PermAttendanceViewAll,
			),
		},
		RoleHeadGroom: {
			level:      3,
			department: DeptStable,
			permissions: perms(
				PermTasksCreate, PermTasksApprove,
				PermInspectionsWrite, PermAttendanceViewAll,
			),
		},
		RoleVeterinarian: {
			level:      3,
			department: DeptMedical,
			permissions: perms(
				PermInventoryManage, PermInspectionsWrite,
			),
		},
		RoleTrainer: {
			level:       2,
			department:  DeptTraining,
			permissions: perms(PermInspectionsWrite),
		},
		RoleGroom: {
			level:       1,
			department:  DeptStable,
			permissions: perms(),
		},
		RoleFeedStaff: {
			level:       1,
			department:  DeptFeed,
			permissions: perms(PermInventoryManage),
		},
		RoleMaintenanceStaff: {
			level:       1,
			department:  DeptMaintenance,
			permissions: perms(),
		},
	}}
}

// Permissions returns the permission set for a role. Unknown roles get an
// empty set, so callers fall through to "no permission".
func (r *Registry) Permissions(role string) map[string]struct{} {
	info, ok := r.roles[role]
	if !ok {
		return map[string]struct{}{}
	}
	out := make(map[string]struct{}, len(info.permissions))
	for p := range info.permissions {
		out[p] = struct{}{}
	}
	return out
}

// HierarchyLevel returns the hierarchy tier for a role, higher meaning more
// privileged. Unknown roles get UnknownLevel.
func (r *Registry) HierarchyLevel(role string) int {
	info, ok := r.roles[role]
	if !ok {
		return UnknownLevel
	}
	return info.level
}

// MaxLevel is the top of the hierarchy; escalation chains stop here.
func (r *Registry) MaxLevel() int {
	max := UnknownLevel
	for _, info := range r.roles {
		if info.level > max {
			max = info.level
		}
	}
	return max
}

// DepartmentRoles returns the designations belonging to a department.
func (r *Registry) DepartmentRoles(department string) []string {
	var out []string
	for name, info := range r.roles {
		if info.department == department {
			out = append(out, name)
		}
	}
	return out
}

// IsKnown reports whether a designation is in the registry.
func (r *Registry) IsKnown(role string) bool {
	_, ok := r.roles[role]
	return ok
}
