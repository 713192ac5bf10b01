package authz

// RoleAll is the wildcard endpoint rule: any authenticated role may pass.
const RoleAll = "all"

// Checker answers allow/deny questions against the immutable registry and
// endpoint table. A request whose "METHOD path" has no entry is denied for
// every role; the reference system mixed default-allow and default-deny, and
// default-deny is the deliberate choice here.
type Checker struct {
	registry  *Registry
	endpoints map[string][]string
}

// NewChecker builds a Checker over the given registry with the static
// endpoint table.
func NewChecker(registry *Registry) *Checker {
	return &Checker{
		registry:  registry,
		endpoints: endpointRules(),
	}
}

// Registry exposes the underlying role table.
func (c *Checker) Registry() *Registry {
	return c.registry
}

// supervisory designations: may create tasks for others and sit in the
// approval chain.
var approverRoles = []string{RoleAdmin, RoleGeneralManager, RoleStableManager, RoleHeadGroom}

// admin tier: privileged override (delete any task, cancel, manage staff).
var adminTierRoles = []string{RoleAdmin, RoleGeneralManager}

// endpointRules maps exact "METHOD path" keys (route templates, not concrete
// URLs) to the roles allowed through. RoleAll means any authenticated role.
func endpointRules() map[string][]string {
	supervisory := approverRoles
	adminTier := adminTierRoles

	return map[string][]string{
		"GET /api/auth/me": {RoleAll},

		"GET /api/employees":               {RoleAdmin, RoleGeneralManager, RoleStableManager},
		"GET /api/employees/:id":           {RoleAdmin, RoleGeneralManager, RoleStableManager},
		"PATCH /api/employees/:id":         adminTier,
		"PATCH /api/employees/:id/approve": adminTier,
		"DELETE /api/employees/:id":        adminTier,

		"GET /api/tasks":                         {RoleAll},
		"POST /api/tasks":                        supervisory,
		"GET /api/tasks/:id":                     {RoleAll},
		"PATCH /api/tasks/:id/start":             {RoleAll},
		"PATCH /api/tasks/:id/submit-completion": {RoleAll},
		"POST /api/tasks/:id/approve":            supervisory,
		"POST /api/tasks/:id/reject":             supervisory,
		"PATCH /api/tasks/:id/cancel":            adminTier,
		"DELETE /api/tasks/:id":                  {RoleAll},
		"GET /api/tasks/:id/approvals":           supervisory,

		"GET /api/horses":        {RoleAll},
		"GET /api/horses/:id":    {RoleAll},
		"POST /api/horses":       {RoleAdmin, RoleGeneralManager, RoleStableManager},
		"PATCH /api/horses/:id":  {RoleAdmin, RoleGeneralManager, RoleStableManager, RoleVeterinarian},
		"DELETE /api/horses/:id": adminTier,

		"POST /api/attendance/check-in":   {RoleAll},
		"PATCH /api/attendance/check-out": {RoleAll},
		"GET /api/attendance":             {RoleAll},

		"GET /api/inventory":              {RoleAll},
		"POST /api/inventory":             {RoleAdmin, RoleGeneralManager, RoleStableManager, RoleVeterinarian, RoleFeedStaff},
		"PATCH /api/inventory/:id":        {RoleAdmin, RoleGeneralManager, RoleStableManager, RoleVeterinarian, RoleFeedStaff},
		"PATCH /api/inventory/:id/adjust": {RoleAdmin, RoleGeneralManager, RoleStableManager, RoleVeterinarian, RoleFeedStaff},
		"DELETE /api/inventory/:id":       adminTier,

		"POST /api/fines":      supervisory,
		"GET /api/fines":       {RoleAll},
		"PATCH /api/fines/:id": supervisory,

		"POST /api/inspections": {RoleAdmin, RoleGeneralManager, RoleStableManager, RoleHeadGroom, RoleVeterinarian, RoleTrainer},
		"GET /api/inspections":  {RoleAll},

		"POST /api/meetings":       supervisory,
		"GET /api/meetings":        {RoleAll},
		"DELETE /api/meetings/:id": supervisory,
	}
}

// CanAccessEndpoint reports whether a role may call the endpoint. The key is
// the exact method plus route template; a missing rule denies everyone.
func (c *Checker) CanAccessEndpoint(role, method, path string) bool {
	allowed, ok := c.endpoints[method+" "+path]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == RoleAll {
			return c.registry.IsKnown(role)
		}
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether a role carries the named permission.
func (c *Checker) HasPermission(role, permission string) bool {
	_, ok := c.registry.Permissions(role)[permission]
	return ok
}

// CanApprove reports whether a role may approve or reject submitted tasks.
func (c *Checker) CanApprove(role string) bool {
	for _, r := range approverRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanAssignTasks reports whether a role may create tasks for other staff.
func (c *Checker) CanAssignTasks(role string) bool {
	return c.HasPermission(role, PermTasksCreate)
}

// IsAdminTier reports whether a role has the privileged override.
func (c *Checker) IsAdminTier(role string) bool {
	for _, r := range adminTierRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ApproverRoles returns the designations eligible to act on approvals.
func ApproverRoles() []string {
	out := make([]string, len(approverRoles))
	copy(out, approverRoles)
	return out
}
