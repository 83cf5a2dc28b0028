package identity

import (
	"fmt"
)

// Role represents a user's role within the platform. Roles are either
// system-level (super_admin) or tenant-level (tenant_admin, user).
type Role string

const (
	// RoleSuperAdmin manages tenants and platform configuration. Super admins
	// are tenant-independent and never carry a tenant ID.
	RoleSuperAdmin Role = "super_admin"
	// RoleTenantAdmin manages users, projects, tasks, and settings within a
	// single tenant.
	RoleTenantAdmin Role = "tenant_admin"
	// RoleUser is a regular member of a tenant.
	RoleUser Role = "user"
)

// Capability is a named permission a role may hold.
type Capability string

const (
	CapManageTenants         Capability = "manage_tenants"
	CapManageUsers           Capability = "manage_users"
	CapManageProjects        Capability = "manage_projects"
	CapManageTasks           Capability = "manage_tasks"
	CapManageTenantSettings  Capability = "manage_tenant_settings"
	CapViewOwnTenantProjects Capability = "view_own_tenant_projects"
	CapManageOwnResources    Capability = "manage_own_resources"
)

// roleCapabilities is the static role to capability mapping. It is never
// mutated at runtime; unknown roles map to no capabilities.
var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {CapManageTenants},
	RoleTenantAdmin: {
		CapManageUsers,
		CapManageProjects,
		CapManageTasks,
		CapManageTenantSettings,
	},
	RoleUser: {
		CapViewOwnTenantProjects,
		CapManageOwnResources,
	},
}

// CapabilitiesOf returns the capability set for a role. Unknown roles return
// an empty set, so every capability check denies by default.
func CapabilitiesOf(role Role) []Capability {
	caps, ok := roleCapabilities[role]
	if !ok {
		return nil
	}
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// HasCapability reports whether a role holds a specific capability.
func HasCapability(role Role, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// Satisfies reports whether role is a member of the required set. There is no
// hierarchy inference: a gate that accepts tenant_admin does not implicitly
// accept super_admin. Every gate enumerates every role it accepts.
func Satisfies(role Role, required []Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the record of an authenticated actor. Email and FullName are
// descriptive only and never consulted by authorization decisions.
type Identity struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId,omitempty"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// Validate checks the structural invariants of an identity record: a known
// role, a user ID, and a tenant ID that is empty exactly when the role is
// super_admin.
func (id Identity) Validate() error {
	if id.UserID == "" {
		return fmt.Errorf("identity missing user id")
	}
	switch id.Role {
	case RoleSuperAdmin:
		if id.TenantID != "" {
			return fmt.Errorf("super_admin %q must not carry a tenant id", id.UserID)
		}
	case RoleTenantAdmin, RoleUser:
		if id.TenantID == "" {
			return fmt.Errorf("%s %q requires a tenant id", id.Role, id.UserID)
		}
	default:
		return fmt.Errorf("unknown role %q", id.Role)
	}
	return nil
}

// IsSuperAdmin returns true if the identity has platform-level privileges.
func (id Identity) IsSuperAdmin() bool {
	return id.Role == RoleSuperAdmin
}

// BelongsTo reports whether the identity is a member of the given tenant.
// Super admins are tenant-independent and belong to no tenant.
func (id Identity) BelongsTo(tenantID string) bool {
	return id.TenantID != "" && id.TenantID == tenantID
}
