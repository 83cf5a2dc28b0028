// Package policy arbitrates fine-grained access where role alone is not
// enough: who may mutate a specific resource, and who may deactivate a user
// account. Decisions are pure functions over the actor, the resource's
// ownership metadata, and a tenant-scope flag supplied by the caller.
//
// Tenant scoping of queries themselves is the data layer's job; this package
// only settles ownership within an already tenant-scoped result set.
package policy

import "github.com/tenantflow/authcore/identity"

// Ownership is the access-relevant metadata attached to a mutable resource.
// CreatedBy is immutable after creation; every mutable resource has exactly
// one creator.
type Ownership struct {
	CreatedBy string
	TenantID  string
}

// CanMutate reports whether the actor may edit or delete a resource.
// tenantScopeMatches is the caller's assertion that the resource belongs to
// the actor's tenant; a resource from another tenant is never mutable,
// regardless of role or ownership.
//
// Within the tenant, a tenant_admin may mutate any resource and a user only
// resources they personally created.
func CanMutate(actor identity.Identity, resource Ownership, tenantScopeMatches bool) bool {
	if !tenantScopeMatches {
		return false
	}
	return actor.Role == identity.RoleTenantAdmin || actor.UserID == resource.CreatedBy
}

// CanDeactivate reports whether the actor may deactivate the target user's
// account. Only tenant admins deactivate accounts, and never their own: a
// tenant with a self-locked-out admin has no recovery path from inside.
func CanDeactivate(actor identity.Identity, targetUserID string) bool {
	return actor.Role == identity.RoleTenantAdmin && actor.UserID != targetUserID
}
