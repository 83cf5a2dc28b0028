// Package guard gates entry into protected areas of the application. A guard
// answers one question per navigation attempt: let the actor in, send them to
// the login screen, or send them to the unauthorized screen.
package guard

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/session"
)

// Decision is the outcome of a guard evaluation.
type Decision int

const (
	// Allow grants entry to the protected area.
	Allow Decision = iota
	// RedirectLogin means no valid session exists; the actor must log in.
	RedirectLogin
	// RedirectUnauthorized means the session is valid but the actor's role is
	// not in the area's accepted set.
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// Accepted role sets for the application's navigable areas. Each area
// enumerates every role it accepts; nothing is inferred from rank.
var (
	// MemberAreaRoles guards the dashboard, project list, and task views.
	MemberAreaRoles = []identity.Role{identity.RoleTenantAdmin, identity.RoleUser}
	// TenantAdminAreaRoles guards user management and tenant settings.
	TenantAdminAreaRoles = []identity.Role{identity.RoleTenantAdmin}
	// PlatformAreaRoles guards the tenant management area.
	PlatformAreaRoles = []identity.Role{identity.RoleSuperAdmin}
)

// Guard evaluates access to protected areas against the live session. Every
// Authorize call re-reads the session, since it can expire between checks.
type Guard struct {
	sessions *session.Lifecycle
}

func New(sessions *session.Lifecycle) (*Guard, error) {
	if sessions == nil {
		return nil, errors.New("[guard.New] session lifecycle is required")
	}
	return &Guard{sessions: sessions}, nil
}

// Authorize decides entry into an area accepting the given roles. The session
// check runs first: an expired or missing session always redirects to login,
// even if the last known role would have been rejected anyway.
func (g *Guard) Authorize(required ...identity.Role) Decision {
	if !g.sessions.IsValid() {
		return RedirectLogin
	}

	envelope, ok := g.sessions.Current()
	if !ok {
		return RedirectLogin
	}

	if !identity.Satisfies(envelope.Identity.Role, required) {
		log.Info().
			Str("user_id", envelope.Identity.UserID).
			Str("role", string(envelope.Identity.Role)).
			Msg("navigation denied")
		return RedirectUnauthorized
	}
	return Allow
}

// Check is a deferred guard evaluation, used to stack guards over nested
// areas.
type Check func() Decision

// Require returns a Check bound to the given role set.
func (g *Guard) Require(required ...identity.Role) Check {
	return func() Decision {
		return g.Authorize(required...)
	}
}

// Evaluate runs stacked checks top-down and short-circuits on the first
// non-Allow decision. An empty stack allows.
func Evaluate(checks ...Check) Decision {
	for _, check := range checks {
		if decision := check(); decision != Allow {
			return decision
		}
	}
	return Allow
}
