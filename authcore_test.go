package authcore_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authcore "github.com/tenantflow/authcore"
	"github.com/tenantflow/authcore/guard"
	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/transport"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var adminIdentity = identity.Identity{
	UserID:   "admin-1",
	TenantID: "tenant-1",
	Role:     identity.RoleTenantAdmin,
	Email:    "admin@acme.example.com",
	FullName: "Acme Admin",
}

func setupCore(t *testing.T, sessionFile string) (*authcore.Core, *func(time.Time)) {
	t.Helper()

	t.Setenv("TENANTFLOW_SIGNING_SECRET", testSecret)
	t.Setenv("TENANTFLOW_SESSION_TTL_SECONDS", "3600")
	t.Setenv("TENANTFLOW_SESSION_FILE", sessionFile)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	setNow := func(tm time.Time) { now = tm }

	core, err := authcore.New(authcore.WithNowTime(func() time.Time { return now }))
	require.NoError(t, err)
	return core, &setNow
}

func TestLoginGuardLogoutFlow(t *testing.T) {
	core, _ := setupCore(t, "")

	// Before login, every protected area redirects to login.
	require.Equal(t, guard.RedirectLogin, core.Guard.Authorize(guard.TenantAdminAreaRoles...))

	raw, err := core.Tokens.Mint(adminIdentity)
	require.NoError(t, err)
	require.NoError(t, core.EstablishFromToken(raw))

	require.Equal(t, guard.Allow, core.Guard.Authorize(guard.TenantAdminAreaRoles...))
	require.Equal(t, guard.Allow, core.Guard.Authorize(guard.MemberAreaRoles...))
	require.Equal(t, guard.RedirectUnauthorized, core.Guard.Authorize(guard.PlatformAreaRoles...))

	core.Logout()
	require.Equal(t, guard.RedirectLogin, core.Guard.Authorize(guard.TenantAdminAreaRoles...))
}

func TestEstablishWithOpaqueToken(t *testing.T) {
	core, _ := setupCore(t, "")

	// Tokens from an external login collaborator stay opaque.
	require.NoError(t, core.Establish("opaque-bearer-credential", adminIdentity, time.Hour))
	require.True(t, core.Sessions.IsValid())

	envelope, ok := core.Sessions.Current()
	require.True(t, ok)
	require.Equal(t, "opaque-bearer-credential", envelope.Token)
}

func TestEstablishRejectsInvalidIdentity(t *testing.T) {
	core, _ := setupCore(t, "")

	bad := identity.Identity{UserID: "sa", TenantID: "t1", Role: identity.RoleSuperAdmin}
	require.Error(t, core.Establish("token", bad, time.Hour))
}

func TestSessionExpiryEndsAccess(t *testing.T) {
	core, setNow := setupCore(t, "")

	raw, err := core.Tokens.Mint(adminIdentity)
	require.NoError(t, err)
	require.NoError(t, core.EstablishFromToken(raw))

	(*setNow)(time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC))
	require.Equal(t, guard.RedirectLogin, core.Guard.Authorize(guard.TenantAdminAreaRoles...))
}

func TestServerRejectionInvalidatesEverywhere(t *testing.T) {
	core, _ := setupCore(t, "")

	var notices []string
	recordingCore, err := authcore.New(
		authcore.WithNowTime(time.Now),
		authcore.WithNotifier(transport.NotifierFunc(func(message string) {
			notices = append(notices, message)
		})),
	)
	require.NoError(t, err)
	core = recordingCore

	raw, err := core.Tokens.Mint(adminIdentity)
	require.NoError(t, err)
	require.NoError(t, core.EstablishFromToken(raw))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	resp, err := core.Transport.Client().Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	// The rejection from one call ends the session for all of them.
	require.Equal(t, guard.RedirectLogin, core.Guard.Authorize(guard.MemberAreaRoles...))
	require.Equal(t, []string{"Session expired. Please login again."}, notices)
}

func TestSessionRestoredAcrossRestart(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	core, _ := setupCore(t, sessionFile)
	raw, err := core.Tokens.Mint(adminIdentity)
	require.NoError(t, err)
	require.NoError(t, core.EstablishFromToken(raw))

	// A second Core over the same session file picks the session up.
	restarted, _ := setupCore(t, sessionFile)
	require.Equal(t, guard.Allow, restarted.Guard.Authorize(guard.TenantAdminAreaRoles...))
}

func TestEstablishFromTokenWithoutSecret(t *testing.T) {
	t.Setenv("TENANTFLOW_SIGNING_SECRET", "")
	t.Setenv("TENANTFLOW_SESSION_FILE", "")

	core, err := authcore.New()
	require.NoError(t, err)
	require.Nil(t, core.Tokens)
	require.Error(t, core.EstablishFromToken("anything"))
}
