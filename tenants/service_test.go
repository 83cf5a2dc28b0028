package tenants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/internal/autherrors"
	"github.com/tenantflow/authcore/tenants"
	faketenantrepo "github.com/tenantflow/authcore/tenants/repofake"
)

var (
	platformActor = identity.Identity{UserID: "sa-1", Role: identity.RoleSuperAdmin}
	tenantActor   = identity.Identity{UserID: "admin-1", TenantID: "t1", Role: identity.RoleTenantAdmin}
)

func setupTenants(t *testing.T) (*tenants.Service, *faketenantrepo.FakeTenantRepo) {
	t.Helper()

	repo := faketenantrepo.NewFakeTenantRepo()
	service, err := tenants.NewService(repo)
	require.NoError(t, err)
	return service, repo
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := tenants.NewService(nil)
	require.Error(t, err)
}

func TestCreateTenant(t *testing.T) {
	service, _ := setupTenants(t)

	tenant, err := service.Create(platformActor, tenants.CreateParams{
		Name:        "Acme Corp",
		MaxUsers:    25,
		MaxProjects: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, tenant.ID)
	require.Equal(t, 25, tenant.MaxUsers)
	require.Equal(t, 10, tenant.MaxProjects)
	require.True(t, tenant.IsActive)
}

func TestCreateRequiresManageTenants(t *testing.T) {
	service, _ := setupTenants(t)

	// tenant_admin does not hold manage_tenants; nothing is inferred.
	_, err := service.Create(tenantActor, tenants.CreateParams{Name: "Rogue"})
	require.ErrorIs(t, err, autherrors.ErrNotAuthorized)
}

func TestCreateRequiresName(t *testing.T) {
	service, _ := setupTenants(t)

	_, err := service.Create(platformActor, tenants.CreateParams{})
	require.Error(t, err)
}

func TestUpdateTenantLimits(t *testing.T) {
	service, _ := setupTenants(t)

	tenant, err := service.Create(platformActor, tenants.CreateParams{Name: "Acme Corp", MaxUsers: 5})
	require.NoError(t, err)

	maxUsers := 50
	inactive := false
	updated, err := service.Update(platformActor, tenant.ID, tenants.UpdateParams{
		MaxUsers: &maxUsers,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, 50, updated.MaxUsers)
	require.False(t, updated.IsActive)
}

func TestUpdateUnknownTenant(t *testing.T) {
	service, _ := setupTenants(t)

	name := "Ghost"
	_, err := service.Update(platformActor, "missing", tenants.UpdateParams{Name: &name})
	require.ErrorIs(t, err, autherrors.ErrNotFound)
}

func TestDeleteTenant(t *testing.T) {
	service, repo := setupTenants(t)

	tenant, err := service.Create(platformActor, tenants.CreateParams{Name: "Acme Corp"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(platformActor, tenant.ID))
	_, err = repo.Get(tenant.ID)
	require.ErrorIs(t, err, autherrors.ErrNotFound)

	require.ErrorIs(t, service.Delete(tenantActor, tenant.ID), autherrors.ErrNotAuthorized)
}

func TestListTenants(t *testing.T) {
	service, _ := setupTenants(t)

	for _, name := range []string{"Beta LLC", "Acme Corp", "Gamma Inc"} {
		_, err := service.Create(platformActor, tenants.CreateParams{Name: name})
		require.NoError(t, err)
	}

	listed, err := service.List(platformActor, 0, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "Acme Corp", listed[0].Name)
	require.Equal(t, "Beta LLC", listed[1].Name)

	_, err = service.List(tenantActor, 0, 0)
	require.ErrorIs(t, err, autherrors.ErrNotAuthorized)
}
