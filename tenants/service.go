// Package tenants manages the platform's organizations. Tenant management is
// the one capability held by super_admin, and only by super_admin.
package tenants

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/internal/autherrors"
)

// Service applies the manage_tenants capability to tenant administration.
type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[tenants.NewService] repo is required")
	}
	return &Service{repo: repo}, nil
}

// CreateParams are the fields supplied for a new tenant.
type CreateParams struct {
	Name        string
	MaxUsers    int
	MaxProjects int
}

func (s *Service) Create(actor identity.Identity, params CreateParams) (*Tenant, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageTenants) {
		return nil, autherrors.ErrNotAuthorized
	}
	if params.Name == "" {
		return nil, errors.New("[tenants.Service.Create] name is required")
	}

	tenant := &Tenant{
		Name:        params.Name,
		MaxUsers:    params.MaxUsers,
		MaxProjects: params.MaxProjects,
		IsActive:    true,
	}
	if err := s.repo.Upsert(tenant); err != nil {
		return nil, errors.Wrap(err, "[tenants.Service.Create] upsert tenant")
	}

	log.Info().
		Str("tenant_id", tenant.ID).
		Str("name", tenant.Name).
		Msg("tenant created")
	return tenant, nil
}

// UpdateParams are the mutable tenant fields. Nil means leave unchanged.
type UpdateParams struct {
	Name        *string
	MaxUsers    *int
	MaxProjects *int
	IsActive    *bool
}

func (s *Service) Update(actor identity.Identity, tenantID string, params UpdateParams) (*Tenant, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageTenants) {
		return nil, autherrors.ErrNotAuthorized
	}

	tenant, err := s.repo.Get(tenantID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[tenants.Service.Update] tenant %q", tenantID)
	}

	if params.Name != nil {
		tenant.Name = *params.Name
	}
	if params.MaxUsers != nil {
		tenant.MaxUsers = *params.MaxUsers
	}
	if params.MaxProjects != nil {
		tenant.MaxProjects = *params.MaxProjects
	}
	if params.IsActive != nil {
		tenant.IsActive = *params.IsActive
	}

	if err := s.repo.Upsert(tenant); err != nil {
		return nil, errors.Wrap(err, "[tenants.Service.Update] upsert tenant")
	}
	return tenant, nil
}

func (s *Service) Delete(actor identity.Identity, tenantID string) error {
	if !identity.HasCapability(actor.Role, identity.CapManageTenants) {
		return autherrors.ErrNotAuthorized
	}
	if err := s.repo.Delete(tenantID); err != nil {
		return autherrors.Wrapf(err, "[tenants.Service.Delete] tenant %q", tenantID)
	}
	log.Info().Str("tenant_id", tenantID).Msg("tenant deleted")
	return nil
}

func (s *Service) List(actor identity.Identity, offset, limit int) ([]*Tenant, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageTenants) {
		return nil, autherrors.ErrNotAuthorized
	}
	return s.repo.List(offset, limit)
}
