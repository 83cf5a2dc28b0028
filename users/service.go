// Package users manages the member accounts of a tenant. Mutations go
// through Service, which applies the capability and ownership policies before
// touching the repository; credential verification lives elsewhere.
package users

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/internal/autherrors"
	"github.com/tenantflow/authcore/policy"
)

// Service applies authorization policy to user account administration.
type Service struct {
	repo    Repo
	nowTime func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repo Repo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[users.NewService] repo is required")
	}

	s := &Service{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// CreateParams are the fields a tenant admin supplies for a new account.
type CreateParams struct {
	Email    string
	Password string
	FullName string
	Role     identity.Role // defaults to RoleUser
}

// Create adds a new account to the actor's tenant. Only tenant admins manage
// users, and only within their own tenant.
func (s *Service) Create(actor identity.Identity, params CreateParams) (*User, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageUsers) {
		return nil, autherrors.ErrNotAuthorized
	}

	role := params.Role
	if role == "" {
		role = identity.RoleUser
	}
	if role != identity.RoleUser && role != identity.RoleTenantAdmin {
		return nil, errors.Errorf("[Service.Create] role %q cannot be assigned within a tenant", role)
	}

	if err := ValidatePasswordStrength(params.Password); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] weak password")
	}
	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] hash password")
	}

	user := &User{
		TenantID:     actor.TenantID,
		Email:        params.Email,
		FullName:     params.FullName,
		Role:         role,
		PasswordHash: passwordHash,
		IsActive:     true,
		DateJoined:   s.nowTime(),
	}
	if err := s.repo.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] upsert user")
	}

	log.Info().
		Str("tenant_id", user.TenantID).
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user created")
	return user, nil
}

// UpdateParams are the mutable account fields. Nil means leave unchanged.
type UpdateParams struct {
	FullName *string
	Role     *identity.Role
	IsActive *bool
}

// Update edits an account in the actor's tenant. Deactivation goes through
// the self-deactivation policy: an admin locking themselves out would leave
// the tenant without recovery from inside.
func (s *Service) Update(actor identity.Identity, userID string, params UpdateParams) (*User, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageUsers) {
		return nil, autherrors.ErrNotAuthorized
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Service.Update] user %q", userID)
	}
	if !actor.BelongsTo(target.TenantID) {
		return nil, autherrors.ErrNotAuthorized
	}

	if params.FullName != nil {
		target.FullName = *params.FullName
	}
	if params.Role != nil {
		if *params.Role != identity.RoleUser && *params.Role != identity.RoleTenantAdmin {
			return nil, errors.Errorf("[Service.Update] role %q cannot be assigned within a tenant", *params.Role)
		}
		target.Role = *params.Role
	}
	if params.IsActive != nil && *params.IsActive != target.IsActive {
		if !*params.IsActive && !policy.CanDeactivate(actor, target.ID) {
			return nil, autherrors.ErrSelfDeactivation
		}
		target.IsActive = *params.IsActive
	}

	if err := s.repo.Upsert(target); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] upsert user")
	}
	return target, nil
}

// List returns the accounts of the actor's tenant.
func (s *Service) List(actor identity.Identity, offset, limit int) ([]*User, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageUsers) {
		return nil, autherrors.ErrNotAuthorized
	}
	return s.repo.List(actor.TenantID, offset, limit)
}
