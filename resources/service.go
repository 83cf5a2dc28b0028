// Package resources holds the tenant's business records (projects and tasks)
// and the mutation paths over them. Every edit or delete is settled by the
// ownership policy before the repository is touched, so a denied action is
// never attempted downstream.
package resources

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tenantflow/authcore/identity"
	"github.com/tenantflow/authcore/internal/autherrors"
	"github.com/tenantflow/authcore/policy"
)

// Service applies the ownership policy to project and task mutations.
type Service struct {
	projects ProjectRepo
	tasks    TaskRepo
	nowTime  func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(projects ProjectRepo, tasks TaskRepo, options ...ServiceOption) (*Service, error) {
	if projects == nil {
		return nil, errors.New("[resources.NewService] project repo is required")
	}
	if tasks == nil {
		return nil, errors.New("[resources.NewService] task repo is required")
	}

	s := &Service{
		projects: projects,
		tasks:    tasks,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// canCreate reports whether the actor may create resources in their tenant.
// Tenant admins and regular members both create; super admins have no tenant
// to create into.
func canCreate(actor identity.Identity) bool {
	return identity.HasCapability(actor.Role, identity.CapManageProjects) ||
		identity.HasCapability(actor.Role, identity.CapManageOwnResources)
}

// CreateProject adds a project to the actor's tenant, owned by the actor.
func (s *Service) CreateProject(actor identity.Identity, name, description string) (*Project, error) {
	if !canCreate(actor) {
		return nil, autherrors.ErrNotAuthorized
	}

	project := &Project{
		TenantID:    actor.TenantID,
		Name:        name,
		Description: description,
		CreatedBy:   actor.UserID,
		CreatedAt:   s.nowTime(),
	}
	if err := s.projects.Upsert(project); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateProject] upsert project")
	}

	log.Info().
		Str("tenant_id", project.TenantID).
		Str("project_id", project.ID).
		Str("created_by", project.CreatedBy).
		Msg("project created")
	return project, nil
}

// UpdateProject edits a project's name and description. The creator relation
// is immutable and survives every edit.
func (s *Service) UpdateProject(actor identity.Identity, projectID, name, description string) (*Project, error) {
	project, err := s.projects.Get(projectID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Service.UpdateProject] project %q", projectID)
	}
	if !policy.CanMutate(actor, project.Ownership(), actor.BelongsTo(project.TenantID)) {
		return nil, autherrors.ErrNotAuthorized
	}

	project.Name = name
	project.Description = description
	if err := s.projects.Upsert(project); err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateProject] upsert project")
	}
	return project, nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(actor identity.Identity, projectID string) error {
	project, err := s.projects.Get(projectID)
	if err != nil {
		return autherrors.Wrapf(err, "[Service.DeleteProject] project %q", projectID)
	}
	if !policy.CanMutate(actor, project.Ownership(), actor.BelongsTo(project.TenantID)) {
		return autherrors.ErrNotAuthorized
	}

	if err := s.projects.Delete(projectID); err != nil {
		return errors.Wrap(err, "[Service.DeleteProject] delete project")
	}
	log.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

// ListProjects returns the actor's tenant's projects.
func (s *Service) ListProjects(actor identity.Identity, offset, limit int) ([]*Project, error) {
	if !identity.HasCapability(actor.Role, identity.CapManageProjects) &&
		!identity.HasCapability(actor.Role, identity.CapViewOwnTenantProjects) {
		return nil, autherrors.ErrNotAuthorized
	}
	return s.projects.List(actor.TenantID, offset, limit)
}

// CreateTask adds a task under a project in the actor's tenant. Any member
// of the tenant may add tasks to a project they can see.
func (s *Service) CreateTask(actor identity.Identity, projectID, title string) (*Task, error) {
	if !canCreate(actor) {
		return nil, autherrors.ErrNotAuthorized
	}

	project, err := s.projects.Get(projectID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Service.CreateTask] project %q", projectID)
	}
	if !actor.BelongsTo(project.TenantID) {
		return nil, autherrors.ErrNotAuthorized
	}

	task := &Task{
		ProjectID: project.ID,
		TenantID:  project.TenantID,
		Title:     title,
		Status:    TaskStatusTodo,
		CreatedBy: actor.UserID,
		CreatedAt: s.nowTime(),
	}
	if err := s.tasks.Upsert(task); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateTask] upsert task")
	}
	return task, nil
}

// UpdateTask edits a task's title and status.
func (s *Service) UpdateTask(actor identity.Identity, taskID, title string, status TaskStatus) (*Task, error) {
	task, err := s.tasks.Get(taskID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Service.UpdateTask] task %q", taskID)
	}
	if !policy.CanMutate(actor, task.Ownership(), actor.BelongsTo(task.TenantID)) {
		return nil, autherrors.ErrNotAuthorized
	}

	task.Title = title
	task.Status = status
	if err := s.tasks.Upsert(task); err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateTask] upsert task")
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(actor identity.Identity, taskID string) error {
	task, err := s.tasks.Get(taskID)
	if err != nil {
		return autherrors.Wrapf(err, "[Service.DeleteTask] task %q", taskID)
	}
	if !policy.CanMutate(actor, task.Ownership(), actor.BelongsTo(task.TenantID)) {
		return autherrors.ErrNotAuthorized
	}

	if err := s.tasks.Delete(taskID); err != nil {
		return errors.Wrap(err, "[Service.DeleteTask] delete task")
	}
	return nil
}

// ListTasks returns a project's tasks, provided the project is in the
// actor's tenant.
func (s *Service) ListTasks(actor identity.Identity, projectID string, offset, limit int) ([]*Task, error) {
	project, err := s.projects.Get(projectID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Service.ListTasks] project %q", projectID)
	}
	if !actor.BelongsTo(project.TenantID) {
		return nil, autherrors.ErrNotAuthorized
	}
	return s.tasks.ListByProject(projectID, offset, limit)
}
