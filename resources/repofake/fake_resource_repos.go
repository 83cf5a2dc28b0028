package fakeresourcerepo

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tenantflow/authcore/internal/autherrors"
	"github.com/tenantflow/authcore/resources"
)

var _ resources.ProjectRepo = (*FakeProjectRepo)(nil)

type FakeProjectRepo struct {
	projects map[string]*resources.Project
	lock     sync.RWMutex
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{projects: make(map[string]*resources.Project)}
}

func (pr *FakeProjectRepo) Upsert(project *resources.Project) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	copied := *project
	pr.projects[project.ID] = &copied
	return nil
}

func (pr *FakeProjectRepo) Delete(projectID string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.projects[projectID]; !ok {
		return autherrors.ErrNotFound
	}
	delete(pr.projects, projectID)
	return nil
}

func (pr *FakeProjectRepo) Get(projectID string) (*resources.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	project, ok := pr.projects[projectID]
	if !ok {
		return nil, autherrors.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (pr *FakeProjectRepo) List(tenantID string, offset, limit int) ([]*resources.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	listed := make([]*resources.Project, 0)
	for _, project := range pr.projects {
		if project.TenantID != tenantID {
			continue
		}
		copied := *project
		listed = append(listed, &copied)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].Name < listed[j].Name })
	return paginateProjects(listed, offset, limit), nil
}

func paginateProjects(listed []*resources.Project, offset, limit int) []*resources.Project {
	if offset >= len(listed) {
		return []*resources.Project{}
	}
	end := len(listed)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listed[offset:end]
}

var _ resources.TaskRepo = (*FakeTaskRepo)(nil)

type FakeTaskRepo struct {
	tasks map[string]*resources.Task
	lock  sync.RWMutex
}

func NewFakeTaskRepo() *FakeTaskRepo {
	return &FakeTaskRepo{tasks: make(map[string]*resources.Task)}
}

func (tr *FakeTaskRepo) Upsert(task *resources.Task) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	copied := *task
	tr.tasks[task.ID] = &copied
	return nil
}

func (tr *FakeTaskRepo) Delete(taskID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tasks[taskID]; !ok {
		return autherrors.ErrNotFound
	}
	delete(tr.tasks, taskID)
	return nil
}

func (tr *FakeTaskRepo) Get(taskID string) (*resources.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	task, ok := tr.tasks[taskID]
	if !ok {
		return nil, autherrors.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (tr *FakeTaskRepo) ListByProject(projectID string, offset, limit int) ([]*resources.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	listed := make([]*resources.Task, 0)
	for _, task := range tr.tasks {
		if task.ProjectID != projectID {
			continue
		}
		copied := *task
		listed = append(listed, &copied)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].Title < listed[j].Title })

	if offset >= len(listed) {
		return []*resources.Task{}, nil
	}
	end := len(listed)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listed[offset:end], nil
}
