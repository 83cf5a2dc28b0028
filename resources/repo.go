package resources

// ProjectRepo stores project records. List is tenant-scoped by the data
// layer; callers never see another tenant's projects.
type ProjectRepo interface {
	Upsert(project *Project) error
	Delete(projectID string) error
	Get(projectID string) (*Project, error)
	List(tenantID string, offset, limit int) ([]*Project, error)
}

// TaskRepo stores task records, scoped to a project.
type TaskRepo interface {
	Upsert(task *Task) error
	Delete(taskID string) error
	Get(taskID string) (*Task, error)
	ListByProject(projectID string, offset, limit int) ([]*Task, error)
}
