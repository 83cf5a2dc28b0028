package resources

import (
	"time"

	"github.com/tenantflow/authcore/policy"
)

// Project is a tenant-scoped business resource. CreatedBy is set once at
// creation and never changes.
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ownership returns the access-relevant metadata the mutation policy needs.
func (p *Project) Ownership() policy.Ownership {
	return policy.Ownership{CreatedBy: p.CreatedBy, TenantID: p.TenantID}
}

// TaskStatus tracks a task through its workflow.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task belongs to a project and inherits its tenant.
type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	TenantID  string     `json:"tenant_id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *Task) Ownership() policy.Ownership {
	return policy.Ownership{CreatedBy: t.CreatedBy, TenantID: t.TenantID}
}
