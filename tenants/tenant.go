package tenants

// Tenant is an organization, the unit of data isolation. MaxUsers and
// MaxProjects are exposed as data for collaborators to enforce; this core
// does not track their consumption.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxUsers    int    `json:"max_users"`
	MaxProjects int    `json:"max_projects"`
	IsActive    bool   `json:"is_active"`
}
