package users

// Repo defines the interface for user record storage. List is tenant-scoped:
// the data layer, not the policy layer, enforces tenant isolation on queries.
type Repo interface {
	Upsert(user *User) error
	Delete(id string) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	List(tenantID string, offset, limit int) ([]*User, error)
	SetActive(id string, active bool) error
}
