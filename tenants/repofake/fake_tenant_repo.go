package faketenantrepo

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tenantflow/authcore/internal/autherrors"
	"github.com/tenantflow/authcore/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	tenants map[string]*tenants.Tenant
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]*tenants.Tenant),
	}
}

func (tr *FakeTenantRepo) Upsert(tenant *tenants.Tenant) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	copied := *tenant
	tr.tenants[tenant.ID] = &copied
	return nil
}

func (tr *FakeTenantRepo) Delete(tenantID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tenants[tenantID]; !ok {
		return autherrors.ErrNotFound
	}
	delete(tr.tenants, tenantID)
	return nil
}

func (tr *FakeTenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	tenant, ok := tr.tenants[tenantID]
	if !ok {
		return nil, autherrors.ErrNotFound
	}
	copied := *tenant
	return &copied, nil
}

func (tr *FakeTenantRepo) List(offset, limit int) ([]*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	listed := make([]*tenants.Tenant, 0, len(tr.tenants))
	for _, tenant := range tr.tenants {
		copied := *tenant
		listed = append(listed, &copied)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].Name < listed[j].Name })

	if offset >= len(listed) {
		return []*tenants.Tenant{}, nil
	}
	end := len(listed)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listed[offset:end], nil
}
