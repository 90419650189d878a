package repofakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/genuka/app-shell/companies"
)

var _ companies.Repo = (*FakeCompanyRepo)(nil)

// FakeCompanyRepo is an in-memory, thread-safe companies.Repo for tests.
type FakeCompanyRepo struct {
	companies map[string]*companies.Company
	lock      sync.RWMutex
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{
		companies: make(map[string]*companies.Company),
	}
}

func (cr *FakeCompanyRepo) Upsert(_ context.Context, company *companies.Company) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	now := time.Now().UTC()
	stored := *company
	stored.UpdatedAt = now

	if existing, ok := cr.companies[stored.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
		cr.companies[stored.ID] = &stored
		return nil
	}

	// Fall back to matching by handle, mirroring the store's contract.
	for id, existing := range cr.companies {
		if existing.Handle == stored.Handle {
			stored.CreatedAt = existing.CreatedAt
			delete(cr.companies, id)
			cr.companies[stored.ID] = &stored
			return nil
		}
	}

	stored.CreatedAt = now
	cr.companies[stored.ID] = &stored
	return nil
}

func (cr *FakeCompanyRepo) Get(_ context.Context, id string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	company, ok := cr.companies[id]
	if !ok {
		return nil, companies.ErrNotFound
	}
	return company, nil
}

func (cr *FakeCompanyRepo) GetByHandle(_ context.Context, handle string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	for _, company := range cr.companies {
		if company.Handle == handle {
			return company, nil
		}
	}
	return nil, companies.ErrNotFound
}

func (cr *FakeCompanyRepo) Delete(_ context.Context, id string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	delete(cr.companies, id)
	return nil
}

func (cr *FakeCompanyRepo) List(_ context.Context, offset, limit int) ([]*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	all := make([]*companies.Company, 0, len(cr.companies))
	for _, company := range cr.companies {
		all = append(all, company)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []*companies.Company{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
