package repository

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

func cloneCompany(c domain.Company) domain.Company {
	if c.RemoteID != nil {
		id := *c.RemoteID
		c.RemoteID = &id
	}
	return c
}

type CompanyRepository struct {
	companies *store.Collection[domain.Company]
}

func NewCompanyRepository(slot store.Slot, defaults []domain.Company, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		companies: store.NewCollection(store.KeyCompanies, slot, defaults, logger, store.WithClone(cloneCompany)),
	}
}

func (r *CompanyRepository) Load(ctx context.Context) {
	r.companies.Load(ctx)
}

func (r *CompanyRepository) Add(ctx context.Context, c domain.Company) (domain.Company, error) {
	return r.companies.Add(ctx, c)
}

func (r *CompanyRepository) Update(ctx context.Context, id string, mutate func(*domain.Company) error) (domain.Company, bool, error) {
	return r.companies.Update(ctx, id, mutate)
}

func (r *CompanyRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.companies.Remove(ctx, id)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (domain.Company, bool) {
	return r.companies.Find(id)
}

func (r *CompanyRepository) List(ctx context.Context) []domain.Company {
	return r.companies.All()
}

func (r *CompanyRepository) ListByStatus(ctx context.Context, status domain.CompanyStatus) []domain.Company {
	return r.companies.Filter(func(c domain.Company) bool {
		return c.Status == status
	})
}
