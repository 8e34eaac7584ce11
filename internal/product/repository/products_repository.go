package repository

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

type ProductRepository struct {
	products *store.Collection[domain.Product]
}

func NewProductRepository(slot store.Slot, defaults []domain.Product, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		products: store.NewCollection(store.KeyProducts, slot, defaults, logger),
	}
}

func (r *ProductRepository) Load(ctx context.Context) {
	r.products.Load(ctx)
}

func (r *ProductRepository) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	return r.products.Add(ctx, p)
}

func (r *ProductRepository) Update(ctx context.Context, id string, mutate func(*domain.Product) error) (domain.Product, bool, error) {
	return r.products.Update(ctx, id, mutate)
}

func (r *ProductRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.products.Remove(ctx, id)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, bool) {
	return r.products.Find(id)
}

func (r *ProductRepository) List(ctx context.Context) []domain.Product {
	return r.products.All()
}

// ListByCompany returns the catalog of companyID, or every product when
// companyID is empty.
func (r *ProductRepository) ListByCompany(ctx context.Context, companyID string) []domain.Product {
	if companyID == "" {
		return r.products.All()
	}
	return r.products.Filter(func(p domain.Product) bool {
		return p.CompanyID == companyID
	})
}
