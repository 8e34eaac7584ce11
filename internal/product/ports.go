package product

import (
	"context"

	"aquaflow/internal/domain"
	"aquaflow/internal/session"
)

type UseCase interface {
	List(ctx context.Context, sess session.Session, filter ListFilter) ([]domain.Product, error)
	Create(ctx context.Context, sess session.Session, req CreateProductRequest) (domain.Product, error)
	Update(ctx context.Context, sess session.Session, id string, req UpdateProductRequest) (domain.Product, error)
	Delete(ctx context.Context, sess session.Session, id string) error
}

type Repository interface {
	Add(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, id string, mutate func(*domain.Product) error) (domain.Product, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.Product, bool)
	ListByCompany(ctx context.Context, companyID string) []domain.Product
}
