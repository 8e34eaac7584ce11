package company

import (
	"context"

	"aquaflow/internal/domain"
	"aquaflow/internal/session"
)

type UseCase interface {
	List(ctx context.Context, sess session.Session) ([]domain.Company, error)
	Create(ctx context.Context, sess session.Session, req CreateCompanyRequest) (domain.Company, error)
	Update(ctx context.Context, sess session.Session, id string, req UpdateCompanyRequest) (domain.Company, error)
	Delete(ctx context.Context, sess session.Session, id string) error
}

type Repository interface {
	Add(ctx context.Context, c domain.Company) (domain.Company, error)
	Update(ctx context.Context, id string, mutate func(*domain.Company) error) (domain.Company, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.Company, bool)
	List(ctx context.Context) []domain.Company
}

// OrderCounter reports how many orders reference a company.
type OrderCounter interface {
	CountByCompany(ctx context.Context, companyID string) int
}
