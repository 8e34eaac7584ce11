package user

import (
	"context"

	"aquaflow/internal/domain"
	"aquaflow/internal/session"
)

type UseCase interface {
	List(ctx context.Context, sess session.Session, companyID string) ([]domain.User, error)
	Create(ctx context.Context, sess session.Session, req CreateUserRequest) (domain.User, error)
	Update(ctx context.Context, sess session.Session, id string, req UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, sess session.Session, id string) error
}

type Repository interface {
	Add(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, id string, mutate func(*domain.User) error) (domain.User, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.User, bool)
	ListByCompany(ctx context.Context, companyID string) []domain.User
}

type CompanyLookup interface {
	FindByID(ctx context.Context, id string) (domain.Company, bool)
}
