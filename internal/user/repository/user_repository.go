package repository

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

func cloneUser(u domain.User) domain.User {
	if u.CompanyID != nil {
		id := *u.CompanyID
		u.CompanyID = &id
	}
	if u.CompanyName != nil {
		name := *u.CompanyName
		u.CompanyName = &name
	}
	return u
}

type UserRepository struct {
	users *store.Collection[domain.User]
}

func NewUserRepository(slot store.Slot, defaults []domain.User, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		users: store.NewCollection(store.KeyUsers, slot, defaults, logger, store.WithClone(cloneUser)),
	}
}

func (r *UserRepository) Load(ctx context.Context) {
	r.users.Load(ctx)
}

func (r *UserRepository) Add(ctx context.Context, u domain.User) (domain.User, error) {
	return r.users.Add(ctx, u)
}

func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*domain.User) error) (domain.User, bool, error) {
	return r.users.Update(ctx, id, mutate)
}

func (r *UserRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.users.Remove(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, bool) {
	return r.users.Find(id)
}

// ListByCompany returns the users bound to companyID. An empty companyID
// returns every user, admins included.
func (r *UserRepository) ListByCompany(ctx context.Context, companyID string) []domain.User {
	if companyID == "" {
		return r.users.All()
	}
	return r.users.Filter(func(u domain.User) bool {
		return u.CompanyID != nil && *u.CompanyID == companyID
	})
}
