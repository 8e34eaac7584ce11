package driver

import (
	"context"

	"aquaflow/internal/domain"
	"aquaflow/internal/session"
)

type UseCase interface {
	List(ctx context.Context, sess session.Session, companyID string) ([]domain.DeliveryDriver, error)
	Create(ctx context.Context, sess session.Session, req CreateDriverRequest) (domain.DeliveryDriver, error)
	Update(ctx context.Context, sess session.Session, id string, req UpdateDriverRequest) (domain.DeliveryDriver, error)
	Delete(ctx context.Context, sess session.Session, id string) error
}

type Repository interface {
	Add(ctx context.Context, d domain.DeliveryDriver) (domain.DeliveryDriver, error)
	Update(ctx context.Context, id string, mutate func(*domain.DeliveryDriver) error) (domain.DeliveryDriver, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.DeliveryDriver, bool)
	ListByCompany(ctx context.Context, companyID string) []domain.DeliveryDriver
}

// OrderUnassigner clears a removed driver from the orders referencing it.
type OrderUnassigner interface {
	UnassignDriver(ctx context.Context, sess session.Session, driverID string) (int, error)
}
