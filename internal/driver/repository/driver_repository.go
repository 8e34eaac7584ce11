package repository

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

type DriverRepository struct {
	drivers *store.Collection[domain.DeliveryDriver]
}

func NewDriverRepository(slot store.Slot, defaults []domain.DeliveryDriver, logger *zap.Logger) *DriverRepository {
	return &DriverRepository{
		drivers: store.NewCollection(store.KeyDrivers, slot, defaults, logger),
	}
}

func (r *DriverRepository) Load(ctx context.Context) {
	r.drivers.Load(ctx)
}

func (r *DriverRepository) Add(ctx context.Context, d domain.DeliveryDriver) (domain.DeliveryDriver, error) {
	return r.drivers.Add(ctx, d)
}

func (r *DriverRepository) Update(ctx context.Context, id string, mutate func(*domain.DeliveryDriver) error) (domain.DeliveryDriver, bool, error) {
	return r.drivers.Update(ctx, id, mutate)
}

func (r *DriverRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.drivers.Remove(ctx, id)
}

func (r *DriverRepository) FindByID(ctx context.Context, id string) (domain.DeliveryDriver, bool) {
	return r.drivers.Find(id)
}

func (r *DriverRepository) List(ctx context.Context) []domain.DeliveryDriver {
	return r.drivers.All()
}

func (r *DriverRepository) ListByCompany(ctx context.Context, companyID string) []domain.DeliveryDriver {
	if companyID == "" {
		return r.drivers.All()
	}
	return r.drivers.Filter(func(d domain.DeliveryDriver) bool {
		return d.CompanyID == companyID
	})
}
