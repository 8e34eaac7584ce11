package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

// OrderRepository is the collection manager for orders.
type OrderRepository struct {
	orders *store.Collection[domain.Order]
}

func NewOrderRepository(slot store.Slot, defaults []domain.Order, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		orders: store.NewCollection(store.KeyOrders, slot, defaults, logger, store.WithClone(domain.Order.Clone)),
	}
}

func (r *OrderRepository) Load(ctx context.Context) {
	r.orders.Load(ctx)
}

func (r *OrderRepository) Add(ctx context.Context, order domain.Order) (domain.Order, error) {
	return r.orders.Add(ctx, order)
}

// Update applies mutate to the order with id. Unknown ids are a silent no-op
// reported as found=false.
func (r *OrderRepository) Update(ctx context.Context, id string, mutate func(*domain.Order) error) (domain.Order, bool, error) {
	return r.orders.Update(ctx, id, mutate)
}

func (r *OrderRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.orders.Remove(ctx, id)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, bool) {
	return r.orders.Find(id)
}

func (r *OrderRepository) List(ctx context.Context) []domain.Order {
	return r.orders.All()
}

// ListByCompany returns the company's orders in insertion order. An empty
// companyID returns every order.
func (r *OrderRepository) ListByCompany(ctx context.Context, companyID string) []domain.Order {
	if companyID == "" {
		return r.orders.All()
	}
	return r.orders.Filter(func(o domain.Order) bool {
		return o.CompanyID == companyID
	})
}

func (r *OrderRepository) ListByDriver(ctx context.Context, driverID string) []domain.Order {
	return r.orders.Filter(func(o domain.Order) bool {
		return o.HasDriver(driverID)
	})
}

func (r *OrderRepository) CountByCompany(ctx context.Context, companyID string) int {
	return len(r.orders.Filter(func(o domain.Order) bool {
		return o.CompanyID == companyID
	}))
}

// ClearDriver unassigns driverID from every order that references it and
// returns the orders it changed.
func (r *OrderRepository) ClearDriver(ctx context.Context, driverID string, now time.Time) ([]domain.Order, error) {
	return r.orders.UpdateWhere(ctx,
		func(o domain.Order) bool { return o.HasDriver(driverID) },
		func(o *domain.Order) {
			o.AssignedDriver = nil
			o.UpdatedAt = now
		},
	)
}
