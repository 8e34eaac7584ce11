package order

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/config"
	"aquaflow/internal/domain"
	"aquaflow/internal/order/controller"
	orderrepo "aquaflow/internal/order/repository"
	"aquaflow/internal/order/service"
	"aquaflow/internal/store"
)

type Module struct {
	Repository *orderrepo.OrderRepository
	Service    *service.OrderService
	Controller *controller.OrderController
}

func NewModule(
	ctx context.Context,
	slot store.Slot,
	defaults []domain.Order,
	products service.ProductLookup,
	drivers service.DriverLookup,
	companies service.CompanyLookup,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *Module {
	logger = logger.With(zap.String("module", "order"))

	repo := orderrepo.NewOrderRepository(slot, defaults, logger)
	repo.Load(ctx)

	svc := service.NewOrderService(repo, products, drivers, companies, publisher, cfg.Order, logger)

	return &Module{
		Repository: repo,
		Service:    svc,
		Controller: controller.NewOrderController(svc, logger),
	}
}
