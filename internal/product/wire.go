package product

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/product/repository"
	"aquaflow/internal/store"
)

type Module struct {
	Repository *repository.ProductRepository
	Controller *Controller
}

func NewModule(ctx context.Context, slot store.Slot, defaults []domain.Product, logger *zap.Logger) *Module {
	logger = logger.With(zap.String("module", "product"))

	repo := repository.NewProductRepository(slot, defaults, logger)
	repo.Load(ctx)

	return &Module{
		Repository: repo,
		Controller: NewController(NewService(repo, logger), logger),
	}
}
