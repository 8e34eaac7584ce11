package user

import (
	"context"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
	"aquaflow/internal/user/repository"
)

type Module struct {
	Repository *repository.UserRepository
	Controller *Controller
}

func NewModule(ctx context.Context, slot store.Slot, defaults []domain.User, companies CompanyLookup, logger *zap.Logger) *Module {
	logger = logger.With(zap.String("module", "user"))

	repo := repository.NewUserRepository(slot, defaults, logger)
	repo.Load(ctx)

	return &Module{
		Repository: repo,
		Controller: NewController(NewService(repo, companies, logger), logger),
	}
}
