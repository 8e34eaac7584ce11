package driver

import (
	"go.uber.org/zap"

	"aquaflow/internal/driver/repository"
)

type Module struct {
	Repository *repository.DriverRepository
	Controller *Controller
}

// NewModule takes a loaded repository: the order module reads drivers and
// the driver module clears order assignments, so main builds this one first.
func NewModule(repo *repository.DriverRepository, orders OrderUnassigner, logger *zap.Logger) *Module {
	logger = logger.With(zap.String("module", "driver"))

	return &Module{
		Repository: repo,
		Controller: NewController(NewService(repo, orders, logger), logger),
	}
}
