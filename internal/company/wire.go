package company

import (
	"go.uber.org/zap"

	"aquaflow/internal/company/repository"
)

type Module struct {
	Repository *repository.CompanyRepository
	Service    *Service
	Controller *Controller
}

// NewModule takes a loaded repository: orders look companies up through it
// before this module can be built.
func NewModule(repo *repository.CompanyRepository, orders OrderCounter, logger *zap.Logger) *Module {
	logger = logger.With(zap.String("module", "company"))

	svc := NewService(repo, orders, logger)
	return &Module{
		Repository: repo,
		Service:    svc,
		Controller: NewController(svc, logger),
	}
}
