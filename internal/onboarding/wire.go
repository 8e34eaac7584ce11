package onboarding

import "go.uber.org/zap"

type Module struct {
	Service    *Service
	Controller *Controller
}

func NewModule(registry Registry, companies CompanyRegistrar, logger *zap.Logger) *Module {
	logger = logger.With(zap.String("module", "onboarding"))

	svc := NewService(registry, companies, logger)
	return &Module{
		Service:    svc,
		Controller: NewController(svc, logger),
	}
}
