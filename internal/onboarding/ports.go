package onboarding

import (
	"context"

	"aquaflow/internal/company"
	"aquaflow/internal/domain"
	"aquaflow/internal/session"
)

type UseCase interface {
	Onboard(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error)
}

// Registry is the remote onboarding backend.
type Registry interface {
	RegisterCompany(ctx context.Context, reg domain.CompanyRegistration) (string, error)
}

// CompanyRegistrar adds the reconciled tenant locally.
type CompanyRegistrar interface {
	Register(ctx context.Context, req company.CreateCompanyRequest) (domain.Company, error)
}
