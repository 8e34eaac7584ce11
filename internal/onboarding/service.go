package onboarding

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"aquaflow/internal/company"
	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/session"
)

// ErrDisabled is returned by DisabledRegistry.
var ErrDisabled = errors.New("remote onboarding is not configured")

// DisabledRegistry stands in when no remote database is configured.
type DisabledRegistry struct{}

func (DisabledRegistry) RegisterCompany(ctx context.Context, reg domain.CompanyRegistration) (string, error) {
	return "", apperrors.NewRemoteError("onboarding backend unavailable", ErrDisabled)
}

type Service struct {
	registry  Registry
	companies CompanyRegistrar
	logger    *zap.Logger
}

func NewService(registry Registry, companies CompanyRegistrar, logger *zap.Logger) *Service {
	return &Service{
		registry:  registry,
		companies: companies,
		logger:    logger,
	}
}

// Onboard writes reg to the remote registry and, once accepted, adds a
// pending local company carrying the remote id. A remote failure leaves
// local state untouched and is not retried.
func (s *Service) Onboard(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error) {
	if err := sess.Require(domain.RoleAdmin); err != nil {
		return OnboardResponse{}, err
	}

	remoteID, err := s.registry.RegisterCompany(ctx, reg)
	if err != nil {
		s.logger.Warn("remote onboarding failed",
			zap.String("companyName", reg.CompanyName),
			zap.Error(err),
		)
		return OnboardResponse{}, err
	}

	local, err := s.companies.Register(ctx, company.CreateCompanyRequest{
		Name:     reg.CompanyName,
		Email:    reg.Email,
		Phone:    reg.Phone,
		Address:  joinAddress(reg),
		Status:   domain.CompanyStatusPending,
		RemoteID: &remoteID,
	})
	if err != nil {
		// The remote row exists; the local copy can be recreated by hand
		// with the logged remote id.
		s.logger.Error("company registered remotely but not locally",
			zap.String("remoteId", remoteID),
			zap.Error(err),
		)
		return OnboardResponse{}, err
	}

	s.logger.Info("company onboarded",
		zap.String("companyId", local.ID),
		zap.String("remoteId", remoteID),
	)
	return OnboardResponse{RemoteID: remoteID, Company: local}, nil
}

func joinAddress(reg domain.CompanyRegistration) string {
	out := reg.Address
	for _, part := range []string{reg.City, reg.State, reg.ZipCode, reg.Country} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
