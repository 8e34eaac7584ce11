package company

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/session"
)

// Service manages tenants. Every operation is reserved to platform admins.
type Service struct {
	repo   Repository
	orders OrderCounter
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, orders OrderCounter, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		orders: orders,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, sess session.Session) ([]domain.Company, error) {
	if err := sess.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx), nil
}

func (s *Service) Create(ctx context.Context, sess session.Session, req CreateCompanyRequest) (domain.Company, error) {
	if err := sess.Require(domain.RoleAdmin); err != nil {
		return domain.Company{}, err
	}
	return s.add(ctx, req)
}

// Register adds a company that the onboarding backend already accepted.
// It skips the role check: onboarding authorizes its own caller.
func (s *Service) Register(ctx context.Context, req CreateCompanyRequest) (domain.Company, error) {
	return s.add(ctx, req)
}

func (s *Service) add(ctx context.Context, req CreateCompanyRequest) (domain.Company, error) {
	status := req.Status
	if status == "" {
		status = domain.CompanyStatusPending
	}

	created, err := s.repo.Add(ctx, domain.Company{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    status,
		RemoteID:  req.RemoteID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Company{}, err
	}

	s.logger.Info("company created", zap.String("companyId", created.ID), zap.String("status", string(status)))
	return created, nil
}

func (s *Service) Update(ctx context.Context, sess session.Session, id string, req UpdateCompanyRequest) (domain.Company, error) {
	if err := sess.Require(domain.RoleAdmin); err != nil {
		return domain.Company{}, err
	}

	updated, found, err := s.repo.Update(ctx, id, func(c *domain.Company) error {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Email != nil {
			c.Email = *req.Email
		}
		if req.Phone != nil {
			c.Phone = *req.Phone
		}
		if req.Address != nil {
			c.Address = *req.Address
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.Users != nil {
			c.Users = *req.Users
		}
		if req.Orders != nil {
			c.Orders = *req.Orders
		}
		if req.TotalRevenue != nil {
			c.TotalRevenue = *req.TotalRevenue
		}
		return nil
	})
	if err != nil {
		return domain.Company{}, err
	}
	if !found {
		return domain.Company{}, apperrors.NewNotFoundError(fmt.Sprintf("company %s not found", id))
	}

	s.logger.Info("company updated", zap.String("companyId", id))
	return updated, nil
}

// Delete removes the company unless orders still reference it. Unknown ids
// are a no-op.
func (s *Service) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := sess.Require(domain.RoleAdmin); err != nil {
		return err
	}

	c, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return nil
	}

	if n := s.orders.CountByCompany(ctx, id); n > 0 {
		return hasOrders(id, n)
	}

	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	// Order creation re-checks its company after writing, so recounting
	// here catches an order that slipped in between the count and the remove.
	if n := s.orders.CountByCompany(ctx, id); n > 0 {
		if _, err := s.repo.Add(ctx, c); err != nil {
			s.logger.Error("restoring company failed", zap.String("companyId", id), zap.Error(err))
			return err
		}
		return hasOrders(id, n)
	}

	s.logger.Info("company deleted", zap.String("companyId", id))
	return nil
}

func hasOrders(id string, n int) error {
	return apperrors.NewConflictError(fmt.Sprintf("company %s still has %d orders", id, n))
}
