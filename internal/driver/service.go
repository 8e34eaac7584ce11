package driver

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

var fleetEditors = []domain.Role{domain.RoleAdmin, domain.RoleCompanyAdmin, domain.RoleManager}

type Service struct {
	repo   Repository
	orders OrderUnassigner
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, orders OrderUnassigner, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		orders: orders,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, sess session.Session, companyID string) ([]domain.DeliveryDriver, error) {
	scope, err := sess.CompanyFor(companyID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, scope), nil
}

func (s *Service) Create(ctx context.Context, sess session.Session, req CreateDriverRequest) (domain.DeliveryDriver, error) {
	if err := sess.Require(fleetEditors...); err != nil {
		return domain.DeliveryDriver{}, err
	}

	companyID, err := sess.CompanyFor(req.CompanyID)
	if err != nil {
		return domain.DeliveryDriver{}, err
	}
	if companyID == "" {
		return domain.DeliveryDriver{}, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: "companyId is required",
		})
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	created, err := s.repo.Add(ctx, domain.DeliveryDriver{
		ID:              s.newID(),
		CompanyID:       companyID,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		VehicleType:     req.VehicleType,
		Capacity:        req.Capacity,
		CurrentLocation: req.CurrentLocation,
		IsAvailable:     available,
		CreatedAt:       s.now().UTC(),
	})
	if err != nil {
		return domain.DeliveryDriver{}, err
	}

	s.logger.Info("driver created", zap.String("driverId", created.ID), zap.String("companyId", companyID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, sess session.Session, id string, req UpdateDriverRequest) (domain.DeliveryDriver, error) {
	if _, err := s.authorize(ctx, sess, id); err != nil {
		return domain.DeliveryDriver{}, err
	}

	updated, found, err := s.repo.Update(ctx, id, func(d *domain.DeliveryDriver) error {
		if req.Name != nil {
			d.Name = *req.Name
		}
		if req.Phone != nil {
			d.Phone = *req.Phone
		}
		if req.Email != nil {
			d.Email = *req.Email
		}
		if req.VehicleType != nil {
			d.VehicleType = *req.VehicleType
		}
		if req.Capacity != nil {
			d.Capacity = *req.Capacity
		}
		if req.CurrentLocation != nil {
			d.CurrentLocation = *req.CurrentLocation
		}
		if req.IsAvailable != nil {
			d.IsAvailable = *req.IsAvailable
		}
		return nil
	})
	if err != nil {
		return domain.DeliveryDriver{}, err
	}
	if !found {
		return domain.DeliveryDriver{}, apperrors.NewNotFoundError(fmt.Sprintf("driver %s not found", id))
	}

	s.logger.Info("driver updated", zap.String("driverId", id))
	return updated, nil
}

// Delete unassigns the driver from its orders, then removes it. Unknown ids
// are a no-op.
func (s *Service) Delete(ctx context.Context, sess session.Session, id string) error {
	d, err := s.authorize(ctx, sess, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil
		}
		return err
	}

	// Removed before its orders are cleared, so an assignment racing with
	// the delete either lands first and gets cleared or fails its lookup.
	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	cleared, err := s.orders.UnassignDriver(ctx, sess, id)
	if err != nil {
		s.logger.Error("clearing driver assignments failed", zap.String("driverId", id), zap.Error(err))
		if _, restoreErr := s.repo.Add(ctx, d); restoreErr != nil {
			s.logger.Error("restoring driver failed", zap.String("driverId", id), zap.Error(restoreErr))
		}
		return err
	}

	s.logger.Info("driver deleted", zap.String("driverId", id), zap.Int("unassignedOrders", cleared))
	return nil
}

func (s *Service) authorize(ctx context.Context, sess session.Session, id string) (domain.DeliveryDriver, error) {
	if err := sess.Require(fleetEditors...); err != nil {
		return domain.DeliveryDriver{}, err
	}
	d, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return domain.DeliveryDriver{}, apperrors.NewNotFoundError(fmt.Sprintf("driver %s not found", id))
	}
	if err := sess.Authorize(d.CompanyID); err != nil {
		return domain.DeliveryDriver{}, err
	}
	return d, nil
}
