package product

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

// Roles allowed to edit a catalog. Staff only read.
var catalogEditors = []domain.Role{domain.RoleAdmin, domain.RoleCompanyAdmin, domain.RoleManager}

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, sess session.Session, filter ListFilter) ([]domain.Product, error) {
	companyID, err := sess.CompanyFor(filter.CompanyID)
	if err != nil {
		return nil, err
	}

	products := s.repo.ListByCompany(ctx, companyID)
	if !filter.ActiveOnly {
		return products, nil
	}

	active := []domain.Product{}
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *Service) Create(ctx context.Context, sess session.Session, req CreateProductRequest) (domain.Product, error) {
	if err := sess.Require(catalogEditors...); err != nil {
		return domain.Product{}, err
	}

	companyID, err := sess.CompanyFor(req.CompanyID)
	if err != nil {
		return domain.Product{}, err
	}
	if companyID == "" {
		return domain.Product{}, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: "companyId is required",
		})
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.now().UTC()
	created, err := s.repo.Add(ctx, domain.Product{
		ID:          s.newID(),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product created", zap.String("productId", created.ID), zap.String("companyId", companyID))
	return created, nil
}

// Update edits the catalog entry only. Orders keep the snapshot taken when
// they were placed.
func (s *Service) Update(ctx context.Context, sess session.Session, id string, req UpdateProductRequest) (domain.Product, error) {
	if err := s.authorize(ctx, sess, id); err != nil {
		return domain.Product{}, err
	}

	now := s.now().UTC()
	updated, found, err := s.repo.Update(ctx, id, func(p *domain.Product) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Size != nil {
			p.Size = *req.Size
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	if !found {
		return domain.Product{}, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}

	s.logger.Info("product updated", zap.String("productId", id))
	return updated, nil
}

// Delete removes the product. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := s.authorize(ctx, sess, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil
		}
		return err
	}

	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("productId", id))
	return nil
}

func (s *Service) authorize(ctx context.Context, sess session.Session, id string) error {
	if err := sess.Require(catalogEditors...); err != nil {
		return err
	}
	p, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	return sess.Authorize(p.CompanyID)
}
