package user

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

// Service manages operator accounts. Admins manage everyone; company admins
// manage the non-admin users of their own company.
type Service struct {
	repo      Repository
	companies CompanyLookup
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewService(repo Repository, companies CompanyLookup, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, sess session.Session, companyID string) ([]domain.User, error) {
	scope, err := sess.CompanyFor(companyID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, scope), nil
}

func (s *Service) Create(ctx context.Context, sess session.Session, req CreateUserRequest) (domain.User, error) {
	if err := sess.Require(domain.RoleAdmin, domain.RoleCompanyAdmin); err != nil {
		return domain.User{}, err
	}
	if req.Role == domain.RoleAdmin && !sess.IsAdmin() {
		return domain.User{}, apperrors.NewForbiddenError("only admins can create admins")
	}

	u := domain.User{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: s.now().UTC(),
	}

	if req.Role != domain.RoleAdmin {
		requested := ""
		if req.CompanyID != nil {
			requested = *req.CompanyID
		}
		companyID, err := sess.CompanyFor(requested)
		if err != nil {
			return domain.User{}, err
		}
		if err := s.bindCompany(ctx, &u, companyID); err != nil {
			return domain.User{}, err
		}
	}

	created, err := s.repo.Add(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user created", zap.String("userId", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

func (s *Service) Update(ctx context.Context, sess session.Session, id string, req UpdateUserRequest) (domain.User, error) {
	if _, err := s.authorize(ctx, sess, id); err != nil {
		return domain.User{}, err
	}
	if req.Role != nil && !sess.IsAdmin() && *req.Role == domain.RoleAdmin {
		return domain.User{}, apperrors.NewForbiddenError("only admins can grant the admin role")
	}

	updated, found, err := s.repo.Update(ctx, id, func(u *domain.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Role != nil {
			if *req.Role == domain.RoleAdmin {
				u.CompanyID = nil
				u.CompanyName = nil
			} else if u.CompanyID == nil {
				return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
					Field:   "role",
					Message: "a company role needs a company; create the user under one instead",
				})
			}
			u.Role = *req.Role
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}

	s.logger.Info("user updated", zap.String("userId", id))
	return updated, nil
}

// Delete removes the user. Unknown ids are a no-op; nobody deletes
// themselves.
func (s *Service) Delete(ctx context.Context, sess session.Session, id string) error {
	if id == sess.User.ID {
		return apperrors.NewConflictError("cannot delete the signed-in user")
	}
	if _, err := s.authorize(ctx, sess, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil
		}
		return err
	}

	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("userId", id))
	return nil
}

func (s *Service) bindCompany(ctx context.Context, u *domain.User, companyID string) error {
	if companyID == "" {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: "companyId is required for non-admin roles",
		})
	}
	company, ok := s.companies.FindByID(ctx, companyID)
	if !ok {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: fmt.Sprintf("company %s does not exist", companyID),
		})
	}
	u.CompanyID = &company.ID
	u.CompanyName = &company.Name
	return nil
}

func (s *Service) authorize(ctx context.Context, sess session.Session, id string) (domain.User, error) {
	if err := sess.Require(domain.RoleAdmin, domain.RoleCompanyAdmin); err != nil {
		return domain.User{}, err
	}
	u, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return domain.User{}, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	if sess.IsAdmin() {
		return u, nil
	}
	if u.Role == domain.RoleAdmin || u.CompanyID == nil {
		return domain.User{}, apperrors.NewForbiddenError("cannot manage platform admins")
	}
	if err := sess.Authorize(*u.CompanyID); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
