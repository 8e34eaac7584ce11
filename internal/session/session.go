package session

import (
	"context"
	"fmt"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

// Session is the operator on whose behalf a call runs. It is passed
// explicitly to every service call.
type Session struct {
	User domain.User
}

func New(user domain.User) Session {
	return Session{User: user}
}

func (s Session) IsAdmin() bool {
	return s.User.Role == domain.RoleAdmin
}

// Scope is the company the session is bound to, or "" for platform admins
// who see every company.
func (s Session) Scope() string {
	if s.IsAdmin() || s.User.CompanyID == nil {
		return ""
	}
	return *s.User.CompanyID
}

// CompanyFor resolves the company a request targets. Admins may name any
// company (or none); everyone else is pinned to their own.
func (s Session) CompanyFor(requested string) (string, error) {
	scope := s.Scope()
	if scope == "" {
		if !s.IsAdmin() {
			return "", apperrors.NewForbiddenError("user is not bound to a company")
		}
		return requested, nil
	}
	if requested != "" && requested != scope {
		return "", apperrors.NewForbiddenError("company mismatch")
	}
	return scope, nil
}

// CanAccess reports whether records of companyID are visible to s.
func (s Session) CanAccess(companyID string) bool {
	scope := s.Scope()
	if scope == "" {
		return s.IsAdmin()
	}
	return scope == companyID
}

func (s Session) Authorize(companyID string) error {
	if !s.CanAccess(companyID) {
		return apperrors.NewForbiddenError("company mismatch")
	}
	return nil
}

// CanOverride reports whether s may force a non-adjacent status transition.
func (s Session) CanOverride() bool {
	return s.User.Role == domain.RoleAdmin || s.User.Role == domain.RoleCompanyAdmin
}

func (s Session) Require(roles ...domain.Role) error {
	for _, r := range roles {
		if s.User.Role == r {
			return nil
		}
	}
	return apperrors.NewForbiddenError(fmt.Sprintf("role %s is not allowed", s.User.Role))
}

type contextKey struct{}

func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
