package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

const uniqueViolation = pq.ErrorCode("23505")

const insertCompany = `
	INSERT INTO companies (
		company_name, business_type, registration_number, address, city, state,
		zip_code, phone, email, website, country, description
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id`

// Registry writes onboarding applications to the remote companies table.
type Registry struct {
	db      *sql.DB
	timeout time.Duration
}

func NewRegistry(db *sql.DB, timeout time.Duration) *Registry {
	return &Registry{db: db, timeout: timeout}
}

// RegisterCompany inserts reg and returns the remote id. Every failure is a
// RemoteError except a duplicate registration, which is a ConflictError.
func (r *Registry) RegisterCompany(ctx context.Context, reg domain.CompanyRegistration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, insertCompany,
		reg.CompanyName, reg.BusinessType, reg.RegistrationNumber, reg.Address, reg.City, reg.State,
		reg.ZipCode, reg.Phone, reg.Email, reg.Website, reg.Country, reg.Description,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", apperrors.NewConflictError(fmt.Sprintf("company %s is already registered", reg.CompanyName))
		}
		return "", apperrors.NewRemoteError("registering company", err)
	}

	return strconv.FormatInt(id, 10), nil
}
