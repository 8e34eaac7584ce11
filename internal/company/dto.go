package company

import "aquaflow/internal/domain"

type CreateCompanyRequest struct {
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	Phone    string               `json:"phone"`
	Address  string               `json:"address"`
	Status   domain.CompanyStatus `json:"status"`
	RemoteID *string              `json:"remoteId"`
}

// UpdateCompanyRequest edits contact data, status and the counters. The
// counters are plain fields: nothing recomputes them from orders or users.
type UpdateCompanyRequest struct {
	Name         *string               `json:"name"`
	Email        *string               `json:"email"`
	Phone        *string               `json:"phone"`
	Address      *string               `json:"address"`
	Status       *domain.CompanyStatus `json:"status"`
	Users        *int                  `json:"users"`
	Orders       *int                  `json:"orders"`
	TotalRevenue *float64              `json:"totalRevenue"`
}

type CompanyListResponse struct {
	Companies []domain.Company `json:"companies"`
	Total     int              `json:"total"`
}
