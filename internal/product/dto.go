package product

import "aquaflow/internal/domain"

type CreateProductRequest struct {
	CompanyID   string  `json:"companyId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Size        *string  `json:"size"`
	IsActive    *bool    `json:"isActive"`
}

// ListFilter narrows List. ActiveOnly keeps what a new-order form may offer.
type ListFilter struct {
	CompanyID  string
	ActiveOnly bool
}

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}
