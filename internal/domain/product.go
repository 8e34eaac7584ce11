package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Size        string    `json:"size"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) Key() string {
	return p.ID
}

// Orderable reports whether p may be added to a new order of companyID.
func (p Product) Orderable(companyID string) bool {
	return p.IsActive && p.CompanyID == companyID
}
