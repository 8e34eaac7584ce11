package domain

import "time"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleManager      Role = "manager"
	RoleStaff        Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompanyAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CompanyID   *string   `json:"companyId,omitempty"`
	CompanyName *string   `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u User) Key() string {
	return u.ID
}
