package user

import "aquaflow/internal/domain"

type CreateUserRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CompanyID *string     `json:"companyId"`
}

type UpdateUserRequest struct {
	Name  *string      `json:"name"`
	Email *string      `json:"email"`
	Role  *domain.Role `json:"role"`
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}
