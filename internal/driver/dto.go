package driver

import "aquaflow/internal/domain"

type CreateDriverRequest struct {
	CompanyID       string `json:"companyId"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	VehicleType     string `json:"vehicleType"`
	Capacity        int    `json:"capacity"`
	CurrentLocation string `json:"currentLocation"`
	IsAvailable     *bool  `json:"isAvailable"`
}

type UpdateDriverRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	VehicleType     *string `json:"vehicleType"`
	Capacity        *int    `json:"capacity"`
	CurrentLocation *string `json:"currentLocation"`
	IsAvailable     *bool   `json:"isAvailable"`
}

type DriverListResponse struct {
	Drivers []domain.DeliveryDriver `json:"drivers"`
	Total   int                     `json:"total"`
}
