package domain

import "time"

type DeliveryDriver struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"companyId"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	VehicleType     string    `json:"vehicleType"`
	Capacity        int       `json:"capacity"`
	CurrentLocation string    `json:"currentLocation,omitempty"`
	IsAvailable     bool      `json:"isAvailable"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (d DeliveryDriver) Key() string {
	return d.ID
}
