package domain

import "time"

type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusPending   CompanyStatus = "pending"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusPending, CompanyStatusSuspended:
		return true
	}
	return false
}

// Company counters are edited directly and are not derived from the order
// or user collections.
type Company struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	Status       CompanyStatus `json:"status"`
	Users        int           `json:"users"`
	Orders       int           `json:"orders"`
	TotalRevenue float64       `json:"totalRevenue"`
	RemoteID     *string       `json:"remoteId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func (c Company) Key() string {
	return c.ID
}
