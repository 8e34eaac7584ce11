package domain

// CompanyRegistration is the application a prospective tenant submits during
// onboarding. It is written to the remote registry, not to local storage.
type CompanyRegistration struct {
	CompanyName        string `json:"companyName"`
	BusinessType       string `json:"businessType"`
	RegistrationNumber string `json:"registrationNumber"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zipCode"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Website            string `json:"website"`
	Country            string `json:"country"`
	Description        string `json:"description"`
}
