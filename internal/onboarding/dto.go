package onboarding

import "aquaflow/internal/domain"

type OnboardResponse struct {
	RemoteID string         `json:"remoteId"`
	Company  domain.Company `json:"company"`
}
