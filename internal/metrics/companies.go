package metrics

import "aquaflow/internal/domain"

// CompanyOverview sums the stored tenant counters. The counters are edited by
// hand and are reported as stored, not recomputed from orders.
type CompanyOverview struct {
	Companies    int                          `json:"companies"`
	ByStatus     map[domain.CompanyStatus]int `json:"byStatus"`
	Users        int                          `json:"users"`
	Orders       int                          `json:"orders"`
	TotalRevenue float64                      `json:"totalRevenue"`
}

func SummarizeCompanies(companies []domain.Company) CompanyOverview {
	overview := CompanyOverview{
		Companies: len(companies),
		ByStatus: map[domain.CompanyStatus]int{
			domain.CompanyStatusActive:    0,
			domain.CompanyStatusPending:   0,
			domain.CompanyStatusSuspended: 0,
		},
	}
	for _, c := range companies {
		overview.ByStatus[c.Status]++
		overview.Users += c.Users
		overview.Orders += c.Orders
		overview.TotalRevenue += c.TotalRevenue
	}
	return overview
}
