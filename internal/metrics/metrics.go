// Package metrics derives dashboard aggregates from order snapshots. Every
// function is pure: same input and now, same output, input untouched.
// A companyID of "" means every company.
package metrics

import (
	"sort"
	"time"

	"aquaflow/internal/domain"
)

const RecentOrdersLimit = 5

// Scope returns the orders of companyID in their original order.
func Scope(orders []domain.Order, companyID string) []domain.Order {
	if companyID == "" {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out
}

// CountSince counts orders created at or after since.
func CountSince(orders []domain.Order, companyID string, since time.Time) int {
	n := 0
	for _, o := range Scope(orders, companyID) {
		if !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n
}

// Today counts orders since local midnight of now.
func Today(orders []domain.Order, companyID string, now time.Time) int {
	y, m, d := now.Date()
	return CountSince(orders, companyID, time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
}

// ThisWeek counts orders of the rolling last seven days.
func ThisWeek(orders []domain.Order, companyID string, now time.Time) int {
	return CountSince(orders, companyID, now.AddDate(0, 0, -7))
}

// ThisMonth counts orders since the first of now's month.
func ThisMonth(orders []domain.Order, companyID string, now time.Time) int {
	y, m, _ := now.Date()
	return CountSince(orders, companyID, time.Date(y, m, 1, 0, 0, 0, 0, now.Location()))
}

// StatusCounts has an entry for every status, zero included.
func StatusCounts(orders []domain.Order, companyID string) map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int, len(domain.AllOrderStatuses()))
	for _, s := range domain.AllOrderStatuses() {
		counts[s] = 0
	}
	for _, o := range Scope(orders, companyID) {
		counts[o.Status]++
	}
	return counts
}

func TotalRevenue(orders []domain.Order, companyID string) float64 {
	total := 0.0
	for _, o := range Scope(orders, companyID) {
		total += o.TotalAmount
	}
	return total
}

// AverageOrderValue is 0 for an empty scope.
func AverageOrderValue(orders []domain.Order, companyID string) float64 {
	scoped := Scope(orders, companyID)
	if len(scoped) == 0 {
		return 0
	}
	return TotalRevenue(scoped, "") / float64(len(scoped))
}

// ActiveDeliveries counts orders between confirmation and delivery.
func ActiveDeliveries(orders []domain.Order, companyID string) int {
	n := 0
	for _, o := range Scope(orders, companyID) {
		if o.Status.Active() {
			n++
		}
	}
	return n
}

// RecentOrders returns up to limit orders, newest first. Ties keep their
// collection order.
func RecentOrders(orders []domain.Order, companyID string, limit int) []domain.Order {
	scoped := Scope(orders, companyID)
	sorted := make([]domain.Order, len(scoped))
	copy(sorted, scoped)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

type Summary struct {
	CompanyID         string                     `json:"companyId,omitempty"`
	TotalOrders       int                        `json:"totalOrders"`
	Today             int                        `json:"today"`
	ThisWeek          int                        `json:"thisWeek"`
	ThisMonth         int                        `json:"thisMonth"`
	ByStatus          map[domain.OrderStatus]int `json:"byStatus"`
	TotalRevenue      float64                    `json:"totalRevenue"`
	AverageOrderValue float64                    `json:"averageOrderValue"`
	ActiveDeliveries  int                        `json:"activeDeliveries"`
	RecentOrders      []domain.Order             `json:"recentOrders"`
	GeneratedAt       time.Time                  `json:"generatedAt"`
}

func Summarize(orders []domain.Order, companyID string, now time.Time) Summary {
	scoped := Scope(orders, companyID)
	return Summary{
		CompanyID:         companyID,
		TotalOrders:       len(scoped),
		Today:             Today(scoped, "", now),
		ThisWeek:          ThisWeek(scoped, "", now),
		ThisMonth:         ThisMonth(scoped, "", now),
		ByStatus:          StatusCounts(scoped, ""),
		TotalRevenue:      TotalRevenue(scoped, ""),
		AverageOrderValue: AverageOrderValue(scoped, ""),
		ActiveDeliveries:  ActiveDeliveries(scoped, ""),
		RecentOrders:      RecentOrders(scoped, "", RecentOrdersLimit),
		GeneratedAt:       now,
	}
}
