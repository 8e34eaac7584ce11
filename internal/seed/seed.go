// Package seed holds the default collections used on first start or when a
// stored collection cannot be decoded.
package seed

import (
	"time"

	"aquaflow/internal/domain"
)

const defaultTaxRate = 0.10

var seededAt = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func Companies() []domain.Company {
	return []domain.Company{
		{
			ID:           "1",
			Name:         "Blue Spring Water Co.",
			Email:        "ops@bluespring.example",
			Phone:        "+1 555 0100",
			Address:      "12 Reservoir Rd, Springfield",
			Status:       domain.CompanyStatusActive,
			Users:        2,
			Orders:       3,
			TotalRevenue: 137.1,
			CreatedAt:    seededAt,
		},
		{
			ID:           "2",
			Name:         "Crystal Drops Delivery",
			Email:        "hello@crystaldrops.example",
			Phone:        "+1 555 0200",
			Address:      "8 Canal St, Riverton",
			Status:       domain.CompanyStatusPending,
			Users:        1,
			Orders:       1,
			TotalRevenue: 41.3,
			CreatedAt:    seededAt,
		},
	}
}

func Products() []domain.Product {
	return []domain.Product{
		{ID: "p-1", CompanyID: "1", Name: "Spring Water Jug", Price: 12, Size: "20L", IsActive: true, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "p-2", CompanyID: "1", Name: "Spring Water Pack", Description: "Six 1.5L bottles", Price: 6.5, Size: "6x1.5L", IsActive: true, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "p-3", CompanyID: "1", Name: "Dispenser Rental", Price: 25, Size: "unit", IsActive: false, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "p-4", CompanyID: "2", Name: "Crystal Jug", Price: 11, Size: "19L", IsActive: true, CreatedAt: seededAt, UpdatedAt: seededAt},
	}
}

func Drivers() []domain.DeliveryDriver {
	return []domain.DeliveryDriver{
		{ID: "d-1", CompanyID: "1", Name: "Marco Ruiz", Phone: "+1 555 0111", VehicleType: "van", Capacity: 60, CurrentLocation: "North depot", IsAvailable: true, CreatedAt: seededAt},
		{ID: "d-2", CompanyID: "1", Name: "Lena Park", Phone: "+1 555 0112", VehicleType: "pickup", Capacity: 30, CurrentLocation: "Downtown", IsAvailable: true, CreatedAt: seededAt},
		{ID: "d-3", CompanyID: "2", Name: "Sam Okafor", Phone: "+1 555 0211", VehicleType: "van", Capacity: 50, IsAvailable: false, CreatedAt: seededAt},
	}
}

func Users() []domain.User {
	return []domain.User{
		{ID: "u-1", Name: "Platform Admin", Email: "admin@aquaflow.example", Role: domain.RoleAdmin, CreatedAt: seededAt},
		{ID: "u-2", Name: "Nora Blake", Email: "nora@bluespring.example", Role: domain.RoleCompanyAdmin, CompanyID: ptr("1"), CompanyName: ptr("Blue Spring Water Co."), CreatedAt: seededAt},
		{ID: "u-3", Name: "Ivan Petrov", Email: "ivan@bluespring.example", Role: domain.RoleStaff, CompanyID: ptr("1"), CompanyName: ptr("Blue Spring Water Co."), CreatedAt: seededAt},
		{ID: "u-4", Name: "Ada Mensah", Email: "ada@crystaldrops.example", Role: domain.RoleManager, CompanyID: ptr("2"), CompanyName: ptr("Crystal Drops Delivery"), CreatedAt: seededAt},
	}
}

func Orders() []domain.Order {
	products := Products()
	jug, pack, crystal := products[0], products[1], products[3]

	orders := []domain.Order{
		{
			ID:              "o-1",
			OrderNumber:     "ORD-SEED01-001",
			CompanyID:       "1",
			CustomerName:    "Harbor Cafe",
			CustomerPhone:   "+1 555 0301",
			DeliveryAddress: "3 Pier Ave",
			City:            "Springfield",
			Status:          domain.OrderStatusDelivered,
			Items:           []domain.OrderItem{domain.NewOrderItem(jug, 4)},
			DeliveryFee:     5,
			AssignedDriver:  ptr("d-1"),
			CreatedAt:       seededAt,
			UpdatedAt:       seededAt.Add(6 * time.Hour),
		},
		{
			ID:              "o-2",
			OrderNumber:     "ORD-SEED02-002",
			CompanyID:       "1",
			CustomerName:    "Elm Street Clinic",
			CustomerPhone:   "+1 555 0302",
			DeliveryAddress: "90 Elm St",
			City:            "Springfield",
			Status:          domain.OrderStatusInTransit,
			Items: []domain.OrderItem{
				domain.NewOrderItem(jug, 2),
				domain.NewOrderItem(pack, 4),
			},
			DeliveryFee:    5,
			AssignedDriver: ptr("d-2"),
			CreatedAt:      seededAt.Add(24 * time.Hour),
			UpdatedAt:      seededAt.Add(26 * time.Hour),
		},
		{
			ID:              "o-3",
			OrderNumber:     "ORD-SEED03-003",
			CompanyID:       "1",
			CustomerName:    "J. Alvarez",
			CustomerPhone:   "+1 555 0303",
			DeliveryAddress: "14 Birch Ln",
			City:            "Springfield",
			Status:          domain.OrderStatusPending,
			Items:           []domain.OrderItem{domain.NewOrderItem(pack, 2)},
			DeliveryFee:     5,
			ScheduledDate:   ptr("2026-01-08"),
			ScheduledTime:   ptr("10:00-12:00"),
			CreatedAt:       seededAt.Add(48 * time.Hour),
			UpdatedAt:       seededAt.Add(48 * time.Hour),
		},
		{
			ID:              "o-4",
			OrderNumber:     "ORD-SEED04-004",
			CompanyID:       "2",
			CustomerName:    "Riverton Gym",
			CustomerPhone:   "+1 555 0401",
			DeliveryAddress: "200 Canal St",
			City:            "Riverton",
			Status:          domain.OrderStatusConfirmed,
			Items:           []domain.OrderItem{domain.NewOrderItem(crystal, 3)},
			DeliveryFee:     5,
			CreatedAt:       seededAt.Add(30 * time.Hour),
			UpdatedAt:       seededAt.Add(31 * time.Hour),
		},
	}

	for i := range orders {
		orders[i].Reprice(defaultTaxRate)
	}
	return orders
}
