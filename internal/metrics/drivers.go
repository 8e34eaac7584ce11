package metrics

import "aquaflow/internal/domain"

type DriverTier string

const (
	DriverAvailable  DriverTier = "available"
	DriverBusy       DriverTier = "busy"
	DriverOverloaded DriverTier = "overloaded"
)

const overloadedAt = 3

// DriverUtilization maps each assigned driver to its number of active
// deliveries. Drivers with none are absent.
func DriverUtilization(orders []domain.Order, companyID string) map[string]int {
	load := make(map[string]int)
	for _, o := range Scope(orders, companyID) {
		if o.AssignedDriver != nil && o.Status.Active() {
			load[*o.AssignedDriver]++
		}
	}
	return load
}

func ClassifyDriver(active int) DriverTier {
	switch {
	case active <= 0:
		return DriverAvailable
	case active < overloadedAt:
		return DriverBusy
	default:
		return DriverOverloaded
	}
}

type DriverLoad struct {
	Driver           domain.DeliveryDriver `json:"driver"`
	ActiveDeliveries int                   `json:"activeDeliveries"`
	Tier             DriverTier            `json:"tier"`
}

// DriverBoard pairs every driver with its load, in driver order.
func DriverBoard(drivers []domain.DeliveryDriver, orders []domain.Order) []DriverLoad {
	load := DriverUtilization(orders, "")
	board := make([]DriverLoad, len(drivers))
	for i, d := range drivers {
		board[i] = DriverLoad{
			Driver:           d,
			ActiveDeliveries: load[d.ID],
			Tier:             ClassifyDriver(load[d.ID]),
		}
	}
	return board
}
