package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderProgression is the linear lifecycle. Cancelled sits outside it.
var orderProgression = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusInTransit,
	OrderStatusDelivered,
}

// AllOrderStatuses lists every status, progression first, cancelled last.
func AllOrderStatuses() []OrderStatus {
	all := make([]OrderStatus, 0, len(orderProgression)+1)
	all = append(all, orderProgression...)
	return append(all, OrderStatusCancelled)
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := s.Index()
	return ok
}

// Index is the position of s in the linear progression. Cancelled and unknown
// values have no index.
func (s OrderStatus) Index() (int, bool) {
	for i, st := range orderProgression {
		if st == s {
			return i, true
		}
	}
	return -1, false
}

// Next returns the single successor of s, or false when s is terminal.
func (s OrderStatus) Next() (OrderStatus, bool) {
	idx, ok := s.Index()
	if !ok || idx == len(orderProgression)-1 {
		return "", false
	}
	return orderProgression[idx+1], true
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Active reports whether an order in status s is an ongoing delivery.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady, OrderStatusInTransit:
		return true
	}
	return false
}

// Progress is the completion percentage used by progress bars (index*20).
func (s OrderStatus) Progress() (int, bool) {
	idx, ok := s.Index()
	if !ok {
		return 0, false
	}
	return idx * 20, true
}
