package domain

import "time"

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventUpdated       OrderEventType = "order.updated"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventDeleted       OrderEventType = "order.deleted"
)

// OrderEvent is broadcast after every committed order mutation.
type OrderEvent struct {
	Type           OrderEventType `json:"type"`
	OrderID        string         `json:"orderId"`
	CompanyID      string         `json:"companyId"`
	Status         OrderStatus    `json:"status,omitempty"`
	PreviousStatus OrderStatus    `json:"previousStatus,omitempty"`
	ActorID        string         `json:"actorId,omitempty"`
	Order          *Order         `json:"order,omitempty"`
	OccurredAt     time.Time      `json:"occurredAt"`
}
