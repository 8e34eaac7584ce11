package dto

import (
	"time"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CompanyID       string              `json:"companyId"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerEmail   string              `json:"customerEmail"`
	DeliveryAddress string              `json:"deliveryAddress"`
	City            string              `json:"city"`
	PostalCode      string              `json:"postalCode"`
	DeliveryNotes   string              `json:"deliveryNotes"`
	Items           []OrderItemRequest  `json:"items"`
	DeliveryFee     *float64            `json:"deliveryFee"`
	ScheduledDate   *string             `json:"scheduledDate"`
	ScheduledTime   *string             `json:"scheduledTime"`
	Status          *domain.OrderStatus `json:"status"`
}

// UpdateOrderRequest is a partial update. Nil fields are left untouched.
// Status is accepted only to reject it: status changes go through the
// transition endpoint.
type UpdateOrderRequest struct {
	CustomerName    *string             `json:"customerName"`
	CustomerPhone   *string             `json:"customerPhone"`
	CustomerEmail   *string             `json:"customerEmail"`
	DeliveryAddress *string             `json:"deliveryAddress"`
	City            *string             `json:"city"`
	PostalCode      *string             `json:"postalCode"`
	DeliveryNotes   *string             `json:"deliveryNotes"`
	Items           *[]OrderItemRequest `json:"items"`
	DeliveryFee     *float64            `json:"deliveryFee"`
	ScheduledDate   *string             `json:"scheduledDate"`
	ScheduledTime   *string             `json:"scheduledTime"`
	Status          *domain.OrderStatus `json:"status"`
}

type TransitionRequest struct {
	Status   domain.OrderStatus `json:"status"`
	Override bool               `json:"override"`
}

type AssignDriverRequest struct {
	DriverID *string `json:"driverId"`
}

type OrderResponse struct {
	domain.Order
	Progress   *int                `json:"progress"`
	NextStatus *domain.OrderStatus `json:"nextStatus"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{Order: o}
	if p, ok := o.Status.Progress(); ok {
		resp.Progress = &p
	}
	if next, ok := o.Status.Next(); ok {
		resp.NextStatus = &next
	}
	return resp
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return out
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}
