package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CompanyID       string      `json:"companyId"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	DeliveryAddress string      `json:"deliveryAddress"`
	City            string      `json:"city,omitempty"`
	PostalCode      string      `json:"postalCode,omitempty"`
	DeliveryNotes   string      `json:"deliveryNotes,omitempty"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"deliveryFee"`
	Tax             float64     `json:"tax"`
	TotalAmount     float64     `json:"totalAmount"`
	ScheduledDate   *string     `json:"scheduledDate,omitempty"`
	ScheduledTime   *string     `json:"scheduledTime,omitempty"`
	AssignedDriver  *string     `json:"assignedDriver,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem embeds the product as it was when the order was placed, so later
// catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID  string  `json:"productId"`
	Product    Product `json:"product"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

func NewOrderItem(p Product, quantity int) OrderItem {
	item := OrderItem{
		ProductID: p.ID,
		Product:   p,
		Quantity:  quantity,
		UnitPrice: p.Price,
	}
	item.TotalPrice = item.UnitPrice * float64(item.Quantity)
	return item
}

// Reprice recomputes every derived money field from the items, the delivery
// fee and taxRate. It is the only place money fields are written.
func (o *Order) Reprice(taxRate float64) {
	subtotal := 0.0
	for i := range o.Items {
		o.Items[i].TotalPrice = o.Items[i].UnitPrice * float64(o.Items[i].Quantity)
		subtotal += o.Items[i].TotalPrice
	}
	o.Subtotal = subtotal
	o.Tax = RoundCents(subtotal * taxRate)
	o.TotalAmount = o.Subtotal + o.DeliveryFee + o.Tax
}

func (o Order) HasDriver(driverID string) bool {
	return o.AssignedDriver != nil && *o.AssignedDriver == driverID
}

// Clone returns a deep copy so callers can never alias collection state.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		copy(c.Items, o.Items)
	}
	c.ScheduledDate = clonePtr(o.ScheduledDate)
	c.ScheduledTime = clonePtr(o.ScheduledTime)
	c.AssignedDriver = clonePtr(o.AssignedDriver)
	return c
}

func (o Order) Key() string {
	return o.ID
}

// NewOrderNumber builds a human readable number from a base-36 timestamp
// suffix plus a random three digit suffix. Collisions are unlikely, not
// impossible.
func NewOrderNumber(now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	if len(stamp) > 6 {
		stamp = stamp[len(stamp)-6:]
	}
	return fmt.Sprintf("ORD-%s-%03d", stamp, rand.Intn(1000))
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
