package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aquaflow/internal/config"
	"aquaflow/internal/domain"
	"aquaflow/internal/dto"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/session"
)

type OrderRepository interface {
	Add(ctx context.Context, order domain.Order) (domain.Order, error)
	Update(ctx context.Context, id string, mutate func(*domain.Order) error) (domain.Order, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.Order, bool)
	ListByCompany(ctx context.Context, companyID string) []domain.Order
	ListByDriver(ctx context.Context, driverID string) []domain.Order
	ClearDriver(ctx context.Context, driverID string, now time.Time) ([]domain.Order, error)
}

type ProductLookup interface {
	FindByID(ctx context.Context, id string) (domain.Product, bool)
}

type DriverLookup interface {
	FindByID(ctx context.Context, id string) (domain.DeliveryDriver, bool)
}

type CompanyLookup interface {
	FindByID(ctx context.Context, id string) (domain.Company, bool)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	CompanyID string
	Status    domain.OrderStatus
}

type OrderService struct {
	orders    OrderRepository
	products  ProductLookup
	drivers   DriverLookup
	companies CompanyLookup
	publisher EventPublisher
	pricing   config.OrderConfig
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewOrderService(
	orders OrderRepository,
	products ProductLookup,
	drivers DriverLookup,
	companies CompanyLookup,
	publisher EventPublisher,
	pricing config.OrderConfig,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		drivers:   drivers,
		companies: companies,
		publisher: publisher,
		pricing:   pricing,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *OrderService) Create(ctx context.Context, sess session.Session, req dto.CreateOrderRequest) (domain.Order, error) {
	companyID, err := sess.CompanyFor(req.CompanyID)
	if err != nil {
		return domain.Order{}, err
	}
	if companyID == "" {
		return domain.Order{}, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "companyId",
			Message: "companyId is required",
		})
	}
	if _, ok := s.companies.FindByID(ctx, companyID); !ok {
		return domain.Order{}, unknownCompany(companyID)
	}

	status := domain.OrderStatusPending
	if req.Status != nil {
		status = *req.Status
	}
	if status != domain.OrderStatusPending && !sess.CanOverride() {
		return domain.Order{}, apperrors.NewForbiddenError(fmt.Sprintf("role %s cannot create orders in status %s", sess.User.Role, status))
	}

	items, err := s.resolveItems(ctx, companyID, req.Items)
	if err != nil {
		return domain.Order{}, err
	}

	fee := s.pricing.DeliveryFee
	if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	}

	now := s.now().UTC()
	order := domain.Order{
		ID:              s.newID(),
		OrderNumber:     domain.NewOrderNumber(now),
		CompanyID:       companyID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		DeliveryNotes:   req.DeliveryNotes,
		Status:          status,
		Items:           items,
		DeliveryFee:     fee,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.Reprice(s.pricing.TaxRate)

	created, err := s.orders.Add(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	// The company may have been removed while the order was being written.
	// Its delete guard recounts after removing, so one of the two sees the
	// other and backs out.
	if _, ok := s.companies.FindByID(ctx, companyID); !ok {
		if _, err := s.orders.Remove(ctx, created.ID); err != nil {
			s.logger.Error("removing order of deleted company failed", zap.String("orderId", created.ID), zap.Error(err))
			return domain.Order{}, err
		}
		return domain.Order{}, unknownCompany(companyID)
	}

	s.logger.Info("order created",
		zap.String("orderId", created.ID),
		zap.String("orderNumber", created.OrderNumber),
		zap.String("companyId", created.CompanyID),
		zap.Float64("totalAmount", created.TotalAmount),
	)
	s.publish(ctx, sess, domain.OrderEventCreated, created, "")
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, sess session.Session, id string) (domain.Order, error) {
	order, ok := s.orders.FindByID(ctx, id)
	if !ok {
		return domain.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err := sess.Authorize(order.CompanyID); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, sess session.Session, filter ListFilter) ([]domain.Order, error) {
	companyID, err := sess.CompanyFor(filter.CompanyID)
	if err != nil {
		return nil, err
	}

	orders := s.orders.ListByCompany(ctx, companyID)
	if filter.Status == "" {
		return orders, nil
	}

	out := []domain.Order{}
	for _, o := range orders {
		if o.Status == filter.Status {
			out = append(out, o)
		}
	}
	return out, nil
}

// Update merges the non-nil request fields into the order and reprices it.
// Status is not writable here.
func (s *OrderService) Update(ctx context.Context, sess session.Session, id string, req dto.UpdateOrderRequest) (domain.Order, error) {
	if req.Status != nil {
		return domain.Order{}, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status changes go through the transition endpoint",
		})
	}

	current, err := s.Get(ctx, sess, id)
	if err != nil {
		return domain.Order{}, err
	}

	var items []domain.OrderItem
	if req.Items != nil {
		items, err = s.resolveItems(ctx, current.CompanyID, *req.Items)
		if err != nil {
			return domain.Order{}, err
		}
	}

	now := s.now().UTC()
	updated, found, err := s.orders.Update(ctx, id, func(o *domain.Order) error {
		applyOrderPatch(o, req)
		if items != nil {
			o.Items = items
		}
		o.Reprice(s.pricing.TaxRate)
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	s.logger.Info("order updated", zap.String("orderId", id), zap.Float64("totalAmount", updated.TotalAmount))
	s.publish(ctx, sess, domain.OrderEventUpdated, updated, "")
	return updated, nil
}

// Delete removes the order. Deleting an unknown id is a no-op.
func (s *OrderService) Delete(ctx context.Context, sess session.Session, id string) error {
	order, ok := s.orders.FindByID(ctx, id)
	if !ok {
		return nil
	}
	if err := sess.Authorize(order.CompanyID); err != nil {
		return err
	}

	removed, err := s.orders.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	s.logger.Info("order deleted", zap.String("orderId", id), zap.String("companyId", order.CompanyID))
	s.publish(ctx, sess, domain.OrderEventDeleted, order, "")
	return nil
}

// Transition moves the order to target. The check runs against the stored
// status under the collection lock, so concurrent transitions cannot both
// pass.
func (s *OrderService) Transition(ctx context.Context, sess session.Session, id string, target domain.OrderStatus, override bool) (domain.Order, error) {
	if override && !sess.CanOverride() {
		return domain.Order{}, apperrors.NewForbiddenError(fmt.Sprintf("role %s cannot override status transitions", sess.User.Role))
	}
	return s.changeStatus(ctx, sess, id, override, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		return target, nil
	})
}

// Advance moves the order to the next status in the delivery chain.
func (s *OrderService) Advance(ctx context.Context, sess session.Session, id string) (domain.Order, error) {
	return s.changeStatus(ctx, sess, id, false, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		next, ok := current.Next()
		if !ok {
			return "", apperrors.NewConflictError(fmt.Sprintf("order is %s and has no next status", current))
		}
		return next, nil
	})
}

func (s *OrderService) changeStatus(
	ctx context.Context,
	sess session.Session,
	id string,
	override bool,
	pick func(current domain.OrderStatus) (domain.OrderStatus, error),
) (domain.Order, error) {
	if _, err := s.Get(ctx, sess, id); err != nil {
		return domain.Order{}, err
	}

	now := s.now().UTC()
	var previous domain.OrderStatus
	updated, found, err := s.orders.Update(ctx, id, func(o *domain.Order) error {
		target, err := pick(o.Status)
		if err != nil {
			return err
		}
		if err := CheckTransition(o.Status, target, override); err != nil {
			return err
		}
		previous = o.Status
		o.Status = target
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.logger.Warn("status transition rejected", zap.String("orderId", id), zap.Error(err))
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	s.logger.Info("order status changed",
		zap.String("orderId", id),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
		zap.Bool("override", override),
	)
	s.publish(ctx, sess, domain.OrderEventStatusChanged, updated, previous)
	return updated, nil
}

// AssignDriver sets or, with a nil driverID, clears the order's driver. The
// driver must belong to the order's company.
func (s *OrderService) AssignDriver(ctx context.Context, sess session.Session, id string, driverID *string) (domain.Order, error) {
	if _, err := s.Get(ctx, sess, id); err != nil {
		return domain.Order{}, err
	}

	now := s.now().UTC()
	updated, found, err := s.orders.Update(ctx, id, func(o *domain.Order) error {
		if driverID == nil {
			o.AssignedDriver = nil
			o.UpdatedAt = now
			return nil
		}

		// Checked under the order lock: a driver removed after this point
		// has its assignments cleared once the lock is released.
		driver, ok := s.drivers.FindByID(ctx, *driverID)
		if !ok {
			return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "driverId",
				Message: fmt.Sprintf("driver %s does not exist", *driverID),
			})
		}
		if driver.CompanyID != o.CompanyID {
			return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "driverId",
				Message: "driver belongs to another company",
			})
		}

		assigned := *driverID
		o.AssignedDriver = &assigned
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	if driverID == nil {
		s.logger.Info("driver unassigned", zap.String("orderId", id))
	} else {
		s.logger.Info("driver assigned", zap.String("orderId", id), zap.String("driverId", *driverID))
	}
	s.publish(ctx, sess, domain.OrderEventUpdated, updated, "")
	return updated, nil
}

// UnassignDriver clears driverID from every order that references it and
// publishes order.updated for each. It backs driver removal: the caller has
// already authorized the driver, and through it the orders of its company.
func (s *OrderService) UnassignDriver(ctx context.Context, sess session.Session, driverID string) (int, error) {
	cleared, err := s.orders.ClearDriver(ctx, driverID, s.now().UTC())
	if err != nil {
		return 0, err
	}

	for _, o := range cleared {
		s.publish(ctx, sess, domain.OrderEventUpdated, o, "")
	}
	if len(cleared) > 0 {
		s.logger.Info("driver unassigned from orders", zap.String("driverId", driverID), zap.Int("orders", len(cleared)))
	}
	return len(cleared), nil
}

// DriverDeliveries lists every order assigned to driverID.
func (s *OrderService) DriverDeliveries(ctx context.Context, sess session.Session, driverID string) ([]domain.Order, error) {
	driver, ok := s.drivers.FindByID(ctx, driverID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("driver %s not found", driverID))
	}
	if err := sess.Authorize(driver.CompanyID); err != nil {
		return nil, err
	}
	return s.orders.ListByDriver(ctx, driverID), nil
}

func (s *OrderService) resolveItems(ctx context.Context, companyID string, reqs []dto.OrderItemRequest) ([]domain.OrderItem, error) {
	var details []apperrors.ValidationDetail
	items := make([]domain.OrderItem, 0, len(reqs))

	for idx, req := range reqs {
		field := "items[" + strconv.Itoa(idx) + "].productId"
		product, ok := s.products.FindByID(ctx, req.ProductID)
		if !ok {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: fmt.Sprintf("product %s does not exist", req.ProductID),
			})
			continue
		}
		if !product.Orderable(companyID) {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: fmt.Sprintf("product %s is not available for this company", req.ProductID),
			})
			continue
		}
		items = append(items, domain.NewOrderItem(product, req.Quantity))
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}
	return items, nil
}

func (s *OrderService) publish(ctx context.Context, sess session.Session, eventType domain.OrderEventType, order domain.Order, previous domain.OrderStatus) {
	event := domain.OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		CompanyID:      order.CompanyID,
		Status:         order.Status,
		PreviousStatus: previous,
		ActorID:        sess.User.ID,
		OccurredAt:     s.now().UTC(),
	}
	if eventType != domain.OrderEventDeleted {
		snapshot := order.Clone()
		event.Order = &snapshot
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publishing order event failed",
			zap.String("orderId", order.ID),
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
	}
}

func unknownCompany(companyID string) error {
	return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
		Field:   "companyId",
		Message: fmt.Sprintf("company %s does not exist", companyID),
	})
}

func applyOrderPatch(o *domain.Order, req dto.UpdateOrderRequest) {
	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		o.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		o.CustomerEmail = *req.CustomerEmail
	}
	if req.DeliveryAddress != nil {
		o.DeliveryAddress = *req.DeliveryAddress
	}
	if req.City != nil {
		o.City = *req.City
	}
	if req.PostalCode != nil {
		o.PostalCode = *req.PostalCode
	}
	if req.DeliveryNotes != nil {
		o.DeliveryNotes = *req.DeliveryNotes
	}
	if req.DeliveryFee != nil {
		o.DeliveryFee = *req.DeliveryFee
	}
	if req.ScheduledDate != nil {
		date := *req.ScheduledDate
		o.ScheduledDate = &date
	}
	if req.ScheduledTime != nil {
		t := *req.ScheduledTime
		o.ScheduledTime = &t
	}
}
